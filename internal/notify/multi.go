package notify

import (
	"context"
	"errors"

	"github.com/hammamikhairi/tomatick/internal/domain"
)

// Compile-time interface check.
var _ domain.Notifier = (Multi)(nil)

// Multi fans one alert out to several notifiers. Delivery is
// best-effort per target; errors are joined so a dead channel never
// silences the others.
type Multi []domain.Notifier

// Notify delivers the alert to every target.
func (m Multi) Notify(ctx context.Context, title, body string, playSound bool) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, title, body, playSound); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
