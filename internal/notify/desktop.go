package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/logger"
)

const notifyExpireMillis = 8000

// Compile-time interface check.
var _ domain.Notifier = (*DesktopNotifier)(nil)

// DesktopNotifier sends alerts through org.freedesktop.Notifications
// on the session bus.
type DesktopNotifier struct {
	conn *dbus.Conn
	log  *logger.Logger
}

// NewDesktopNotifier connects to the session bus. Callers treat a
// connection error as "no desktop notifications available" and skip
// this notifier at wiring time.
func NewDesktopNotifier(log *logger.Logger) (*DesktopNotifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	return &DesktopNotifier{conn: conn, log: log}, nil
}

// Notify sends one desktop notification.
func (n *DesktopNotifier) Notify(ctx context.Context, title, body string, playSound bool) error {
	obj := n.conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.CallWithContext(ctx, "org.freedesktop.Notifications.Notify", 0,
		"tomatick",        // app_name
		uint32(0),         // replaces_id
		"appointment-new", // app_icon
		title,             // summary
		body,              // body
		[]string{},        // actions
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(byte(1)),
		},
		int32(notifyExpireMillis),
	)
	if call.Err != nil {
		return fmt.Errorf("sending desktop notification: %w", call.Err)
	}
	n.log.Debug("notify: desktop notification sent (%s)", title)
	return nil
}

// Close releases the bus connection.
func (n *DesktopNotifier) Close() error {
	return n.conn.Close()
}
