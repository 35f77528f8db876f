// Package notify delivers completion alerts: a terminal banner above
// the TUI prompt, a freedesktop desktop notification, and a short
// synthesized chime. The composite fans one alert out to all of them.
package notify

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/logger"
)

// PrintFunc prints formatted output. Matches both fmt.Printf and the
// display UI's Printf, so notifications never garble the TUI.
type PrintFunc func(format string, a ...interface{})

// ANSI escape codes for the plain-terminal fallback.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	cyan  = "\033[36m"
)

// Compile-time interface check.
var _ domain.Notifier = (*TerminalNotifier)(nil)

// TerminalNotifier prints alerts through the UI's print function.
type TerminalNotifier struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewTerminalNotifier creates a terminal notifier. If printFn is nil,
// fmt.Printf is used.
func NewTerminalNotifier(log *logger.Logger, printFn PrintFunc) *TerminalNotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &TerminalNotifier{log: log, printFn: printFn}
}

// Notify prints the alert. The sound flag is ignored here; the chime
// notifier handles it.
func (n *TerminalNotifier) Notify(ctx context.Context, title, body string, playSound bool) error {
	n.log.Debug("notify: %s: %s", title, body)
	n.printFn("%s%s%s%s %s", cyan, bold, title, reset, body)
	return nil
}
