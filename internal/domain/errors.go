package domain

import "errors"

// Sentinel errors used across layers.
var (
	// ErrNotAwaitingAck is returned by Acknowledge when no completed
	// countdown is waiting on the user.
	ErrNotAwaitingAck = errors.New("no completion awaiting acknowledgment")
)
