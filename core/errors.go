package standup

import "errors"

var (
	// ErrNoContent signals that a turn finished with no usable text at all.
	// An empty line is never a valid success; callers retry or surface the
	// failure.
	ErrNoContent = errors.New("turn produced no content")

	// ErrConnection wraps duplex channel failures. The session is marked
	// unconfigured so the next turn reconfigures after a reconnect.
	ErrConnection = errors.New("duplex channel unavailable")

	// ErrPerformerClosed is returned for turns requested after Disconnect.
	ErrPerformerClosed = errors.New("performer disconnected")
)
