package realtime

import (
	"context"
	"errors"
)

// ErrClosed signals that the channel has been torn down. Callers treat it as
// end of stream, not as a turn failure.
var ErrClosed = errors.New("realtime channel closed")

// Channel is a bidirectional ordered event stream to a generation backend.
// Implementations own the wire protocol; callers only see Events.
//
// A channel supports exactly one conversation. Callers serialize their use of
// SendUserText and RequestResponse; interleaving two exchanges corrupts both.
type Channel interface {
	// Connect establishes the underlying session. Calling it on an
	// already-connected channel is a no-op.
	Connect(ctx context.Context) error
	// Configure sends session-level instructions. Safe to call again after a
	// reconnect.
	Configure(ctx context.Context, instructions string) error
	// SendUserText appends a user message to the conversation.
	SendUserText(ctx context.Context, text string) error
	// RequestResponse asks the backend to generate a response to the
	// conversation so far.
	RequestResponse(ctx context.Context) error
	// NextEvent blocks until the next event arrives, the context ends, or the
	// channel closes (ErrClosed).
	NextEvent(ctx context.Context) (Event, error)
	// Close tears down the session. Idempotent.
	Close() error
}
