package core

import "context"

// MessagesRepository is the append-only conversation log. There is no update
// or delete path.
type MessagesRepository interface {
	// Record durably appends one message. A storage error is fatal to the
	// request, not recovered.
	Record(ctx context.Context, userID, text string, isBot bool) error
	// Recent returns the last n messages for the user, oldest first. Unknown
	// users yield an empty slice.
	Recent(ctx context.Context, userID string, n int) ([]Message, error)
}
