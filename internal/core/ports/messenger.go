package ports

import "context"

// Messenger sends outbound chat messages. Implementations bridge to the
// actual chat transport; the application layer only knows chat ids and text.
type Messenger interface {
	Send(ctx context.Context, chatID string, text string) error
}
