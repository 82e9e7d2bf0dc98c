package ports

import "context"

// MessageDeduplicator remembers which inbound message ids were already
// processed, so redelivered messages do not create duplicate orders.
//
// Checking and marking are separate calls: a message is marked only after it
// was handled successfully. A message the handler failed on stays unmarked,
// so the broker's redelivery gets a second chance instead of being skipped
// as a duplicate.
type MessageDeduplicator interface {
	// Seen reports whether the message id was already processed.
	Seen(ctx context.Context, messageID string) (bool, error)

	// MarkSeen records the message id as processed.
	MarkSeen(ctx context.Context, messageID string) error
}
