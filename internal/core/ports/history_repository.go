package ports

import (
	"context"

	"chatorder/internal/core/domain/model/order"
)

// HistoryRepository persists the append-only status history of orders.
type HistoryRepository interface {
	// Append stores one history entry. Entries are never updated or removed.
	Append(ctx context.Context, entry *order.HistoryEntry) error
}
