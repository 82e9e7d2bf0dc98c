// Package historyrepo persists the append-only order status history.
package historyrepo

import (
	"time"

	"chatorder/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// HistoryDTO represents one status change row. Rows are only ever inserted;
// the order_id index serves the per-order audit trail query.
type HistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    string    `gorm:"type:varchar(14);index"`
	Status     string    `gorm:"type:varchar(16)"`
	ChangedBy  string
	Notes      string
	OccurredAt time.Time
}

// TableName specifies the database table name for history entries.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts a history entry to its database representation.
func fromDomain(entry *order.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		ID:         entry.ID(),
		OrderID:    entry.OrderID().String(),
		Status:     entry.Status().String(),
		ChangedBy:  entry.ChangedBy(),
		Notes:      entry.Notes(),
		OccurredAt: entry.OccurredAt(),
	}
}
