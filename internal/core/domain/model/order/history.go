package order

import (
	"errors"
	"time"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created through the NewHistoryEntry factory method.
var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry")

// HistoryEntry is an append-only audit record. One entry is written for every
// successful status transition, including initial creation. Entries are never
// mutated or deleted; per order they form the audit trail in creation order.
type HistoryEntry struct {
	id         uuid.UUID
	orderID    kernel.OrderID
	status     Status
	changedBy  string
	notes      string
	occurredAt time.Time

	isConstructed bool
}

// NewHistoryEntry creates an audit record for a status transition.
// changedBy identifies who drove the transition; notes is optional free text.
func NewHistoryEntry(
	orderID kernel.OrderID,
	status Status,
	changedBy string,
	notes string,
	occurredAt time.Time,
) (*HistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if changedBy == "" {
		return nil, errs.NewValueIsRequiredError("changedBy")
	}

	return &HistoryEntry{
		id:            uuid.New(),
		orderID:       orderID,
		status:        status,
		changedBy:     changedBy,
		notes:         notes,
		occurredAt:    occurredAt,
		isConstructed: true,
	}, nil
}

// RestoreHistoryEntry reconstructs an entry from persistence.
func RestoreHistoryEntry(
	id uuid.UUID,
	orderID kernel.OrderID,
	status Status,
	changedBy string,
	notes string,
	occurredAt time.Time,
) (*HistoryEntry, error) {
	entry, err := NewHistoryEntry(orderID, status, changedBy, notes, occurredAt)
	if err != nil {
		return nil, err
	}
	entry.id = id
	return entry, nil
}

// Validate ensures the entry was created through a factory method.
func (e *HistoryEntry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *HistoryEntry) ID() uuid.UUID {
	return e.id
}

// OrderID returns the identifier of the order this entry belongs to.
func (e *HistoryEntry) OrderID() kernel.OrderID {
	return e.orderID
}

// Status returns the status the order entered with this transition.
func (e *HistoryEntry) Status() Status {
	return e.status
}

// ChangedBy returns who drove the transition.
func (e *HistoryEntry) ChangedBy() string {
	return e.changedBy
}

// Notes returns the optional free-text note.
func (e *HistoryEntry) Notes() string {
	return e.notes
}

// OccurredAt returns when the transition happened.
func (e *HistoryEntry) OccurredAt() time.Time {
	return e.occurredAt
}
