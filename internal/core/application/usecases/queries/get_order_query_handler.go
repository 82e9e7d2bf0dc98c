package queries

import (
	"context"
	"database/sql"
	"errors"

	"chatorder/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler loads a single order and its history from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	orderView, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("order lookup failed: %v", err)
//	    return err
//	}
//	fmt.Printf("Order %s is %s\n", orderView.ID, orderView.Status)
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ObjectNotFoundError when no order
// with the requested id exists. History entries are ordered oldest first.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			phone_number,
			address,
			items,
			delivery_date,
			status,
			added_by,
			delivery_person,
			created_at,
			delivered_at,
			cancelled_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	err := row.Scan(
		&response.ID,
		&response.CustomerName,
		&response.PhoneNumber,
		&response.Address,
		&response.Items,
		&response.DeliveryDate,
		&response.Status,
		&response.AddedBy,
		&response.DeliveryPerson,
		&response.CreatedAt,
		&response.DeliveredAt,
		&response.CancelledAt,
	)
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	history, err := h.loadHistory(ctx, response.ID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.History = history

	return response, nil
}

func (h GetOrderQueryHandler) loadHistory(ctx context.Context, orderID string) ([]HistoryEntryResponse, error) {
	entries := make([]HistoryEntryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			changed_by,
			notes,
			occurred_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY occurred_at
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry HistoryEntryResponse
		if err = rows.Scan(&entry.Status, &entry.ChangedBy, &entry.Notes, &entry.OccurredAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
