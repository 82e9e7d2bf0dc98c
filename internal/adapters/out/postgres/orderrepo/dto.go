// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column is indexed because both the conditional status update and
// the reporting queries filter on it.
type OrderDTO struct {
	ID             string `gorm:"type:varchar(14);primaryKey"`
	CustomerName   string
	PhoneNumber    string
	Address        string
	Items          string
	DeliveryDate   *time.Time
	Status         string `gorm:"type:varchar(16);index"`
	AddedBy        string
	DeliveryPerson string
	CreatedAt      time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:             aggregate.ID().String(),
		CustomerName:   aggregate.CustomerName(),
		PhoneNumber:    aggregate.PhoneNumber(),
		Address:        aggregate.Address(),
		Items:          aggregate.Items(),
		DeliveryDate:   aggregate.DeliveryDate(),
		Status:         aggregate.Status().String(),
		AddedBy:        aggregate.AddedBy(),
		DeliveryPerson: aggregate.DeliveryPerson(),
		CreatedAt:      aggregate.CreatedAt(),
		DeliveredAt:    aggregate.DeliveredAt(),
		CancelledAt:    aggregate.CancelledAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including terminal state using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.OrderIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.CustomerName,
		dto.PhoneNumber,
		dto.Address,
		dto.Items,
		dto.DeliveryDate,
		status,
		dto.AddedBy,
		dto.DeliveryPerson,
		dto.CreatedAt,
		dto.DeliveredAt,
		dto.CancelledAt,
	)
}
