package postgres

import (
	"chatorder/internal/adapters/out/postgres/historyrepo"
	"chatorder/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the orders and order_history tables.
// Safe to run repeatedly; AutoMigrate only applies missing changes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&historyrepo.HistoryDTO{},
	)
}
