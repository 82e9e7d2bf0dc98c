package commands_test

import (
	"context"
	"testing"
	"time"

	"chatorder/internal/core/application/usecases/commands"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatusFrom(
	ctx context.Context, o *order.Order, expected order.Status,
) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, orderID kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, entry *order.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func mustOrderID(t *testing.T, s string) kernel.OrderID {
	t.Helper()
	id, err := kernel.OrderIDFromString(s)
	require.NoError(t, err)
	return id
}

func pendingOrder(t *testing.T, id kernel.OrderID) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		id, "Amaka Obi", "+2348012345678", "12 Allen Avenue, Ikeja",
		"2x Jollof rice", nil, "admin", time.Now(),
	)
	require.NoError(t, err)
	return aggregate
}

func terminalOrder(t *testing.T, id kernel.OrderID, status order.Status) *order.Order {
	t.Helper()
	now := time.Now()
	aggregate, err := order.RestoreOrder(
		id, "Amaka Obi", "+2348012345678", "12 Allen Avenue, Ikeja",
		"2x Jollof rice", nil, status, "admin", "rider", now, &now, nil,
	)
	require.NoError(t, err)
	return aggregate
}
