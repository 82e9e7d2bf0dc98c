package chat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"chatorder/internal/adapters/in/chat"
	"chatorder/internal/core/application/usecases/commands"
	"chatorder/internal/core/application/usecases/queries"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/domain/services/extraction"
	"chatorder/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	ordersChatID = "orders-chat"
	adminChatID  = "admin-chat"
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

type fakeUoW struct {
	orderRepo   ports.OrderRepository
	historyRepo ports.HistoryRepository
}

func (u *fakeUoW) Begin(context.Context) error                { return nil }
func (u *fakeUoW) Commit(context.Context) error               { return nil }
func (u *fakeUoW) Rollback(context.Context) error             { return nil }
func (u *fakeUoW) OrderRepository() ports.OrderRepository     { return u.orderRepo }
func (u *fakeUoW) HistoryRepository() ports.HistoryRepository { return u.historyRepo }

type fakeUoWFactory struct{ uow *fakeUoW }

func (f *fakeUoWFactory) Create() commands.UoW { return f.uow }

type fakeMessenger struct {
	chatIDs []string
	texts   []string
	err     error
}

func (f *fakeMessenger) Send(_ context.Context, chatID, text string) error {
	if f.err != nil {
		return f.err
	}
	f.chatIDs = append(f.chatIDs, chatID)
	f.texts = append(f.texts, text)
	return nil
}

type fakeDedup struct {
	seen  bool
	err   error
	marks []string
}

func (f *fakeDedup) Seen(_ context.Context, messageID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen {
		return true, nil
	}
	for _, id := range f.marks {
		if id == messageID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDedup) MarkSeen(_ context.Context, messageID string) error {
	f.marks = append(f.marks, messageID)
	return nil
}

type fakeStats struct {
	resp      queries.GetOrderStatsQueryResponse
	err       error
	lastQuery queries.GetOrderStatsQuery
}

func (f *fakeStats) Handle(
	_ context.Context, query queries.GetOrderStatsQuery,
) (queries.GetOrderStatsQueryResponse, error) {
	f.lastQuery = query
	return f.resp, f.err
}

type routerFixture struct {
	router      *chat.Router
	orderRepo   *MockOrderRepository
	historyRepo *MockHistoryRepository
	messenger   *fakeMessenger
	dedup       *fakeDedup
	stats       *fakeStats
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	orderRepo := new(MockOrderRepository)
	historyRepo := new(MockHistoryRepository)
	factory := &fakeUoWFactory{uow: &fakeUoW{orderRepo: orderRepo, historyRepo: historyRepo}}

	messenger := &fakeMessenger{}
	dedup := &fakeDedup{}
	stats := &fakeStats{}

	router := chat.NewRouter(
		chat.Config{
			OrdersChatID:       ordersChatID,
			AdminChatID:        adminChatID,
			MinOrderLikeLength: 20,
		},
		extraction.NewEngine(nil),
		dedup,
		messenger,
		commands.NewCreateOrderCommandHandler(factory, "234"),
		commands.NewMarkDeliveredCommandHandler(factory),
		commands.NewCancelOrderCommandHandler(factory),
		stats,
		nil,
	)

	return &routerFixture{
		router:      router,
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		messenger:   messenger,
		dedup:       dedup,
		stats:       stats,
	}
}

func TestRouter_OrderMessage_CreatesOrderAndConfirms(t *testing.T) {
	f := newRouterFixture(t)
	f.orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	f.historyRepo.On("Append", mock.Anything, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once()

	err := f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m1",
		ChatID:    ordersChatID,
		Sender:    "admin",
		Body:      "Name: Amaka Obi\nPhone: 08012345678\nAddress: 12 Allen Avenue, Ikeja\nItems: 2x Jollof rice",
	})
	require.NoError(t, err)

	require.Len(t, f.messenger.texts, 1)
	assert.Equal(t, ordersChatID, f.messenger.chatIDs[0])
	assert.Contains(t, f.messenger.texts[0], "Order #ORD")
	assert.Contains(t, f.messenger.texts[0], "confirmed")
	assert.Contains(t, f.messenger.texts[0], "Amaka Obi")
	assert.Equal(t, []string{"m1"}, f.dedup.marks)
	f.orderRepo.AssertExpectations(t)
	f.historyRepo.AssertExpectations(t)
}

func TestRouter_OrderMessage_IncompleteLong_SendsRejection(t *testing.T) {
	f := newRouterFixture(t)

	err := f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m2",
		ChatID:    ordersChatID,
		Sender:    "admin",
		Body:      "Name: Amaka Obi\nAddress: 12 Allen Avenue, Ikeja\nItems: 2x Jollof rice",
	})
	require.NoError(t, err)

	require.Len(t, f.messenger.texts, 1)
	assert.Contains(t, f.messenger.texts[0], "missing: phone")
	f.orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRouter_OrderMessage_ShortChatter_IsIgnored(t *testing.T) {
	f := newRouterFixture(t)

	err := f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m3",
		ChatID:    ordersChatID,
		Sender:    "admin",
		Body:      "thanks!",
	})
	require.NoError(t, err)

	assert.Empty(t, f.messenger.texts)
	f.orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRouter_DuplicateMessage_IsSkipped(t *testing.T) {
	f := newRouterFixture(t)
	f.dedup.seen = true

	err := f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m1",
		ChatID:    ordersChatID,
		Sender:    "admin",
		Body:      "Name: Amaka Obi\nPhone: 08012345678\nAddress: 12 Allen Avenue, Ikeja\nItems: 2x Jollof rice",
	})
	require.NoError(t, err)

	assert.Empty(t, f.messenger.texts)
	f.orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestRouter_DedupFailure_ProcessingContinues(t *testing.T) {
	f := newRouterFixture(t)
	f.dedup.err = errors.New("redis down")
	f.orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	f.historyRepo.On("Append", mock.Anything, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once()

	err := f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m4",
		ChatID:    ordersChatID,
		Sender:    "admin",
		Body:      "Name: Amaka Obi\nPhone: 08012345678\nAddress: 12 Allen Avenue, Ikeja\nItems: 2x Jollof rice",
	})
	require.NoError(t, err)
	require.Len(t, f.messenger.texts, 1)
}

func TestRouter_RedeliveredAfterFailure_IsProcessed(t *testing.T) {
	f := newRouterFixture(t)
	f.orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Return(errors.New("db down")).Once()
	f.orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	f.historyRepo.On("Append", mock.Anything, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once()

	msg := chat.InboundMessage{
		MessageID: "m13",
		ChatID:    ordersChatID,
		Sender:    "admin",
		Body:      "Name: Amaka Obi\nPhone: 08012345678\nAddress: 12 Allen Avenue, Ikeja\nItems: 2x Jollof rice",
	}

	// First delivery fails all the way through, including the apology reply.
	// The message must stay unmarked so the redelivery is not dropped.
	f.messenger.err = errors.New("gateway down")
	err := f.router.HandleMessage(t.Context(), msg)
	require.Error(t, err)
	assert.Empty(t, f.dedup.marks)

	f.messenger.err = nil
	err = f.router.HandleMessage(t.Context(), msg)
	require.NoError(t, err)

	require.Len(t, f.messenger.texts, 1)
	assert.Contains(t, f.messenger.texts[0], "confirmed")
	assert.Equal(t, []string{"m13"}, f.dedup.marks)
	f.orderRepo.AssertExpectations(t)
	f.historyRepo.AssertExpectations(t)
}

func TestRouter_ReplyDone_MarksOrderDelivered(t *testing.T) {
	f := newRouterFixture(t)
	orderID, err := kernel.OrderIDFromString("ORD20240115042")
	require.NoError(t, err)

	pending, err := order.NewOrder(
		orderID, "Amaka Obi", "+2348012345678", "12 Allen Avenue, Ikeja",
		"2x Jollof rice", nil, "admin", time.Now(),
	)
	require.NoError(t, err)

	f.orderRepo.On("Get", mock.Anything, orderID).Return(pending, nil).Once()
	f.orderRepo.On("UpdateStatusFrom", mock.Anything, mock.AnythingOfType("*order.Order"), order.Pending).
		Return(nil).Once()
	f.historyRepo.On("Append", mock.Anything, mock.AnythingOfType("*order.HistoryEntry")).Return(nil).Once()

	err = f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID:  "m5",
		ChatID:     adminChatID,
		Sender:     "rider",
		Body:       "done",
		IsReply:    true,
		QuotedBody: "Order #ORD20240115042 confirmed!\nCustomer: Amaka Obi",
	})
	require.NoError(t, err)

	require.Len(t, f.messenger.texts, 1)
	assert.Equal(t, adminChatID, f.messenger.chatIDs[0])
	assert.Contains(t, f.messenger.texts[0], "marked as delivered")
	f.orderRepo.AssertExpectations(t)
}

func TestRouter_DeliverByID_UnknownID_RepliesUnknownOrder(t *testing.T) {
	f := newRouterFixture(t)

	err := f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m6",
		ChatID:    adminChatID,
		Sender:    "rider",
		Body:      "done #NOTANID",
	})
	require.NoError(t, err)

	require.Len(t, f.messenger.texts, 1)
	assert.Contains(t, f.messenger.texts[0], "don't know any order")
}

func TestRouter_Deliver_AlreadyDelivered_RepliesIdempotently(t *testing.T) {
	f := newRouterFixture(t)
	orderID, err := kernel.OrderIDFromString("ORD20240115042")
	require.NoError(t, err)

	now := time.Now()
	delivered, err := order.RestoreOrder(
		orderID, "Amaka Obi", "+2348012345678", "12 Allen Avenue, Ikeja",
		"2x Jollof rice", nil, order.Delivered, "admin", "rider", now, &now, nil,
	)
	require.NoError(t, err)
	f.orderRepo.On("Get", mock.Anything, orderID).Return(delivered, nil).Once()

	err = f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m7",
		ChatID:    adminChatID,
		Sender:    "rider",
		Body:      "done #ORD20240115042",
	})
	require.NoError(t, err)

	require.Len(t, f.messenger.texts, 1)
	assert.Contains(t, f.messenger.texts[0], "already marked as delivered")
}

func TestRouter_Cancel_DeliveredOrder_RepliesCannotCancel(t *testing.T) {
	f := newRouterFixture(t)
	orderID, err := kernel.OrderIDFromString("ORD20240115042")
	require.NoError(t, err)

	now := time.Now()
	delivered, err := order.RestoreOrder(
		orderID, "Amaka Obi", "+2348012345678", "12 Allen Avenue, Ikeja",
		"2x Jollof rice", nil, order.Delivered, "admin", "rider", now, &now, nil,
	)
	require.NoError(t, err)
	f.orderRepo.On("Get", mock.Anything, orderID).Return(delivered, nil).Once()

	err = f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m8",
		ChatID:    adminChatID,
		Sender:    "admin",
		Body:      "cancel #ORD20240115042",
	})
	require.NoError(t, err)

	require.Len(t, f.messenger.texts, 1)
	assert.Contains(t, f.messenger.texts[0], "cannot be cancelled")
}

func TestRouter_Report_SendsSummary(t *testing.T) {
	f := newRouterFixture(t)
	f.stats.resp = queries.GetOrderStatsQueryResponse{
		Total:     5,
		Pending:   2,
		Delivered: 2,
		Cancelled: 1,
	}

	err := f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m9",
		ChatID:    adminChatID,
		Sender:    "admin",
		Body:      "report",
	})
	require.NoError(t, err)

	require.Len(t, f.messenger.texts, 1)
	assert.Contains(t, f.messenger.texts[0], "5 total")
	assert.Contains(t, f.messenger.texts[0], "Pending: 2")

	// Daily reports cover one calendar day.
	window := f.stats.lastQuery.To().Sub(f.stats.lastQuery.From())
	assert.Equal(t, 24*time.Hour, window)
}

func TestRouter_Help_SendsUsage(t *testing.T) {
	f := newRouterFixture(t)

	err := f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m10",
		ChatID:    adminChatID,
		Sender:    "admin",
		Body:      "help",
	})
	require.NoError(t, err)

	require.Len(t, f.messenger.texts, 1)
	assert.Contains(t, f.messenger.texts[0], "Commands:")
}

func TestRouter_UnknownChat_IsIgnored(t *testing.T) {
	f := newRouterFixture(t)

	err := f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m11",
		ChatID:    "random-chat",
		Sender:    "someone",
		Body:      "Name: Amaka Obi\nPhone: 08012345678\nAddress: 12 Allen Avenue\nItems: rice",
	})
	require.NoError(t, err)

	assert.Empty(t, f.messenger.texts)
}

func TestRouter_AdminChatter_IsIgnored(t *testing.T) {
	f := newRouterFixture(t)

	err := f.router.HandleMessage(t.Context(), chat.InboundMessage{
		MessageID: "m12",
		ChatID:    adminChatID,
		Sender:    "admin",
		Body:      "good morning everyone",
	})
	require.NoError(t, err)

	assert.Empty(t, f.messenger.texts)
}
