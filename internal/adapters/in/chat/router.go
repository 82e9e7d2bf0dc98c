// Package chat routes inbound chat messages to the application use cases.
// Messages from the orders chat go through the extraction engine and become
// orders; messages from the admin chat are classified as lifecycle commands.
// Replies always go back to the chat the message came from.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"chatorder/internal/core/application/usecases/commands"
	"chatorder/internal/core/application/usecases/queries"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/domain/services/extraction"
	"chatorder/internal/core/domain/services/intent"
	"chatorder/internal/core/ports"
	"chatorder/internal/pkg/errs"
	"chatorder/internal/pkg/metrics"
)

// InboundMessage is one chat message as delivered by the transport.
type InboundMessage struct {
	MessageID  string
	ChatID     string
	Sender     string
	Body       string
	IsReply    bool
	QuotedBody string
}

// Config identifies the two chats the router listens to and tunes the
// rejection reply threshold. Messages shorter than MinOrderLikeLength that
// fail extraction are dropped silently instead of getting a rejection reply,
// which keeps casual chatter ("thanks!", "ok") from triggering bot noise.
type Config struct {
	OrdersChatID       string
	AdminChatID        string
	MinOrderLikeLength int
}

// StatsProvider is the slice of the stats query handler the router needs.
// Declared here so router tests do not have to stand up a database.
type StatsProvider interface {
	Handle(ctx context.Context, query queries.GetOrderStatsQuery) (queries.GetOrderStatsQueryResponse, error)
}

// Router dispatches inbound messages to extraction or intent handling based
// on the chat they arrived in. One Router instance is safe for concurrent use
// as long as its collaborators are.
type Router struct {
	cfg           Config
	engine        *extraction.Engine
	dedup         ports.MessageDeduplicator
	messenger     ports.Messenger
	createOrder   commands.CreateOrderCommandHandler
	markDelivered commands.MarkDeliveredCommandHandler
	cancelOrder   commands.CancelOrderCommandHandler
	stats         StatsProvider
	logger        *slog.Logger
	now           func() time.Time
}

// NewRouter creates a message router. A nil logger falls back to slog.Default.
func NewRouter(
	cfg Config,
	engine *extraction.Engine,
	dedup ports.MessageDeduplicator,
	messenger ports.Messenger,
	createOrder commands.CreateOrderCommandHandler,
	markDelivered commands.MarkDeliveredCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	stats StatsProvider,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	return &Router{
		cfg:           cfg,
		engine:        engine,
		dedup:         dedup,
		messenger:     messenger,
		createOrder:   createOrder,
		markDelivered: markDelivered,
		cancelOrder:   cancelOrder,
		stats:         stats,
		logger:        logger.With("component", "chat_router"),
		now:           time.Now,
	}
}

// HandleMessage processes one inbound message end to end. Returns an error
// only when a reply could not be sent or an unexpected failure occurred;
// business rejections are handled with chat replies and a nil return.
func (r *Router) HandleMessage(ctx context.Context, msg InboundMessage) error {
	seen, err := r.dedup.Seen(ctx, msg.MessageID)
	if err != nil {
		// Losing the dedup store must not stop order intake.
		r.logger.Warn("message dedup check failed", "error", err, "messageId", msg.MessageID)
	} else if seen {
		r.logger.Debug("duplicate message skipped", "messageId", msg.MessageID)
		return nil
	}

	if err := r.dispatch(ctx, msg); err != nil {
		// Leave the message unmarked so the transport's redelivery is
		// processed instead of skipped as a duplicate.
		return err
	}

	if err := r.dedup.MarkSeen(ctx, msg.MessageID); err != nil {
		r.logger.Warn("message dedup mark failed", "error", err, "messageId", msg.MessageID)
	}
	return nil
}

func (r *Router) dispatch(ctx context.Context, msg InboundMessage) error {
	switch msg.ChatID {
	case r.cfg.OrdersChatID:
		metrics.MessagesTotal.WithLabelValues("orders").Inc()
		return r.handleOrderMessage(ctx, msg)
	case r.cfg.AdminChatID:
		metrics.MessagesTotal.WithLabelValues("admin").Inc()
		return r.handleAdminMessage(ctx, msg)
	default:
		metrics.MessagesTotal.WithLabelValues("other").Inc()
		return nil
	}
}

func (r *Router) handleOrderMessage(ctx context.Context, msg InboundMessage) error {
	draft, ok := r.engine.Extract(msg.Body)
	if !ok {
		metrics.ExtractionsTotal.WithLabelValues("incomplete").Inc()
		if len(strings.TrimSpace(msg.Body)) >= r.cfg.MinOrderLikeLength {
			return r.reply(ctx, r.cfg.OrdersChatID, rejectionText(draft))
		}
		return nil
	}

	phone, err := kernel.NewPhone(draft.PhoneNumber)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("invalid").Inc()
		return r.reply(ctx, r.cfg.OrdersChatID, rejectionText(draft))
	}

	cmd, err := commands.NewCreateOrderCommand(
		draft.CustomerName, phone, draft.Address, draft.Items, draft.DeliveryDate, msg.Sender,
	)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("invalid").Inc()
		return r.reply(ctx, r.cfg.OrdersChatID, rejectionText(draft))
	}

	orderID, err := r.createOrder.Handle(ctx, cmd)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("failed").Inc()
		r.logger.Error("order creation failed", "error", err, "sender", msg.Sender)
		return r.reply(ctx, r.cfg.OrdersChatID, persistenceApologyText())
	}

	metrics.ExtractionsTotal.WithLabelValues("created").Inc()
	r.logger.Info("order created", "orderId", orderID.String(), "addedBy", msg.Sender)
	return r.reply(ctx, r.cfg.OrdersChatID, confirmationText(orderID.String(), draft, phone))
}

func (r *Router) handleAdminMessage(ctx context.Context, msg InboundMessage) error {
	cmd := intent.Classify(intent.Message{
		Body:       msg.Body,
		IsReply:    msg.IsReply,
		QuotedBody: msg.QuotedBody,
	})

	switch cmd.Kind {
	case intent.DeliverByReply, intent.DeliverByID:
		return r.handleDeliver(ctx, cmd.OrderID, msg.Sender)
	case intent.CancelByReply, intent.CancelByID:
		return r.handleCancel(ctx, cmd.OrderID, msg.Sender)
	case intent.Report:
		return r.handleReport(ctx, cmd.Report)
	case intent.Help:
		return r.reply(ctx, r.cfg.AdminChatID, helpText())
	default:
		return nil
	}
}

func (r *Router) handleDeliver(ctx context.Context, rawOrderID, sender string) error {
	orderID, err := kernel.OrderIDFromString(rawOrderID)
	if err != nil {
		metrics.TransitionsTotal.WithLabelValues("deliver", "bad_id").Inc()
		return r.reply(ctx, r.cfg.AdminChatID, unknownOrderText(rawOrderID))
	}

	deliverCmd, err := commands.NewMarkDeliveredCommand(orderID, sender)
	if err != nil {
		return err
	}

	err = r.markDelivered.Handle(ctx, deliverCmd)
	switch {
	case err == nil:
		metrics.TransitionsTotal.WithLabelValues("deliver", "ok").Inc()
		r.logger.Info("order delivered", "orderId", orderID.String(), "by", sender)
		return r.reply(ctx, r.cfg.AdminChatID, deliveredText(orderID.String()))
	case errors.Is(err, order.ErrAlreadyDelivered):
		metrics.TransitionsTotal.WithLabelValues("deliver", "already_delivered").Inc()
		return r.reply(ctx, r.cfg.AdminChatID, alreadyDeliveredText(orderID.String()))
	case errors.Is(err, order.ErrInvalidTransition):
		metrics.TransitionsTotal.WithLabelValues("deliver", "invalid_transition").Inc()
		return r.reply(ctx, r.cfg.AdminChatID, cannotDeliverText(orderID.String()))
	case errors.Is(err, errs.ErrObjectNotFound):
		metrics.TransitionsTotal.WithLabelValues("deliver", "not_found").Inc()
		return r.reply(ctx, r.cfg.AdminChatID, unknownOrderText(orderID.String()))
	default:
		metrics.TransitionsTotal.WithLabelValues("deliver", "error").Inc()
		r.logger.Error("deliver failed", "error", err, "orderId", orderID.String())
		return r.reply(ctx, r.cfg.AdminChatID, persistenceApologyText())
	}
}

func (r *Router) handleCancel(ctx context.Context, rawOrderID, sender string) error {
	orderID, err := kernel.OrderIDFromString(rawOrderID)
	if err != nil {
		metrics.TransitionsTotal.WithLabelValues("cancel", "bad_id").Inc()
		return r.reply(ctx, r.cfg.AdminChatID, unknownOrderText(rawOrderID))
	}

	cancelCmd, err := commands.NewCancelOrderCommand(orderID, sender)
	if err != nil {
		return err
	}

	err = r.cancelOrder.Handle(ctx, cancelCmd)
	switch {
	case err == nil:
		metrics.TransitionsTotal.WithLabelValues("cancel", "ok").Inc()
		r.logger.Info("order cancelled", "orderId", orderID.String(), "by", sender)
		return r.reply(ctx, r.cfg.AdminChatID, cancelledText(orderID.String()))
	case errors.Is(err, order.ErrAlreadyCancelled):
		metrics.TransitionsTotal.WithLabelValues("cancel", "already_cancelled").Inc()
		return r.reply(ctx, r.cfg.AdminChatID, alreadyCancelledText(orderID.String()))
	case errors.Is(err, order.ErrInvalidTransition):
		metrics.TransitionsTotal.WithLabelValues("cancel", "invalid_transition").Inc()
		return r.reply(ctx, r.cfg.AdminChatID, cannotCancelText(orderID.String()))
	case errors.Is(err, errs.ErrObjectNotFound):
		metrics.TransitionsTotal.WithLabelValues("cancel", "not_found").Inc()
		return r.reply(ctx, r.cfg.AdminChatID, unknownOrderText(orderID.String()))
	default:
		metrics.TransitionsTotal.WithLabelValues("cancel", "error").Inc()
		r.logger.Error("cancel failed", "error", err, "orderId", orderID.String())
		return r.reply(ctx, r.cfg.AdminChatID, persistenceApologyText())
	}
}

func (r *Router) handleReport(ctx context.Context, kind intent.ReportKind) error {
	now := r.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	from := dayStart
	if kind == intent.ReportWeekly {
		from = dayStart.AddDate(0, 0, -6)
	}
	to := dayStart.Add(24 * time.Hour)

	query, err := queries.NewGetOrderStatsQuery(from, to)
	if err != nil {
		return err
	}

	stats, err := r.stats.Handle(ctx, query)
	if err != nil {
		r.logger.Error("report query failed", "error", err)
		return r.reply(ctx, r.cfg.AdminChatID, persistenceApologyText())
	}

	return r.reply(ctx, r.cfg.AdminChatID, summaryText(kind, stats))
}

func (r *Router) reply(ctx context.Context, chatID, text string) error {
	if err := r.messenger.Send(ctx, chatID, text); err != nil {
		r.logger.Error("reply delivery failed", "error", err, "chatId", chatID)
		return err
	}
	return nil
}
