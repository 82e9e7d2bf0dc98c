package cmd

import (
	"fmt"
	"log/slog"

	inamqp "chatorder/internal/adapters/in/amqp"
	"chatorder/internal/adapters/in/chat"
	inhttp "chatorder/internal/adapters/in/http"
	outamqp "chatorder/internal/adapters/out/amqp"
	"chatorder/internal/adapters/out/postgres"
	outredis "chatorder/internal/adapters/out/redis"
	"chatorder/internal/core/application/usecases/commands"
	"chatorder/internal/core/application/usecases/queries"
	"chatorder/internal/core/domain/services/extraction"
	"chatorder/internal/core/ports"
	"chatorder/internal/jobs"
	"chatorder/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, handlers and jobs from a Config.
// It owns the long-lived connections (database, broker, redis) and hands out
// ready-to-use components to the serve command.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  *outamqp.Publisher
	messenger  ports.Messenger
	dedup      ports.MessageDeduplicator
	registry   *prometheus.Registry
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph. Fails fast when the broker is
// unreachable; database connectivity is the caller's responsibility.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	publisher, err := outamqp.NewPublisher(config.AmqpURL, config.OutboundQueue)
	if err != nil {
		return nil, fmt.Errorf("create publisher: %w", err)
	}

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics.Register(registry)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		messenger: outamqp.NewRetryingMessenger(
			publisher, config.SendRetryAttempts, config.SendRetryInterval,
		),
		dedup:    outredis.NewDeduplicator(redisClient, config.DedupTTL),
		registry: registry,
		logger:   logger,
	}, nil
}

// Close releases broker resources.
func (c *CompositionRoot) Close() {
	c.publisher.Close()
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// CreateCreateOrderCommandHandler builds the order creation handler.
func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.createUoWFactory(), c.config.CountryCode)
}

// CreateMarkDeliveredCommandHandler builds the delivery confirmation handler.
func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.createUoWFactory())
}

// CreateCancelOrderCommandHandler builds the cancellation handler.
func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.createUoWFactory())
}

// CreateGetOrderQueryHandler builds the single order lookup handler.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// CreateGetOrderStatsQueryHandler builds the stats handler.
func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

// CreateChatRouter builds the inbound chat message router.
func (c *CompositionRoot) CreateChatRouter() *chat.Router {
	return chat.NewRouter(
		chat.Config{
			OrdersChatID:       c.config.OrdersChatID,
			AdminChatID:        c.config.AdminChatID,
			MinOrderLikeLength: c.config.MinOrderLikeLength,
		},
		extraction.NewEngine(nil),
		c.dedup,
		c.messenger,
		c.CreateCreateOrderCommandHandler(),
		c.CreateMarkDeliveredCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderStatsQueryHandler(),
		c.logger,
	)
}

// CreateConsumer builds the inbound AMQP consumer feeding the chat router.
func (c *CompositionRoot) CreateConsumer() (*inamqp.Consumer, error) {
	return inamqp.NewConsumer(c.config.AmqpURL, c.config.InboundQueue, c.CreateChatRouter(), c.logger)
}

// CreateHTTPServer builds the REST surface.
func (c *CompositionRoot) CreateHTTPServer() *inhttp.Server {
	return inhttp.NewServer(
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderStatsQueryHandler(),
		c.registry,
	)
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetOrderStatsQueryHandler(),
		c.messenger,
		c.config.AdminChatID,
		c.config.ReportSchedule,
		c.logger,
	)
}

// FuncUoWFactory adapts a closure to the commands.UoWFactory interface.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
