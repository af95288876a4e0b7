package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	httpin "mfgorders/internal/adapters/in/http"
	"mfgorders/internal/adapters/out/blobstore"
	"mfgorders/internal/adapters/out/kafkabus"
	"mfgorders/internal/adapters/out/postgres"
	"mfgorders/internal/adapters/out/postgres/configrepo"
	"mfgorders/internal/adapters/out/postgres/orderrepo"
	"mfgorders/internal/adapters/out/rediscache"
	"mfgorders/internal/core/application/usecases/commands"
	"mfgorders/internal/core/application/usecases/queries"
	"mfgorders/internal/core/domain/model/kernel"
	"mfgorders/internal/core/ports"
	"mfgorders/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type publisher interface {
	ports.MessagePublisher
	io.Closer
}

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	clock      kernel.Clock
	uowFactory *postgres.GormUnitOfWorkFactory

	redis     *goredis.Client
	publisher publisher
	blobs     ports.BlobStore
	margins   *queries.CachedMarginConfigProvider
}

// NewCompositionRoot wires the adapters. Redis and kafka are optional: an
// empty REDIS_ADDR keeps margins in process only, empty KAFKA_BROKERS logs
// events instead of publishing them.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	blobs, err := blobstore.NewFilesystemStore(blobstore.Config{
		Root:     config.MediaRoot,
		BaseURL:  config.MediaBaseURL,
		MaxBytes: config.MediaMaxBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("blob store: %w", err)
	}

	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		clock:      kernel.SystemClock{},
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		blobs:      blobs,
	}

	var cache ports.MarginConfigCache
	if config.RedisAddr != "" {
		c.redis = goredis.NewClient(&goredis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		cache = rediscache.NewMarginCache(c.redis, rediscache.DefaultKey, config.MarginCacheTTL)
	}
	c.margins = queries.NewCachedMarginConfigProvider(
		configrepo.NewGormMarginConfigRepository(gormDB),
		cache,
		config.MarginCacheTTL,
		logger,
	)

	if len(config.KafkaBrokers) > 0 {
		c.publisher = kafkabus.NewPublisher(kafkabus.Config{
			Brokers: config.KafkaBrokers,
			Topic:   config.KafkaNotificationsTopic,
		}, logger)
	} else {
		c.publisher = kafkabus.NewNoopPublisher(logger)
	}

	return c, nil
}

// Ping checks the database and, when configured, redis.
func (c *CompositionRoot) Ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if c.redis != nil {
		if err := c.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Close releases the publisher and the redis client.
func (c *CompositionRoot) Close() error {
	var errs []error
	if err := c.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("publisher: %w", err))
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orders() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, nil)
}

func (c *CompositionRoot) MarginConfigProvider() *queries.CachedMarginConfigProvider {
	return c.margins
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSaveDraftCommandHandler() commands.SaveDraftCommandHandler {
	return commands.NewSaveDraftCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.DeleteOrderUoWFactory = FuncDeleteOrderUoWFactory(func() commands.DeleteOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateRouteProductCommandHandler() commands.RouteProductCommandHandler {
	return commands.NewRouteProductCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateApproveProductCommandHandler() commands.ApproveProductCommandHandler {
	return commands.NewApproveProductCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateProductQuoteCommandHandler() commands.UpdateProductQuoteCommandHandler {
	return commands.NewUpdateProductQuoteCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAdvanceProductStatusCommandHandler() commands.AdvanceProductStatusCommandHandler {
	return commands.NewAdvanceProductStatusCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRaiseQuestionCommandHandler() commands.RaiseQuestionCommandHandler {
	return commands.NewRaiseQuestionCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateResolveQuestionCommandHandler() commands.ResolveQuestionCommandHandler {
	return commands.NewResolveQuestionCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSelectShippingMethodCommandHandler() commands.SelectShippingMethodCommandHandler {
	return commands.NewSelectShippingMethodCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDecideItemCommandHandler() commands.DecideItemCommandHandler {
	return commands.NewDecideItemCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRouteSampleCommandHandler() commands.RouteSampleCommandHandler {
	return commands.NewRouteSampleCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateSampleCommandHandler() commands.UpdateSampleCommandHandler {
	return commands.NewUpdateSampleCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDecideSampleCommandHandler() commands.DecideSampleCommandHandler {
	return commands.NewDecideSampleCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUploadMediaCommandHandler() commands.UploadMediaCommandHandler {
	return commands.NewUploadMediaCommandHandler(c.orderUoWFactory(), c.blobs, c.clock)
}

func (c *CompositionRoot) CreateRelayNotificationsCommandHandler() commands.RelayNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayNotificationsCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders(), c.margins, c.clock)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orders(), c.margins)
}

func (c *CompositionRoot) CreateComputeTotalsQueryHandler() queries.ComputeTotalsQueryHandler {
	return queries.NewComputeTotalsQueryHandler(c.orders(), c.margins)
}

func (c *CompositionRoot) CreateComputeETAQueryHandler() queries.ComputeETAQueryHandler {
	return queries.NewComputeETAQueryHandler(c.orders(), c.clock)
}

func (c *CompositionRoot) CreateListAuditQueryHandler() queries.ListAuditQueryHandler {
	return queries.NewListAuditQueryHandler(c.gormDB, c.orders())
}

// Handlers collects every use case served over HTTP.
func (c *CompositionRoot) Handlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		SaveDraft:       c.CreateSaveDraftCommandHandler(),
		TransitionOrder: c.CreateTransitionOrderCommandHandler(),
		DeleteOrder:     c.CreateDeleteOrderCommandHandler(),

		RouteProduct:    c.CreateRouteProductCommandHandler(),
		ApproveProduct:  c.CreateApproveProductCommandHandler(),
		UpdateQuote:     c.CreateUpdateProductQuoteCommandHandler(),
		AdvanceStatus:   c.CreateAdvanceProductStatusCommandHandler(),
		RaiseQuestion:   c.CreateRaiseQuestionCommandHandler(),
		ResolveQuestion: c.CreateResolveQuestionCommandHandler(),
		SelectShipping:  c.CreateSelectShippingMethodCommandHandler(),
		DecideItem:      c.CreateDecideItemCommandHandler(),

		RouteSample:  c.CreateRouteSampleCommandHandler(),
		UpdateSample: c.CreateUpdateSampleCommandHandler(),
		DecideSample: c.CreateDecideSampleCommandHandler(),
		UploadMedia:  c.CreateUploadMediaCommandHandler(),

		GetOrder:      c.CreateGetOrderQueryHandler(),
		ListOrders:    c.CreateListOrdersQueryHandler(),
		ComputeTotals: c.CreateComputeTotalsQueryHandler(),
		ComputeETA:    c.CreateComputeETAQueryHandler(),
		ListAudit:     c.CreateListAuditQueryHandler(),
	}
}

func (c *CompositionRoot) RouterConfig(logger *zap.Logger) httpin.RouterConfig {
	return httpin.RouterConfig{
		Logger:           logger,
		Ping:             c.Ping,
		ValidateRequests: c.config.ValidateRequests,
		MediaRoot:        c.config.MediaRoot,
		MediaPath:        c.config.MediaPath,
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayNotificationsCommandHandler(),
		c.margins,
		jobs.Schedule{
			Relay:         c.config.RelaySchedule,
			RelayBatch:    c.config.RelayBatchSize,
			MarginRefresh: c.config.MarginRefreshSchedule,
		},
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeleteOrderUoWFactory func() commands.DeleteOrderUoW

func (f FuncDeleteOrderUoWFactory) Create() commands.DeleteOrderUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
