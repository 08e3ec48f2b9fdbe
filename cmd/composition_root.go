package cmd

import (
	"context"
	"fmt"
	"strings"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot builds use cases, the HTTP server and background jobs from
// the configuration and shared infrastructure.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	mailer     ports.Mailer
	registry   ports.SendRegistry
	clock      kernel.Clock
	logger     *zap.Logger
}

// Option customizes a CompositionRoot.
type Option func(*CompositionRoot)

// WithSendRegistry enables duplicate-send suppression.
func WithSendRegistry(registry ports.SendRegistry) Option {
	return func(c *CompositionRoot) {
		c.registry = registry
	}
}

// WithClock replaces the system clock, mainly for tests.
func WithClock(clock kernel.Clock) Option {
	return func(c *CompositionRoot) {
		c.clock = clock
	}
}

// NewCompositionRoot creates a composition root. A nil logger disables logging.
//
// Example:
//
//	root := cmd.NewCompositionRoot(cfg, db, mailer, logger, cmd.WithSendRegistry(registry))
//	jobs, err := root.CreateJobManager()
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	mailer ports.Mailer,
	logger *zap.Logger,
	opts ...Option,
) CompositionRoot {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		mailer:     mailer,
		clock:      kernel.SystemClock(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) reviewUoWFactory() commands.ReviewUoWFactory {
	return FuncReviewUoWFactory(func() commands.ReviewUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) contactUoWFactory() commands.ContactUoWFactory {
	return FuncContactUoWFactory(func() commands.ContactUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) freelancerUoWFactory() commands.FreelancerUoWFactory {
	return FuncFreelancerUoWFactory(func() commands.FreelancerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryAll() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// CreateEventPublisher returns the publisher that turns domain events into
// notifications.
func (c *CompositionRoot) CreateEventPublisher() commands.EventPublisher {
	return commands.NewNotificationEventPublisher(
		services.NewNotificationDispatcher(),
		c.notificationUoWFactory(),
		c.clock,
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.CreateEventPublisher(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.CreateEventPublisher(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.orderUoWFactory(), c.CreateEventPublisher(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateCreateReviewCommandHandler() commands.CreateReviewCommandHandler {
	return commands.NewCreateReviewCommandHandler(c.reviewUoWFactory(), c.CreateEventPublisher(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateRaiseContactRequestCommandHandler() commands.RaiseContactRequestCommandHandler {
	return commands.NewRaiseContactRequestCommandHandler(c.contactUoWFactory(), c.CreateEventPublisher(), c.clock)
}

func (c *CompositionRoot) CreateResolveContactRequestCommandHandler() commands.ResolveContactRequestCommandHandler {
	return commands.NewResolveContactRequestCommandHandler(
		c.contactUoWFactory(), c.CreateEventPublisher(), c.clock, c.logger,
	)
}

func (c *CompositionRoot) CreateSubmitFreelancerRequestCommandHandler() commands.SubmitFreelancerRequestCommandHandler {
	return commands.NewSubmitFreelancerRequestCommandHandler(c.freelancerUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateResolveFreelancerRequestCommandHandler() commands.ResolveFreelancerRequestCommandHandler {
	return commands.NewResolveFreelancerRequestCommandHandler(
		c.freelancerUoWFactory(), c.CreateEventPublisher(), c.clock, c.logger,
	)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	return commands.NewMarkNotificationReadCommandHandler(c.notificationUoWFactory())
}

func (c *CompositionRoot) CreateDeleteUserCommandHandler() commands.DeleteUserCommandHandler {
	return commands.NewDeleteUserCommandHandler(c.uowFactoryAll())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.uowFactoryAll())
}

// CreateDeliverNotificationsCommandHandler builds the delivery pass from the
// delivery config. It fails if the retry policy is invalid.
func (c *CompositionRoot) CreateDeliverNotificationsCommandHandler() (commands.DeliverNotificationsCommandHandler, error) {
	d := c.cfg.Delivery
	policy, err := notification.NewRetryPolicy(d.MaxAttempts, d.BaseBackoff, d.MaxBackoff)
	if err != nil {
		return commands.DeliverNotificationsCommandHandler{}, fmt.Errorf("delivery retry policy: %w", err)
	}

	return commands.NewDeliverNotificationsCommandHandler(
		c.notificationUoWFactory(),
		c.mailer,
		c.registry,
		policy,
		c.clock,
		commands.DeliverySettings{
			Worker:      d.Worker,
			BatchSize:   d.BatchSize,
			Workers:     d.Workers,
			ClaimTTL:    d.ClaimTTL,
			SendTimeout: d.SendTimeout,
			RegistryTTL: d.RegistryTTL,
		},
		c.logger,
	), nil
}

// CreateRecoverArchivesCommandHandler builds the recovery sweep.
func (c *CompositionRoot) CreateRecoverArchivesCommandHandler() commands.RecoverArchivesCommandHandler {
	return commands.NewRecoverArchivesCommandHandler(c.notificationUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListHistoryQueryHandler() queries.ListHistoryQueryHandler {
	return queries.NewListHistoryQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every API endpoint to its use case.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:              c.CreateCreateOrderCommandHandler(),
		TransitionOrder:          c.CreateTransitionOrderCommandHandler(),
		DeliverOrder:             c.CreateDeliverOrderCommandHandler(),
		DeleteOrder:              c.CreateDeleteOrderCommandHandler(),
		CreateReview:             c.CreateCreateReviewCommandHandler(),
		RaiseContactRequest:      c.CreateRaiseContactRequestCommandHandler(),
		ResolveContactRequest:    c.CreateResolveContactRequestCommandHandler(),
		SubmitFreelancerRequest:  c.CreateSubmitFreelancerRequestCommandHandler(),
		ResolveFreelancerRequest: c.CreateResolveFreelancerRequestCommandHandler(),
		MarkNotificationRead:     c.CreateMarkNotificationReadCommandHandler(),
		DeleteUser:               c.CreateDeleteUserCommandHandler(),

		GetOrderStatus:    c.CreateGetOrderStatusQueryHandler(),
		ListNotifications: c.CreateListNotificationsQueryHandler(),
		ListHistory:       c.CreateListHistoryQueryHandler(),
	})
}

// CreateRouterConfig returns the router settings, with Ping as health check.
func (c *CompositionRoot) CreateRouterConfig() httpin.RouterConfig {
	return httpin.RouterConfig{
		JWTSecret:      []byte(c.cfg.Auth.JWTSecret),
		RequestTimeout: c.cfg.HTTP.RequestTimeout,
		Health:         c.Ping,
		Logger:         c.logger,
	}
}

// CreateJobManager schedules the delivery pipeline and the recovery sweep.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	deliver, err := c.CreateDeliverNotificationsCommandHandler()
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(
		jobs.NewNotificationDeliveryJob(deliver, c.cfg.Delivery.Schedule, c.logger),
		jobs.NewArchiveRecoveryJob(c.CreateRecoverArchivesCommandHandler(), c.cfg.Recovery.Schedule, c.logger),
	), nil
}

// SeedCategories inserts the configured reference categories. Existing names
// are left alone, so it is safe on every start.
func (c *CompositionRoot) SeedCategories(ctx context.Context) error {
	repo := c.uowFactory.Create().ServiceRepository()
	for _, name := range c.cfg.Database.SeedCategories {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := repo.AddCategory(ctx, catalog.Category{ID: kernel.NewUUID(), Name: name}); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}

// Ping reports whether the database answers.
func (c *CompositionRoot) Ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create calls f.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncReviewUoWFactory adapts a function to commands.ReviewUoWFactory.
type FuncReviewUoWFactory func() commands.ReviewUoW

// Create calls f.
func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}

// FuncContactUoWFactory adapts a function to commands.ContactUoWFactory.
type FuncContactUoWFactory func() commands.ContactUoW

// Create calls f.
func (f FuncContactUoWFactory) Create() commands.ContactUoW {
	return f()
}

// FuncFreelancerUoWFactory adapts a function to commands.FreelancerUoWFactory.
type FuncFreelancerUoWFactory func() commands.FreelancerUoW

// Create calls f.
func (f FuncFreelancerUoWFactory) Create() commands.FreelancerUoW {
	return f()
}

// FuncNotificationUoWFactory adapts a function to commands.NotificationUoWFactory.
type FuncNotificationUoWFactory func() commands.NotificationUoW

// Create calls f.
func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

// Create calls f.
func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
