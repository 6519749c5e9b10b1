package service

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"tourbook/checkout"
	"tourbook/db"
	"tourbook/db/bookings"
	"tourbook/db/discounts"
	"tourbook/db/tenants"
	"tourbook/db/tours"
	"tourbook/db/users"
	"tourbook/http"
	"tourbook/pubsub"
	"tourbook/pubsub/bus"
	"tourbook/pubsub/event"
	"tourbook/pubsub/outbox"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	db              *sqlx.DB
	watermillLogger watermill.LoggerAdapter
	watermillRouter *message.Router
	outboxForwarder *forwarder.Forwarder
	httpServer      *http.Server
}

func New(
	addr string,
	dbConn *sqlx.DB,
	redisClient *redis.Client,
	paymentGateway checkout.PaymentGateway,
	mailerService event.MailerService,
	exposeErrors bool,
) Service {
	bookingsRepo := bookings.NewPostgresRepository(dbConn)
	toursRepo := tours.NewPostgresRepository(dbConn)
	tenantsRepo := tenants.NewPostgresRepository(dbConn)
	usersRepo := users.NewPostgresRepository(dbConn)
	discountsRepo := discounts.NewPostgresRepository(dbConn)

	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))

	redisPublisher := pubsub.NewRedisPublisher(redisClient, watermillLogger)

	eventBus, err := bus.NewEventBus(redisPublisher)
	if err != nil {
		panic(fmt.Errorf("failed to create event bus: %w", err))
	}

	checkoutWorkflow := checkout.NewWorkflow(
		bookingsRepo,
		toursRepo,
		tenantsRepo,
		usersRepo,
		discountsRepo,
		paymentGateway,
		eventBus,
	)

	eventsHandler := event.NewHandler(mailerService, tenantsRepo)

	watermillRouter, err := pubsub.NewWatermillRouter(redisClient, eventsHandler, watermillLogger)
	if err != nil {
		panic(fmt.Errorf("failed to create watermill router: %w", err))
	}

	outboxForwarder, err := outbox.NewForwarder(dbConn, redisClient, watermillLogger)
	if err != nil {
		panic(fmt.Errorf("failed to create outbox forwarder: %w", err))
	}

	httpServer := http.NewServer(
		addr,
		checkoutWorkflow,
		bookingsRepo,
		toursRepo,
		exposeErrors,
	)

	return Service{
		db:              dbConn,
		watermillLogger: watermillLogger,
		watermillRouter: watermillRouter,
		outboxForwarder: outboxForwarder,
		httpServer:      httpServer,
	}
}

func (s Service) Run(ctx context.Context) error {
	if err := db.InitializeDatabaseSchema(s.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	// the first checkout may hit the outbox before the forwarder subscribes
	if err := outbox.InitializeSchema(s.db, s.watermillLogger); err != nil {
		return fmt.Errorf("failed to initialize outbox schema: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	g.Go(func() error {
		return s.outboxForwarder.Run(ctx)
	})

	g.Go(func() error {
		// don't start HTTP server before the router, so the service is not
		// reported healthy before it can handle events
		<-s.watermillRouter.Running()

		return s.httpServer.Run(ctx)
	})

	return g.Wait()
}
