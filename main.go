package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appetiteclub/foh/internal/board"
	"github.com/appetiteclub/foh/internal/counter"
	"github.com/appetiteclub/foh/internal/events"
	"github.com/appetiteclub/foh/internal/foh"
	"github.com/appetiteclub/foh/internal/mongo"
	"github.com/appetiteclub/foh/internal/order"
	"github.com/appetiteclub/foh/internal/stream"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/middleware"
)

const (
	appNamespace = "FOH"
	appName      = "foh"
	appVersion   = "0.1.0"
)

func main() {
	config, err := aqm.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("Cannot setup %s(%s): %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := aqm.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	ticketRepo := mongo.NewTicketRepo(config, logger)

	natsURL, _ := config.GetString("nats.url")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	publisher, err := events.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("Cannot connect to NATS publisher: %v", err)
	}

	subscriber, err := events.NewNATSSubscriber(natsURL)
	if err != nil {
		log.Fatalf("Cannot connect to NATS subscriber: %v", err)
	}

	sessions := order.NewSessionStore(logger)
	tableSubscriber := events.NewTableSubscriber(subscriber, sessions, logger)

	ticketCache := counter.NewTicketStateCache(ticketRepo, logger)

	pollInterval := counter.DefaultPollInterval
	if raw, _ := config.GetString("board.poll_interval"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			pollInterval = parsed
		} else {
			logger.Infof("Invalid board.poll_interval %q, using default %s", raw, pollInterval)
		}
	}
	poller := counter.NewPoller(ticketRepo, ticketCache, pollInterval, logger)

	overrides := board.NewOverrideStore()
	aggregator := board.NewAggregator(sessions, ticketCache, logger)

	broadcaster := stream.NewBroadcaster(logger)
	sseHandler := stream.NewSSEHandler(broadcaster, logger)

	handler := foh.NewHandler(foh.HandlerDeps{
		Sessions:    sessions,
		TicketStore: ticketRepo,
		Tickets:     ticketCache,
		Aggregator:  aggregator,
		Overrides:   overrides,
		Publisher:   publisher,
		Broadcaster: broadcaster,
		SSE:         sseHandler,
	}, config, logger)

	lifecycle := []interface{}{ticketRepo, tableSubscriber, poller}

	demoEnabled, _ := config.GetString("seeding.demo")
	if demoEnabled == "true" {
		logger.Info("Demo seeding enabled for counter tickets")
		seedHooks := aqm.LifecycleHooks{
			OnStart: func(ctx context.Context) error {
				return counter.ApplyDemoSeeds(ctx, ticketRepo, ticketRepo.GetDatabase(), logger)
			},
		}
		lifecycle = append(lifecycle, seedHooks)
	}

	lifecycle = append(lifecycle, aqm.LifecycleHooks{OnStop: broadcaster.Stop})

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: logger,
	})

	options := []aqm.Option{
		aqm.WithConfig(config),
		aqm.WithLogger(logger),
		aqm.WithHTTPMiddleware(stack...),
		aqm.WithHTTPServerModules("web.port", handler),
		aqm.WithLifecycle(lifecycle...),
		aqm.WithHealthChecks(appName),
	}

	ms := aqm.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		_ = ticketRepo.Stop(context.Background())
		log.Fatalf("%s(%s) stopped with error: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
