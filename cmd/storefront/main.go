package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tair/storefront-state/internal/app"
	"github.com/tair/storefront-state/internal/config"
	storefronthttp "github.com/tair/storefront-state/internal/storefront/delivery/http"
	"github.com/tair/storefront-state/internal/storefront/usecase/command"
	"github.com/tair/storefront-state/kafka"
	"github.com/tair/storefront-state/pkg/logger"
	"github.com/tair/storefront-state/pkg/tracing"
)

func main() {
	cfg, err := config.Load()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("backend", cfg.Backend).
		Msg("Starting storefront state service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize tracer
	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.ServiceName,
		JaegerEndpoint: cfg.JaegerEndpoint,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Open the state backend
	store, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open state backend")
	}
	defer store.close()

	// Order events are optional
	var publisher command.OrderEventPublisher = command.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka publisher, order events disabled")
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
		}
	}

	// Build the container with Wire DI and restore persisted state
	container, err := app.InitializeContainer(store.repo, cfg.Pricing, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize container")
	}
	if err := container.Hydrate(ctx); err != nil {
		logger.Logger.Warn().Err(err).Msg("Some stores started empty")
	}

	if len(cfg.KafkaBrokers) > 0 {
		consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, []string{kafka.TopicFulfillment})
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to create Kafka consumer, fulfillment updates disabled")
		} else {
			defer consumer.Close()
			consumer.RegisterHandler(kafka.EventTypeOrderStatusChanged,
				command.FulfillmentEventHandler(container.Commands.UpdateOrderStatus))
			consumer.Start(ctx)
		}
	}

	handler, err := storefronthttp.NewStorefrontHandler(container, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}
	defer handler.Close()

	server := newHTTPServer(handler, store.ping, cfg.HTTPPort)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Error().Err(err).Msg("HTTP server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
		os.Exit(1)
	}
	logger.Logger.Info().Msg("Server exited")
}

func newHTTPServer(handler *storefronthttp.StorefrontHandler, ping func(context.Context) error, port string) *http.Server {
	router := mux.NewRouter()

	storefronthttp.RegisterMiddlewares(router, storefronthttp.DefaultMiddlewareConfig())
	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, ping)
	storefronthttp.RegisterSwaggerDocs(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return &http.Server{
		Addr:              ":" + port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
