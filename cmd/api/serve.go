package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mentra/group-booking/internal/events"
	"github.com/mentra/group-booking/internal/handler"
	"github.com/mentra/group-booking/internal/llm"
	"github.com/mentra/group-booking/internal/service"
	"github.com/mentra/group-booking/internal/store"
	"github.com/mentra/group-booking/pkg/tracing"
)

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting API server", zap.String("provider", cfg.LLMProvider))

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "group-booking", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer func() { _ = tracing.Shutdown(context.Background(), tp) }()
		}
	}

	files, err := store.Open(cfg.DataDir)
	if err != nil {
		return err
	}

	checks := map[string]handler.ReadinessCheck{"store": files.Check}

	// Events are optional: without NATS_URL bookings are simply not published.
	var publisher service.EventPublisher
	if cfg.NATSURL != "" {
		natsClient, err := events.Connect(ctx, events.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			return err
		}
		defer natsClient.Close()

		if err := events.EnsureStream(ctx, natsClient.JetStream()); err != nil {
			return err
		}
		publisher = events.NewPublisher(natsClient)
		checks["nats"] = natsClient.Ping
	}

	provider := llm.Provider(cfg.LLMProvider)
	base, err := llm.NewClient(provider, cfg.LLMAPIKey())
	if err != nil {
		log.Warn("LLM client unavailable, chat and insights will fail", zap.Error(err))
		base = llm.Unavailable(provider)
	}
	llmClient := llm.NewInstrumented(base, log)

	catalog := service.NewGroupCatalog(files)
	bookings := service.NewBookingStore(files, publisher, log)
	extractor := service.NewInsightExtractor(llmClient, catalog, log, cfg.LLMModel)
	recommender := service.NewGroupRecommender(llmClient, log, cfg.LLMModel)
	profiles := service.NewProfileService(extractor, recommender, catalog)
	summarizer := service.NewHandoffSummarizer(llmClient, log, cfg.LLMModel)
	handoffs := service.NewHandoffService(catalog, bookings, summarizer, publisher, log)

	router := handler.NewRouter(handler.Handlers{
		Health:  handler.NewHealthHandler(checks),
		Chat:    handler.NewChatHandler(extractor, profiles, log),
		Groups:  handler.NewGroupHandler(catalog, log),
		Booking: handler.NewBookingHandler(bookings, log),
		Handoff: handler.NewHandoffHandler(handoffs, log),
	}, handler.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRequests:  cfg.RateLimitRequests,
		RateLimitWindow:    cfg.RateLimitWindow,
		TherapistJWTSecret: cfg.TherapistJWTSecret,
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}
