package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nrng2025001/motorsync-sub002/internal/app"
	"github.com/nrng2025001/motorsync-sub002/internal/booking"
	"github.com/nrng2025001/motorsync-sub002/internal/enquiry"
	"github.com/nrng2025001/motorsync-sub002/internal/identity"
	"github.com/nrng2025001/motorsync-sub002/internal/platform/cache"
	"github.com/nrng2025001/motorsync-sub002/internal/quotation"
	"github.com/nrng2025001/motorsync-sub002/internal/stats"
	"github.com/nrng2025001/motorsync-sub002/internal/upstream"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Token verification degrades to per-request identity lookups.
		logger.Warn("redis unavailable, token cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	backend := upstream.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, logger)
	verifier := identity.NewVerifier(cfg.IdentityBaseURL, redisClient, cfg.TokenCacheTTL, logger)

	enquiryService := enquiry.NewService(backend, logger)
	enquiryHandler := enquiry.NewHandler(logger, enquiryService)

	bookingService := booking.NewService(backend, logger)
	bookingHandler := booking.NewHandler(logger, bookingService)

	quotationService := quotation.NewService(backend, logger)
	quotationHandler := quotation.NewHandler(logger, quotationService)

	statsService := stats.NewService(enquiryService, logger)
	statsHandler := stats.NewHandler(logger, statsService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Auth:             &app.Auth{Logger: logger, Verifier: verifier},
		EnquiryHandler:   enquiryHandler,
		BookingHandler:   bookingHandler,
		QuotationHandler: quotationHandler,
		StatsHandler:     statsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
