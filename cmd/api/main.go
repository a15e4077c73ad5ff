package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vzabara/nuvei-gateway/internal/application/authorize"
	"github.com/vzabara/nuvei-gateway/internal/bootstrap"
	"github.com/vzabara/nuvei-gateway/internal/controller"
	"github.com/vzabara/nuvei-gateway/internal/gateway/nuvei"
	"github.com/vzabara/nuvei-gateway/internal/infrastructure/config"
	infraRedis "github.com/vzabara/nuvei-gateway/internal/infrastructure/redis"
	"github.com/vzabara/nuvei-gateway/internal/repository/postgres"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, "nuvei-gateway-api", "nuvei")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Repositories and adapters ---
	transactionRepo := postgres.NewTransactionRepository(app.Pool)
	orderSink := postgres.NewOrderSink(app.Pool)
	replayStore := infraRedis.NewReplayStore(app.Redis, app.Config.Gateway.IdempotencyTTL)

	credentials, err := config.NewCredentialsSource()
	if err != nil {
		app.Logger.Fatal().Err(err).Msg("Failed to initialize credentials source")
	}

	gatewayClient := nuvei.NewClient(
		nuvei.WithTimeout(app.Config.Gateway.Timeout),
		nuvei.WithLatencyObserver(func(d time.Duration) {
			app.Metrics.GatewayDuration.Observe(d.Seconds())
		}),
	)

	// --- Use cases ---
	authorizeUC := authorize.NewAuthorizeUseCase(
		gatewayClient,
		credentials,
		transactionRepo,
		orderSink,
		app.Logger,
	)
	refundUC := authorize.NewRefundUseCase(app.Logger)

	// --- Router ---
	router := controller.NewRouter(controller.RouterDeps{
		Pool:              app.Pool,
		RedisClient:       app.Redis,
		AuthorizeUC:       authorizeUC,
		RefundUC:          refundUC,
		TransactionRepo:   transactionRepo,
		ReplayStore:       replayStore,
		Metrics:           app.Metrics,
		Logger:            app.Logger,
		CORSConfig:        app.Config.Server.CORS,
		RequestsPerMinute: app.Config.Server.RequestsPerMinute,
	})

	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// Mirror the processor circuit breaker state into the gauge.
	g.Go(func() error {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				app.Metrics.CircuitBreakerState.Set(breakerStateValue(gatewayClient.BreakerState()))
			}
		}
	})

	g.Go(func() error {
		select {
		case <-gCtx.Done():
			return gCtx.Err()
		case <-quit:
			app.Logger.Info().Msg("Shutting down server...")
		}

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.Logger.Error().Err(err).Msg("Server forced to shutdown")
		}
		cancel()
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		app.Logger.Error().Err(err).Msg("Server error")
	}
	app.Logger.Info().Msg("Server exited")
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 2
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 0
	}
}
