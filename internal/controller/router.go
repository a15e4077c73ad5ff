package controller

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vzabara/nuvei-gateway/internal/application/authorize"
	"github.com/vzabara/nuvei-gateway/internal/domain/transaction"
	"github.com/vzabara/nuvei-gateway/internal/infrastructure/config"
	"github.com/vzabara/nuvei-gateway/internal/infrastructure/observability"
	customMW "github.com/vzabara/nuvei-gateway/internal/middleware"
)

type RouterDeps struct {
	Pool              *pgxpool.Pool
	RedisClient       *redis.Client
	AuthorizeUC       *authorize.AuthorizeUseCase
	RefundUC          *authorize.RefundUseCase
	TransactionRepo   transaction.Repository
	ReplayStore       customMW.ReplayStore
	Metrics           *observability.Metrics
	Logger            zerolog.Logger
	CORSConfig        config.CORSConfig
	RequestsPerMinute int
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(customMW.SecurityHeaders())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"X-Idempotency-Replayed"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.Pool, deps.RedisClient)
	paymentH := NewPaymentController(deps.AuthorizeUC, deps.RefundUC, deps.Metrics, deps.Logger)
	transactionH := NewTransactionController(deps.TransactionRepo)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(customMW.RateLimit(deps.RequestsPerMinute))

		idempotencyMW := customMW.Idempotency(deps.ReplayStore, deps.Logger)

		r.With(idempotencyMW).Post("/payments/authorize", paymentH.Authorize)
		r.Post("/payments/{orderID}/refund", paymentH.Refund)

		r.Get("/orders/{orderID}/transactions", transactionH.ListByOrder)
		r.Get("/transactions/{uniqueRef}", transactionH.GetByUniqueRef)
	})

	return r
}
