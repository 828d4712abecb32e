package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/dagron78/custodyvault/internal/auth"
	"github.com/dagron78/custodyvault/internal/config"
	"github.com/dagron78/custodyvault/internal/ledger"
	"github.com/dagron78/custodyvault/internal/middleware"
	"github.com/dagron78/custodyvault/internal/money"
	"github.com/dagron78/custodyvault/internal/notification"
	"github.com/dagron78/custodyvault/internal/payout"
	"github.com/dagron78/custodyvault/internal/registry"
	"github.com/dagron78/custodyvault/internal/token"
	"github.com/dagron78/custodyvault/internal/vault"
)

const (
	loginAttemptsPerMinute = 5
	vaultCallsPerMinute    = 60
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// main enforces this too; keep the invariant local so tests that wire
	// routes directly cannot skip it.
	if !d.Cfg.Dev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var store ledger.Store
	var depositorRepo registry.Repository
	if d.DB != nil {
		store = ledger.NewPostgresStore(d.DB)
		depositorRepo = registry.NewPostgresRepository(d.DB)
	} else {
		store = ledger.NewInMemory()
		depositorRepo = registry.NewMemoryRepository()
	}

	dailyLimit, err := money.FromCoins(d.Cfg.DailyLimitCoins)
	if err != nil {
		return fmt.Errorf("daily limit out of range: %w", err)
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	engine, err := vault.New(context.Background(), vault.Deps{
		Store:    store,
		Gateway:  payout.NewLogGateway(d.Logger),
		Tokens:   token.NewLogForwarder(d.Logger),
		Notifier: notifier,
		Logger:   d.Logger,
	}, vault.Policy{
		WithdrawalDelay: d.Cfg.WithdrawalDelay,
		ExecutionWindow: d.Cfg.ExecutionWindow,
		DailyLimit:      dailyLimit,
		DayLength:       d.Cfg.DayLength,
	}, d.Cfg.OwnerAccount)
	if err != nil {
		return fmt.Errorf("initialize vault: %w", err)
	}

	depositorSvc := registry.NewService(depositorRepo)
	authSvc := auth.NewService(d.Cfg)

	depositorHandler := registry.NewHandler(depositorSvc)
	authHandler := auth.NewHandler(depositorSvc, authSvc)
	vaultHandler := vault.NewHandler(engine)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		requestID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": requestID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	api.Post("/depositors", depositorHandler.Register)
	RegisterAuthRoutes(api, authHandler, middleware.LoginRateLimit(d.Cache, loginAttemptsPerMinute))

	// Protected routes
	protected := api.Group("", middleware.AccountAuth(d.Cfg))
	RegisterVaultRoutes(protected, vaultHandler, d)

	return nil
}
