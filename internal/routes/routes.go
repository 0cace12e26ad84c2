package routes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/credlane/credlane/internal/config"
	"github.com/credlane/credlane/internal/middleware"
	"github.com/credlane/credlane/internal/notification"
	"github.com/credlane/credlane/internal/session"
	"github.com/credlane/credlane/internal/submission"
	"github.com/credlane/credlane/internal/user"
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
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Metrics())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)
	RegisterMetricsRoute(app)

	// Stores: flat files by default, Postgres when DATABASE_URL is set.
	var userRepo user.Repository
	var submissionStore submission.Store
	if d.DB != nil {
		pgUsers := user.NewPostgresRepository(d.DB)
		pgSubmissions := submission.NewPostgresStore(d.DB)
		if err := pgUsers.EnsureSchema(context.Background()); err != nil {
			return fmt.Errorf("ensure users schema: %w", err)
		}
		if err := pgSubmissions.EnsureSchema(context.Background()); err != nil {
			return fmt.Errorf("ensure submissions schema: %w", err)
		}
		userRepo = pgUsers
		submissionStore = pgSubmissions
	} else {
		userRepo = user.NewFileRepository(d.Cfg.DataDir)
		submissionStore = submission.NewFileStore(d.Cfg.DataDir)
	}

	codec := session.NewCodec(d.Cfg.SessionSecret, d.Cfg.IsProduction())
	userSvc := user.NewService(userRepo)
	notifier := notification.NewLoggerNotifier(d.Logger)
	submissionSvc := submission.NewService(submissionStore, notifier)

	authHandler := user.NewHandler(userSvc, codec)
	submissionHandler := submission.NewHandler(submissionSvc)

	// The gate runs ahead of every route so protected dashboard paths
	// redirect to the login page before any handler executes.
	app.Use(middleware.AccessGate(codec))

	api := app.Group("/api")

	sessionAuth := middleware.SessionAuth(codec, userSvc)
	var rateLimiter fiber.Handler
	if d.Cache != nil {
		rateLimiter = middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRatePerMin)
	}
	RegisterAuthRoutes(api, authHandler, sessionAuth, rateLimiter)
	RegisterSubmissionRoutes(api, submissionHandler, sessionAuth)

	return nil
}
