// Package server assembles the storefront: it opens the store, cache and
// mail backends, builds the module services and mounts their routes.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/georgemunganga/gluto-backend/internal/cache"
	"github.com/georgemunganga/gluto-backend/internal/config"
	"github.com/georgemunganga/gluto-backend/internal/httpx"
	"github.com/georgemunganga/gluto-backend/internal/logger"
	"github.com/georgemunganga/gluto-backend/internal/mail"
	"github.com/georgemunganga/gluto-backend/internal/metrics"
	"github.com/georgemunganga/gluto-backend/internal/modules/auth"
	"github.com/georgemunganga/gluto-backend/internal/modules/catalog"
	"github.com/georgemunganga/gluto-backend/internal/modules/category"
	"github.com/georgemunganga/gluto-backend/internal/modules/order"
	"github.com/georgemunganga/gluto-backend/internal/modules/user"
)

// App holds the wired services and the HTTP router.
type App struct {
	Categories category.Service
	Catalog    catalog.Service
	Orders     order.Service
	Users      user.Service
	Auth       auth.Service
	Notifier   *order.MailNotifier
	Metrics    *metrics.Metrics

	cfg    *config.Config
	log    *slog.Logger
	stores *Stores
	redis  *redis.Client
	router chi.Router
}

// Deps are the backends an App is built on.
type Deps struct {
	Stores *Stores
	Cache  cache.Cache
	Mailer mail.Sender
}

// Open connects every backend named in cfg and builds the App.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	stores, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	var c cache.Cache = cache.Noop{}
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			_ = stores.Close(context.Background())
			return nil, err
		}
		c = cache.NewRedis(rdb, "gluto:", cfg.CacheTTL, m.CacheLookups)
	}

	var sender mail.Sender = mail.Log{Logger: log}
	if cfg.MailHost != "" {
		sender = mail.NewSMTP(mail.SMTPConfig{
			Host:     cfg.MailHost,
			Port:     cfg.MailPort,
			Username: cfg.MailUsername,
			Password: cfg.MailPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		})
	}

	app := New(cfg, log, m, Deps{Stores: stores, Cache: c, Mailer: sender})
	app.redis = rdb
	return app, nil
}

// New builds the App on already opened backends.
func New(cfg *config.Config, log *slog.Logger, m *metrics.Metrics, deps Deps) *App {
	if m == nil {
		m = metrics.New()
	}
	if deps.Cache == nil {
		deps.Cache = cache.Noop{}
	}

	app := &App{cfg: cfg, log: log, stores: deps.Stores, Metrics: m}
	app.Categories = category.NewService(deps.Stores.Categories, deps.Cache)
	app.Catalog = catalog.NewService(deps.Stores.Products, app.Categories, deps.Cache)
	app.Notifier = order.NewMailNotifier(deps.Mailer, cfg.AdminEmail, cfg.MailTimeout, m.Notifications, log)
	app.Orders = order.NewService(deps.Stores.Orders, app.Catalog, app.Notifier, m.OrdersPlaced)
	app.Users = user.NewService(deps.Stores.Users)
	app.Auth = auth.NewService(deps.Stores.Users, cfg.JWTSecret, cfg.JWTTTL)
	app.router = app.routes()
	return app
}

func (a *App) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(a.log))
	r.Use(middleware.Recoverer)
	r.Use(a.Metrics.Middleware)
	r.Use(middleware.Timeout(a.cfg.StoreTimeout))

	r.Get("/healthz", a.health)
	r.Method(http.MethodGet, "/metrics", a.Metrics.Handler())

	sessions := auth.NewSessions(a.Auth, a.cfg.JWTTTL, a.cfg.CookieSecure)
	categories := category.NewHandler(a.Categories)
	products := catalog.NewHandler(a.Catalog)
	orders := order.NewHandler(a.Orders)

	categories.RegisterRoutes(r)
	products.RegisterRoutes(r)
	orders.RegisterRoutes(r)
	user.NewHandler(a.Users, sessions).RegisterRoutes(r)
	auth.NewHandler(a.Auth, a.Users, sessions).RegisterRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(a.Auth), auth.RequireAdmin(a.Auth))
		categories.RegisterAdminRoutes(r)
		products.RegisterAdminRoutes(r)
		orders.RegisterAdminRoutes(r)
	})
	return r
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.router }

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	if err := a.stores.Ping(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error("health check failed", "error", err)
		httpx.Respond(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Close drains pending notifications and releases the backends.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Notifier.Wait(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.stores.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
