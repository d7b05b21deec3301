package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory_console/internal/config"
	"github.com/Skotchmaster/inventory_console/internal/dashboard"
	"github.com/Skotchmaster/inventory_console/internal/db"
	"github.com/Skotchmaster/inventory_console/internal/es"
	"github.com/Skotchmaster/inventory_console/internal/gateway"
	"github.com/Skotchmaster/inventory_console/internal/gateway/rest"
	"github.com/Skotchmaster/inventory_console/internal/gateway/store"
	"github.com/Skotchmaster/inventory_console/internal/handlers"
	"github.com/Skotchmaster/inventory_console/internal/logging"
	"github.com/Skotchmaster/inventory_console/internal/metrics"
	authmw "github.com/Skotchmaster/inventory_console/internal/middleware/auth"
	"github.com/Skotchmaster/inventory_console/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/inventory_console/internal/middleware/logging"
	"github.com/Skotchmaster/inventory_console/internal/models"
	"github.com/Skotchmaster/inventory_console/internal/mykafka"
	"github.com/Skotchmaster/inventory_console/internal/service/search"
	"github.com/Skotchmaster/inventory_console/internal/session"
	httpserver "github.com/Skotchmaster/inventory_console/internal/transport/http"
	"github.com/Skotchmaster/inventory_console/web"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel)
	ctx := logging.IntoContext(context.Background(), logger)

	gw, database, err := openGateway(ctx, cfg)
	if err != nil {
		logger.Error("gateway_init_failed", "mode", cfg.GatewayMode, "error", err)
		os.Exit(1)
	}
	gw = metrics.Instrument(gw)

	var producer *mykafka.Producer
	if cfg.EventsEnabled() {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
		gw = gateway.WithEvents(gw, producer, cfg.ProductEventsTopic)
		logger.Info("product_events_enabled", "topic", cfg.ProductEventsTopic, "brokers", strings.Join(cfg.KafkaBrokers, ","))
	}

	searchHandler := handlers.NewSearchHandler(nil)
	if cfg.SearchEnabled() {
		esClient, err := es.NewClient(ctx, cfg)
		if err != nil {
			logger.Error("search_disabled", "error", err)
		} else {
			searchHandler = handlers.NewSearchHandler(search.NewService(esClient, cfg.ESIndex))
		}
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Error("templates_failed", "error", err)
		os.Exit(1)
	}

	sessions := &authmw.Sessions{
		Key:    cfg.SessionCookie,
		Secret: cfg.SessionSecret,
		Cookie: session.CookieOptions{Path: "/", Secure: cfg.CookieSecure, SameSite: http.SameSiteLaxMode},
	}

	csrfCfg := csrf.DefaultConfig()
	csrfCfg.Secure = cfg.CookieSecure
	csrfCfg.SkipPaths = []string{"/health/live", "/health/ready", "/metrics"}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.Secure())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(csrf.Middleware(csrfCfg))

	deps := httpserver.Deps{
		Sessions:      sessions,
		SignInHandler: &handlers.SignInHandler{Gateway: gw, Sessions: sessions},
		DashboardHandler: &handlers.DashboardHandler{
			Gateway:  gw,
			Sessions: sessions,
			Views:    dashboard.NewRegistry(time.Duration(cfg.ViewIdleMin) * time.Minute),
		},
		SearchHandler: searchHandler,
	}
	if database != nil {
		deps.Ready = func() error {
			sqlDB, err := database.DB()
			if err != nil {
				return err
			}
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return sqlDB.PingContext(pingCtx)
		}
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_listening", "addr", cfg.ListenAddr, "gateway_mode", cfg.GatewayMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if database != nil {
		if sqlDB, err := database.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Error("db_close_error", "error", err)
			}
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}
	logger.Info("shutdown complete")
}

// openGateway returns the backend for the configured mode. The database handle
// is nil in rest mode.
func openGateway(ctx context.Context, cfg *config.Config) (gateway.Gateway, *gorm.DB, error) {
	if cfg.GatewayMode == config.GatewayModeREST {
		return rest.NewClient(cfg.GatewayURL, cfg.GatewayAPIKey), nil, nil
	}

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	repo := &store.GormRepo{DB: database}
	if err := repo.Migrate(); err != nil {
		return nil, nil, err
	}
	if cfg.BootstrapAdminEmail != "" && cfg.BootstrapAdminPassword != "" {
		name, _, _ := strings.Cut(cfg.BootstrapAdminEmail, "@")
		if _, err := repo.CreateMember(ctx, cfg.BootstrapAdminEmail, name, cfg.BootstrapAdminPassword, models.RoleAdmin); err != nil {
			return nil, nil, err
		}
		logging.FromContext(ctx).Info("bootstrap_admin_ready", "email", cfg.BootstrapAdminEmail)
	}
	return repo, database, nil
}
