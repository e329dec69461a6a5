// Command server runs the authentication demo API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/kbukum/webdemo/api/authdemo"
	"github.com/kbukum/webdemo/api/catalog"
	"github.com/kbukum/webdemo/api/jwtauth"
	"github.com/kbukum/webdemo/auth"
	"github.com/kbukum/webdemo/auth/password"
	"github.com/kbukum/webdemo/auth/token"
	"github.com/kbukum/webdemo/config"
	"github.com/kbukum/webdemo/logger"
	"github.com/kbukum/webdemo/observability"
	"github.com/kbukum/webdemo/server"
	"github.com/kbukum/webdemo/server/endpoint"
	"github.com/kbukum/webdemo/store"
	"github.com/kbukum/webdemo/version"
)

const serviceName = "server"

func main() {
	if err := run(); err != nil {
		logger.Error("Service failed", logger.Fields("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if cfg.Base.Version == "" {
		cfg.Base.Version = version.Version
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, cfg.Base.Name)
	logger.SetGlobalLogger(log)
	log.Info("Starting service", logger.Fields(
		"name", cfg.Base.Name,
		"version", cfg.Base.Version,
		"environment", cfg.Base.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := observability.Init(ctx, cfg.Observability, cfg.Base.Name, cfg.Base.Version, cfg.Base.Environment)
	if err != nil {
		return err
	}

	db, err := store.Open(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	if err := db.MigrateUp(); err != nil {
		return err
	}
	// AutoMigrate picks up model drift ahead of a versioned migration.
	// Development convenience only.
	if cfg.Store.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			return err
		}
	}

	metrics, err := observability.NewAuthMetrics(otel.Meter("github.com/kbukum/webdemo/auth"))
	if err != nil {
		return err
	}

	hasher := password.NewBcryptHasher(password.WithCost(cfg.Auth.PasswordCost))
	creds, err := auth.NewCredentialStore(cfg.Auth.Users, hasher)
	if err != nil {
		return err
	}
	codec, err := token.NewCodec(&cfg.Auth.Token)
	if err != nil {
		return err
	}

	sessions := auth.NewSessionStore()
	basic := auth.NewBasicStrategy(creds, hasher)
	staticToken := auth.NewStaticTokenStrategy(auth.NewStaticTokenTable(cfg.Auth.StaticTokens))
	session := auth.NewSessionStrategy(sessions, cfg.Auth.SessionCookie)
	jwt := auth.NewJWTStrategy(codec, creds, hasher)

	registry := auth.NewRegistry()
	registry.Register(basic)
	registry.Register(staticToken)
	registry.Register(session)
	registry.Register(jwt)
	log.Info("Auth strategies registered", logger.Fields("strategies", registry.Names()))

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(cfg.Base.Name, healthChecker(db))

	engine := srv.GinEngine()
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
	})

	api := engine.Group("/api/v1")
	authdemo.New(registry, sessions, log, metrics).Register(api)
	jwtauth.New(registry, log, metrics).Register(api)
	catalog.New(store.NewRepository(db), log).Register(api)

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Info("Service ready", logger.Fields("addr", srv.Addr()))

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Server shutdown error", logger.Fields("error", err.Error()))
	}
	if err := provider.Shutdown(shutdownCtx); err != nil {
		log.Error("Observability shutdown error", logger.Fields("error", err.Error()))
	}
	if err := db.Close(); err != nil {
		log.Error("Database close error", logger.Fields("error", err.Error()))
	}

	log.Info("Shutdown complete")
	return nil
}

// healthChecker reports database connectivity for the health endpoint.
func healthChecker(db *store.DB) endpoint.HealthChecker {
	return func(ctx context.Context) []endpoint.ComponentHealth {
		health := endpoint.ComponentHealth{Name: "database", Status: endpoint.StatusHealthy}
		if err := db.PingContext(ctx); err != nil {
			health.Status = endpoint.StatusUnhealthy
			health.Message = err.Error()
		}
		return []endpoint.ComponentHealth{health}
	}
}
