package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nmoreno/portfolio-ui/config"
	memorystore "github.com/nmoreno/portfolio-ui/internal/adapters/memory"
	redisstore "github.com/nmoreno/portfolio-ui/internal/adapters/redis"
	"github.com/nmoreno/portfolio-ui/internal/ports"
	"github.com/nmoreno/portfolio-ui/internal/service"
	"github.com/nmoreno/portfolio-ui/internal/upstream"
)

const shutdownWaitTimeout = 10 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Experience *service.ExperienceService
	Messages   *service.MessageService
	Projects   *service.ProjectService
	Dashboard  *service.DashboardService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the backend client, session store, and application
// services from configuration.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	backend, err := upstream.NewClient(upstream.ClientOptions{
		BaseURL:    cfg.Backend.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout},
		Logger:     logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create backend client: %w", err)
	}

	sessions, err := buildSessionStore(cfg, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, err
	}

	auth := service.NewAuthService(service.AuthServiceOptions{
		Backend:    backend,
		Sessions:   sessions,
		SessionTTL: cfg.Session.TTL,
		Logger:     logger,
	})

	experience, err := service.NewExperienceService(service.ExperienceServiceOptions{
		Backend: backend,
		Auth:    auth,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create experience service: %w", err)
	}

	messages, err := service.NewMessageService(service.MessageServiceOptions{
		Backend: backend,
		Auth:    auth,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create message service: %w", err)
	}

	projects, err := service.NewProjectService(service.ProjectServiceOptions{
		Backend: backend,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create project service: %w", err)
	}

	dashboard, err := service.NewDashboardService(service.DashboardServiceOptions{
		Backend: backend,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create dashboard service: %w", err)
	}

	return ServiceContainer{
		Auth:       auth,
		Experience: experience,
		Messages:   messages,
		Projects:   projects,
		Dashboard:  dashboard,
	}, nil
}

// buildSessionStore selects the session store backend per configuration.
//
//nolint:ireturn // Returning the port keeps the store backend swappable.
func buildSessionStore(cfg *config.AppConfig, client redis.UniversalClient) (ports.SessionStore, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		if client == nil {
			return nil, errors.New("redis session store selected but no redis client configured")
		}
		return redisstore.NewSessionStoreWithPrefix(client, cfg.Session.KeyPrefix), nil
	default:
		return memorystore.NewSessionStore(), nil
	}
}

// ConnectRedis establishes a connection to Redis and verifies it with a ping.
// Returns nil without error when the memory session store is configured.
//
//nolint:ireturn // redis.UniversalClient keeps sentinel/cluster support open.
func ConnectRedis(cfg *config.AppConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	if cfg == nil || cfg.Session.Store != config.SessionStoreRedis {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	if logger != nil {
		logger.Info("redis connected", "addr", cfg.Redis.Addr)
	}

	return client, nil
}

// RunConfig groups dependencies for the server lifecycle.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunWithShutdown starts the HTTP server and blocks until a shutdown
// signal is received.
func RunWithShutdown(cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config with app config is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	return waitForShutdown(shutdownConfig{
		server: server,
		logger: logger,
	})
}

type shutdownConfig struct {
	server *http.Server
	logger *slog.Logger
}

// waitForShutdown waits for SIGINT or SIGTERM, then stops the server.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	cfg.logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()

	return ShutdownHTTPServer(ShutdownConfig{
		Context: shutdownCtx,
		Server:  cfg.server,
		Logger:  cfg.logger,
	})
}
