package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/itec-institute/portal/config"
	"github.com/itec-institute/portal/internal/adapters/devauth"
	"github.com/itec-institute/portal/internal/adapters/memory"
	redisadapter "github.com/itec-institute/portal/internal/adapters/redis"
	"github.com/itec-institute/portal/internal/observability/statsd"
	"github.com/itec-institute/portal/internal/ports"
	"github.com/itec-institute/portal/internal/service"
)

// AuthOptions contains configuration for the login service.
type AuthOptions struct {
	Config *config.AppConfig
	Logger *slog.Logger

	// ConnectRedis is overridable for tests; defaults to ConnectRedis.
	ConnectRedis func(context.Context, RedisConnectOptions) (redis.UniversalClient, error)
}

// AuthComponents are the long-lived pieces built by BuildLoginService.
type AuthComponents struct {
	Login *service.LoginService

	// Reaper is set when the session store needs periodic sweeping (memory store).
	Reaper *service.SessionReaper

	// Redis is set when sessions live in Redis; the caller closes it on shutdown.
	Redis redis.UniversalClient

	// Metrics is set when StatsD emission is enabled.
	Metrics *statsd.Client
}

// Close releases resources held by the components.
func (c *AuthComponents) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	errs = append(errs, c.Metrics.Close())
	return errors.Join(errs...)
}

// BuildLoginService wires the credential directory, the configured session store, and the login service.
func BuildLoginService(ctx context.Context, opts AuthOptions) (*AuthComponents, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config

	directory, err := buildDirectory(cfg.Auth, logger)
	if err != nil {
		return nil, err
	}

	components := &AuthComponents{Metrics: buildMetricsClient(cfg.Observability.Metrics, logger)}
	var sink statsd.Sink
	if components.Metrics != nil {
		sink = components.Metrics
	}
	var sessions ports.SessionStore

	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		connect := opts.ConnectRedis
		if connect == nil {
			connect = ConnectRedis
		}
		client, connErr := connect(ctx, RedisConnectOptions{Config: cfg.Redis, Logger: logger})
		if connErr != nil {
			return nil, errors.Join(fmt.Errorf("connect session redis: %w", connErr), components.Close())
		}
		components.Redis = client
		sessions = redisadapter.NewSessionStoreWithPrefix(client, cfg.Session.KeyPrefix)
	default:
		store := memory.NewSessionStore()
		reaper, reaperErr := service.NewSessionReaper(service.SessionReaperOptions{
			Sweeper:  store,
			Interval: cfg.Session.SweepInterval,
			Logger:   logger,
			Metrics:  sink,
		})
		if reaperErr != nil {
			return nil, errors.Join(fmt.Errorf("build session reaper: %w", reaperErr), components.Close())
		}
		components.Reaper = reaper
		sessions = store
	}

	login, err := service.NewLoginService(service.LoginServiceOptions{
		Lookup:        directory,
		Sessions:      sessions,
		Logger:        logger,
		Metrics:       sink,
		SessionTTL:    cfg.Session.TTL,
		LookupTimeout: cfg.Auth.LookupTimeout,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("build login service: %w", err), components.Close())
	}
	components.Login = login

	logger.InfoContext(ctx, "login service ready",
		"session_store", string(cfg.Session.Store),
		"users", directory.Len(),
		"metrics", components.Metrics != nil,
	)
	return components, nil
}

func buildDirectory(cfg config.AuthConfig, logger *slog.Logger) (*devauth.Directory, error) {
	users := devauth.DefaultUsers()
	if cfg.UsersFile != "" {
		loaded, err := devauth.LoadUsersFile(cfg.UsersFile)
		if err != nil {
			return nil, err
		}
		users = loaded
	} else {
		logger.Warn("using built-in demo accounts; set AUTH_USERS_FILE for a real directory")
	}

	dir, err := devauth.NewDirectory(users)
	if err != nil {
		return nil, fmt.Errorf("build credential directory: %w", err)
	}
	return dir, nil
}

// buildMetricsClient returns nil when metrics are disabled or the client cannot be created.
// Metrics are best effort and never block startup.
func buildMetricsClient(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Address:    cfg.StatsdAddress,
		Prefix:     cfg.Prefix,
		GlobalTags: map[string]string{"service": "portal"},
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}
