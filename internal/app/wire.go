package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"signin/internal/domain"
	"signin/internal/gateway"
	loginsvc "signin/internal/services/login"
	sessionsvc "signin/internal/services/session"
	"signin/internal/store"
)

// New constructs the dependency graph from cfg.
func New(cfg Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	a := &App{Config: cfg, Logger: logger}

	st, closer, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	a.Store = st

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	a.Gateway = gateway.NewHTTP(cfg.AuthURL, httpClient, logger.With("component", "gateway"))

	// High-level services
	a.Login = loginsvc.New(a.Gateway, a.Store, logger.With("component", "login"))
	a.Session = sessionsvc.New(a.Store, logger.With("component", "session"))

	logger.Debug("app wired", "auth_url", cfg.AuthURL, "store", cfg.Store.Backend)
	return a, nil
}

func newStore(cfg Config) (domain.CredentialStore, io.Closer, error) {
	switch cfg.Store.Backend {
	case BackendFile:
		return store.NewFileTokenStore(cfg.Home, store.WithPassphrase(cfg.Passphrase)), nil, nil
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		return store.NewRedisTokenStore(rdb, cfg.Store.Redis.Prefix), rdb, nil
	case BackendMemory:
		return store.NewMemoryTokenStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
