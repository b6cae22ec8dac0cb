package app

import (
	"io"
	"log/slog"

	"signin/internal/domain"
	"signin/internal/flow"
)

// App bundles the store, gateway and services for the CLI.
type App struct {
	Config  Config
	Logger  *slog.Logger
	Store   domain.CredentialStore
	Gateway domain.AuthGateway
	Login   domain.LoginService
	Session domain.SessionService

	closers []io.Closer
}

// NewFlow returns a fresh sign-in controller bound to the login service.
// Callers must Dispose it.
func (a *App) NewFlow() *flow.Controller {
	return flow.New(a.Login,
		flow.WithLogger(a.Logger.With("component", "flow")),
		flow.WithTimeout(a.Config.Timeout),
	)
}

// Close releases backend connections.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
