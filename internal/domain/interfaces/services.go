package interfaces

import (
	"context"

	domaintypes "signin/internal/domain/types"
)

// LoginService signs in with the gateway and persists the issued token.
type LoginService interface {
	Login(ctx context.Context, creds domaintypes.Credentials) error
}

// SessionService inspects and clears the locally stored session.
type SessionService interface {
	Current(ctx context.Context) (domaintypes.SessionInfo, error)
	Logout(ctx context.Context) error
}
