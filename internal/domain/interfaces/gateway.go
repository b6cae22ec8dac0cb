package interfaces

import (
	"context"

	domaintypes "signin/internal/domain/types"
)

// AuthGateway performs the remote login call. Every returned error is a
// *types.Failure of kind Network or Server; raw transport errors never leak.
type AuthGateway interface {
	Login(ctx context.Context, creds domaintypes.Credentials) (domaintypes.AuthToken, error)
}
