package interfaces

import "context"

// CredentialStore persists opaque string values by key. Implementations
// return a *types.Failure of kind Storage on any read or write error.
type CredentialStore interface {
	Save(ctx context.Context, key, value string) error
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	// Clear removes key. Clearing an absent key is not an error.
	Clear(ctx context.Context, key string) error
}
