package login

import (
	"context"
	"log/slog"

	"signin/internal/crypto"
	"signin/internal/domain"
)

// MsgSaveFailed is the message of the Storage failure returned when the
// gateway accepted the credentials but the token could not be persisted.
const MsgSaveFailed = "Signed in, but the session could not be saved"

// Service orchestrates one login: gateway call, then token persistence.
//
// A gateway failure is returned unchanged. A save failure is returned as a
// Storage failure even though the server accepted the credentials, since the
// session is not usable without the stored token.
type Service struct {
	gateway domain.AuthGateway
	store   domain.CredentialStore
	logger  *slog.Logger
}

// New returns a login service. A nil logger discards output.
func New(gateway domain.AuthGateway, store domain.CredentialStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{gateway: gateway, store: store, logger: logger}
}

// Login signs in with creds and stores the issued token.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) error {
	log := s.logger.With("email", creds.Email)

	token, err := s.gateway.Login(ctx, creds)
	if err != nil {
		f, ok := domain.AsFailure(err)
		if !ok {
			// Gateways classify their own errors; this only guards a
			// misbehaving implementation.
			f = domain.NewNetworkFailure("Unable to reach the server", err)
		}
		log.Info("login failed", "kind", f.Kind.String(), "error", f)
		return f
	}

	fp := crypto.Fingerprint(token.String())
	if err := s.store.Save(ctx, domain.AccessTokenKey, token.String()); err != nil {
		log.Error("saving access token failed", "token_fp", fp, "error", err)
		return domain.NewStorageFailure(MsgSaveFailed, err)
	}
	log.Info("login succeeded", "token_fp", fp)
	return nil
}

// Compile-time assertion that Service implements domain.LoginService.
var _ domain.LoginService = (*Service)(nil)
