package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"signin/internal/crypto"
	"signin/internal/domain"
)

// Service reads the token persisted by the login service.
//
// Tokens are opaque to the client. When a token parses as a JWT its
// registered claims are decoded, unverified, for display.
type Service struct {
	store  domain.CredentialStore
	logger *slog.Logger
	now    func() time.Time
}

// New returns a session service over store. A nil logger discards output.
func New(store domain.CredentialStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Current describes the stored token. A missing token is not an error.
func (s *Service) Current(ctx context.Context) (domain.SessionInfo, error) {
	token, ok, err := s.store.Read(ctx, domain.AccessTokenKey)
	if err != nil {
		return domain.SessionInfo{}, err
	}
	if !ok || token == "" {
		return domain.SessionInfo{}, nil
	}
	info := domain.SessionInfo{Present: true, Fingerprint: crypto.Fingerprint(token)}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		s.logger.Debug("stored token is not a JWT", "token_fp", info.Fingerprint)
		return info, nil
	}
	info.JWT = true
	info.Subject = claims.Subject
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		info.Expired = !s.now().Before(info.ExpiresAt)
	}
	return info, nil
}

// Logout removes the stored token.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx, domain.AccessTokenKey); err != nil {
		return err
	}
	s.logger.Info("access token cleared")
	return nil
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
