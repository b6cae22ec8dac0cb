package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"signin/internal/domain"
)

const (
	loginPath       = "/login"
	maxResponseSize = 1 << 20
	userAgent       = "signin/1"
)

// Messages shown to the user for Network failures.
const (
	msgUnreachable = "Unable to reach the server"
	msgTimeout     = "The request timed out"
	msgMalformed   = "Malformed response from server"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// HTTP talks to the authentication server over HTTP(S).
type HTTP struct {
	Base   string
	HTTP   *http.Client
	Logger *slog.Logger
}

// NewHTTP returns a gateway for the server at base. A nil client uses
// http.DefaultClient.
func NewHTTP(base string, client *http.Client, logger *slog.Logger) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: client, Logger: logger}
}

// Login posts creds to the login endpoint and returns the issued token.
func (c *HTTP) Login(ctx context.Context, creds domain.Credentials) (domain.AuthToken, error) {
	body, err := json.Marshal(loginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return "", domain.NewNetworkFailure(msgUnreachable, err)
	}

	u := c.Base + loginPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", domain.NewNetworkFailure(msgUnreachable, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	log := c.Logger.With("request_id", requestID, "url", u)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Warn("login request failed", "error", err)
		return "", classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		log.Warn("reading login response failed", "status", resp.StatusCode, "error", err)
		return "", classifyTransport(ctx, err)
	}

	if resp.StatusCode/100 != 2 {
		log.Info("login rejected", "status", resp.StatusCode)
		return "", serverFailure(resp, raw)
	}

	var out loginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", domain.NewNetworkFailure(msgMalformed, fmt.Errorf("decode login response: %w", err))
	}
	if out.Token == "" {
		return "", domain.NewNetworkFailure(msgMalformed, errors.New("login response has no token"))
	}
	log.Debug("login accepted", "status", resp.StatusCode)
	return domain.AuthToken(out.Token), nil
}

// classifyTransport maps an error from the HTTP round trip to a Network
// failure, singling out deadlines.
func classifyTransport(ctx context.Context, err error) *domain.Failure {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewNetworkFailure(msgTimeout, err)
	}
	var te interface{ Timeout() bool }
	if errors.As(err, &te) && te.Timeout() {
		return domain.NewNetworkFailure(msgTimeout, err)
	}
	return domain.NewNetworkFailure(msgUnreachable, err)
}

// serverFailure builds a Server failure from a non-2xx response, preferring
// the server-supplied message.
func serverFailure(resp *http.Response, raw []byte) *domain.Failure {
	var e errorResponse
	if json.Unmarshal(raw, &e) == nil && strings.TrimSpace(e.Message) != "" {
		return domain.NewServerFailure(resp.StatusCode, strings.TrimSpace(e.Message))
	}
	text := http.StatusText(resp.StatusCode)
	if text == "" {
		text = resp.Status
	}
	return domain.NewServerFailure(resp.StatusCode, fmt.Sprintf("Server returned %d %s", resp.StatusCode, text))
}

var _ domain.AuthGateway = (*HTTP)(nil)
