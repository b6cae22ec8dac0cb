package authserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxRequestBody = 1 << 20

// Response messages.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgMissingFields      = "Email and password are required"
	MsgMalformedBody      = "Request body must be a JSON object"
)

// Config configures a Server.
type Config struct {
	// Secret signs issued tokens with HS256. Required.
	Secret []byte
	// TTL is the lifetime of issued tokens. Zero means one hour.
	TTL time.Duration
	// BcryptCost is the cost used when adding users. Zero means bcrypt.DefaultCost.
	BcryptCost int
	Logger     *slog.Logger
}

// Server issues tokens for a fixed set of users.
type Server struct {
	secret []byte
	ttl    time.Duration
	cost   int
	logger *slog.Logger
	now    func() time.Time

	mu    sync.RWMutex
	users map[string][]byte // email -> bcrypt hash
}

// New returns a Server with no users.
func New(cfg Config) (*Server, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("authserver: signing secret is required")
	}
	s := &Server{
		secret: cfg.Secret,
		ttl:    cfg.TTL,
		cost:   cfg.BcryptCost,
		logger: cfg.Logger,
		now:    time.Now,
		users:  make(map[string][]byte),
	}
	if s.ttl <= 0 {
		s.ttl = time.Hour
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s, nil
}

// AddUser registers email with password, replacing any existing entry.
func (s *Server) AddUser(email, password string) error {
	if email == "" || password == "" {
		return errors.New("authserver: email and password must be non-empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password for %q: %w", email, err)
	}
	s.mu.Lock()
	s.users[strings.ToLower(email)] = hash
	s.mu.Unlock()
	return nil
}

// ParseUserSpec splits an "email:password" flag value.
func ParseUserSpec(spec string) (email, password string, err error) {
	email, password, ok := strings.Cut(spec, ":")
	if !ok || email == "" || password == "" {
		return "", "", fmt.Errorf("invalid user %q: want email:password", spec)
	}
	return email, password, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Post("/login", s.handleLogin)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": MsgMalformedBody})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": MsgMissingFields})
		return
	}

	if !s.checkPassword(req.Email, req.Password) {
		s.logger.Info("login rejected", "email", req.Email, "request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": MsgInvalidCredentials})
		return
	}

	token, err := s.issue(req.Email)
	if err != nil {
		s.logger.Error("signing token failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Could not issue a token"})
		return
	}
	s.logger.Info("login accepted", "email", req.Email, "request_id", middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) checkPassword(email, password string) bool {
	s.mu.RLock()
	hash, ok := s.users[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

func (s *Server) issue(email string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses token and checks its signature and expiry.
func (s *Server) Verify(token string) (*jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
