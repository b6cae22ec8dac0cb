package app_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"golang.org/x/crypto/bcrypt"

	"signin/internal/app"
	"signin/internal/authserver"
	"signin/internal/domain"
	"signin/internal/flow"
)

func startAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := authserver.New(authserver.Config{Secret: []byte("k"), BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddUser("a@b.com", "secret"); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func signIn(t *testing.T, a *app.App, email, password string) domain.FlowState {
	t.Helper()
	c := a.NewFlow()
	defer c.Dispose()

	_ = c.Dispatch(flow.EmailChanged{Value: email})
	_ = c.Dispatch(flow.PasswordChanged{Value: password})
	if err := c.Dispatch(flow.SubmitRequested{}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, err := c.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	return st
}

func TestApp_FileStoreEndToEnd(t *testing.T) {
	srv := startAuthServer(t)
	cfg := app.DefaultConfig(t.TempDir())
	cfg.AuthURL = srv.URL

	a, err := app.New(cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	if st := signIn(t, a, "a@b.com", "wrong"); st.Lifecycle != domain.LifecycleError ||
		st.Message != authserver.MsgInvalidCredentials {
		t.Fatalf("bad password state = %+v", st)
	}
	if info, _ := a.Session.Current(ctx); info.Present {
		t.Fatal("session present after failed login")
	}

	if st := signIn(t, a, "a@b.com", "secret"); st.Lifecycle != domain.LifecycleLoaded {
		t.Fatalf("state = %+v", st)
	}
	info, err := a.Session.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !info.Present || !info.JWT || info.Subject != "a@b.com" || info.Expired {
		t.Fatalf("session = %+v", info)
	}

	if err := a.Session.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if info, _ := a.Session.Current(ctx); info.Present {
		t.Fatal("session present after logout")
	}
}

func TestApp_RedisBackend(t *testing.T) {
	srv := startAuthServer(t)
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	cfg := app.DefaultConfig(t.TempDir())
	cfg.AuthURL = srv.URL
	cfg.Store.Backend = app.BackendRedis
	cfg.Store.Redis.Addr = mr.Addr()
	cfg.Store.Redis.Prefix = "test"

	a, err := app.New(cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	if st := signIn(t, a, "a@b.com", "secret"); st.Lifecycle != domain.LifecycleLoaded {
		t.Fatalf("state = %+v", st)
	}
	if !mr.Exists("test:" + domain.AccessTokenKey) {
		t.Fatal("token not written to redis")
	}
}

func TestApp_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	cfg := app.DefaultConfig(t.TempDir())
	cfg.AuthURL = url
	cfg.Store.Backend = app.BackendMemory
	a, err := app.New(cfg, nil)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	defer a.Close()

	st := signIn(t, a, "a@b.com", "secret")
	if st.Lifecycle != domain.LifecycleError || st.Message != "Unable to reach the server" {
		t.Fatalf("state = %+v", st)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := app.DefaultConfig(t.TempDir())
	cfg.Store.Backend = "nope"
	if _, err := app.New(cfg, nil); err == nil {
		t.Fatal("expected validation error")
	}
}
