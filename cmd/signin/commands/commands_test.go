package commands

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"signin/internal/authserver"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestLoginStatusLogout(t *testing.T) {
	s, err := authserver.New(authserver.Config{Secret: []byte("k"), BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AddUser("a@b.com", "secret"); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	home := t.TempDir()
	common := []string{"--home", home, "--auth-url", srv.URL}

	_, stderr, err := run(t, "nope\n", append(common, "login", "--email", "a@b.com", "--password-stdin")...)
	if !errors.Is(err, errReported) || !strings.Contains(stderr, authserver.MsgInvalidCredentials) {
		t.Fatalf("bad login: err=%v stderr=%q", err, stderr)
	}

	out, _, err := run(t, "secret\n", append(common, "login", "--email", "a@b.com", "--password-stdin")...)
	if err != nil || !strings.Contains(out, "Signed in as a@b.com") {
		t.Fatalf("login: err=%v out=%q", err, out)
	}

	out, _, err = run(t, "", append(common, "status")...)
	if err != nil || !strings.Contains(out, "Subject: a@b.com") || !strings.Contains(out, "(valid)") {
		t.Fatalf("status: err=%v out=%q", err, out)
	}

	out, _, err = run(t, "", append(common, "logout")...)
	if err != nil || !strings.Contains(out, "Signed out") {
		t.Fatalf("logout: err=%v out=%q", err, out)
	}

	out, _, err = run(t, "", append(common, "status")...)
	if err != nil || !strings.Contains(out, "Not signed in") {
		t.Fatalf("status after logout: err=%v out=%q", err, out)
	}
}

func TestLogin_ValidationFailsWithoutNetwork(t *testing.T) {
	// Port 1 is never listening; validation must fail before any request.
	_, stderr, err := run(t, "", "--home", t.TempDir(), "--auth-url", "http://127.0.0.1:1",
		"login", "--email", "not-an-email", "--password", "x")
	if !errors.Is(err, errReported) || !strings.Contains(stderr, "Enter a valid email address") {
		t.Fatalf("err=%v stderr=%q", err, stderr)
	}
}

func TestRoot_RejectsUnknownBackend(t *testing.T) {
	_, _, err := run(t, "", "--home", t.TempDir(), "--store", "tape", "status")
	if err == nil || !strings.Contains(err.Error(), "unknown store backend") {
		t.Fatalf("err = %v", err)
	}
}
