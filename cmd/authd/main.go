package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"signin/internal/authserver"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "authd:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr    string
		secret  string
		ttl     time.Duration
		users   []string
		verbose bool
	)
	flags := pflag.NewFlagSet("authd", pflag.ContinueOnError)
	flags.StringVar(&addr, "addr", ":8080", "listen address")
	flags.StringVar(&secret, "secret", "", "HS256 signing secret (random when empty)")
	flags.DurationVar(&ttl, "ttl", time.Hour, "lifetime of issued tokens")
	flags.StringArrayVar(&users, "user", nil, "user as email:password (repeatable)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every request")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return err
		}
		logger.Warn("no --secret given, using a random signing key")
	}

	srv, err := authserver.New(authserver.Config{Secret: key, TTL: ttl, Logger: logger})
	if err != nil {
		return err
	}
	for _, spec := range users {
		email, password, err := authserver.ParseUserSpec(spec)
		if err != nil {
			return err
		}
		if err := srv.AddUser(email, password); err != nil {
			return err
		}
	}
	if len(users) == 0 {
		logger.Warn("no users configured; every login will be rejected")
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("authd listening", "addr", addr, "users", len(users))
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("authd shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
