package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"signin/internal/app"
)

const passphraseEnv = "SIGNIN_PASSPHRASE"

var (
	home       string
	configFile string
	authURL    string
	backend    string
	passphrase string
	timeout    time.Duration
	logLevel   string
	logFormat  string

	appCtx *app.App
)

// errReported marks an error whose message was already shown to the user.
var errReported = errors.New("reported")

func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "signin",
		Short:         "Sign in to an authentication server and keep the session token",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".signin")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if configFile == "" {
				configFile = app.ConfigPath(home)
			}

			cfg, err := app.LoadConfig(home, configFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("auth-url") {
				cfg.AuthURL = authURL
			}
			if flags.Changed("store") {
				cfg.Store.Backend = backend
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			cfg.Passphrase = passphrase
			if cfg.Passphrase == "" {
				cfg.Passphrase = os.Getenv(passphraseEnv)
			}

			logger, err := app.NewLogger(cmd.ErrOrStderr(), logLevel, logFormat)
			if err != nil {
				return err
			}
			appCtx, err = app.New(cfg, logger)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			return appCtx.Close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "config dir (default ~/.signin)")
	pf.StringVar(&configFile, "config", "", "config file (default <home>/config.yaml)")
	pf.StringVar(&authURL, "auth-url", "", "authentication server base URL (e.g. http://127.0.0.1:8080)")
	pf.StringVar(&backend, "store", "", "credential store backend: file, redis or memory")
	pf.DurationVar(&timeout, "timeout", 0, "login request timeout")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the token file (or $"+passphraseEnv+")")
	pf.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(loginCmd(), formCmd(), statusCmd(), logoutCmd())
	return root
}
