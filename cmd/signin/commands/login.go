package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"signin/internal/domain"
	"signin/internal/flow"
)

func loginCmd() *cobra.Command {
	var (
		email         string
		password      string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := readPassword(cmd, passwordStdin)
				if err != nil {
					return err
				}
				password = pw
			}

			ctrl := appCtx.NewFlow()
			defer ctrl.Dispose()

			_ = ctrl.Dispatch(flow.EmailChanged{Value: email})
			_ = ctrl.Dispatch(flow.PasswordChanged{Value: password})
			if err := ctrl.Dispatch(flow.SubmitRequested{}); err != nil {
				return err
			}

			st, err := ctrl.Wait(cmd.Context())
			if err != nil {
				return err
			}
			if st.Lifecycle != domain.LifecycleLoaded {
				fmt.Fprintln(cmd.ErrOrStderr(), st.Message)
				return errReported
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", st.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	return cmd
}

// readPassword reads one line from stdin, or prompts without echo when stdin
// is a terminal.
func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !fromStdin && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
