package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Describe the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := appCtx.Session.Current(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			if !info.Present {
				fmt.Fprintln(out, "Not signed in")
				return nil
			}
			fmt.Fprintf(out, "Token:   %s\n", info.Fingerprint)
			if !info.JWT {
				fmt.Fprintln(out, "Format:  opaque")
				return nil
			}
			fmt.Fprintf(out, "Subject: %s\n", info.Subject)
			if !info.ExpiresAt.IsZero() {
				state := "valid"
				if info.Expired {
					state = "expired"
				}
				fmt.Fprintf(out, "Expires: %s (%s)\n", info.ExpiresAt.Format(time.RFC3339), state)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
