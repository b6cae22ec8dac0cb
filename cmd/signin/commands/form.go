package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"signin/internal/tui"
)

func formCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Sign in through an interactive form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := appCtx.NewFlow()
			defer ctrl.Dispose()

			program := tea.NewProgram(tui.New(ctrl), tea.WithContext(cmd.Context()))
			final, err := program.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(tui.Model); ok && m.SignedIn() {
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", ctrl.State().Email)
				return nil
			}
			return errReported
		},
	}
}
