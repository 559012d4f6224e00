package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/diogo/pawsitive/internal/errors"
	"github.com/diogo/pawsitive/internal/tui"
)

func newChatCmd(deps *Dependencies, a *app) *cobra.Command {
	var tabName string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the companion",
		Long: `Open the companion in full screen.

Chat with Buddy, pet them with the mouse, and switch between the Chat,
Tips, Progress and About tabs with Tab. Press Esc or Ctrl+C to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tab := tui.TabChat
			if tabName != "" {
				t, ok := tui.ParseTab(tabName)
				if !ok {
					return apperrors.NewValidationError("tab", fmt.Sprintf("unknown tab %q (valid: chat, tips, progress, about)", tabName))
				}
				tab = t
			}
			return runCompanion(deps, a, tab)
		},
	}

	cmd.Flags().StringVarP(&tabName, "tab", "t", "", "Tab to open (chat, tips, progress, about)")
	return cmd
}
