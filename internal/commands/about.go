package commands

import (
	"github.com/spf13/cobra"

	"github.com/diogo/pawsitive/internal/tui"
)

func newAboutCmd(deps *Dependencies, a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "about",
		Short: "About Pawsitive Mindset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md := tui.AboutMarkdown(a.companionName()) + "\n---\n\n*" + tui.Disclaimer + "*\n"
			return printMarkdown(deps, a, md, raw)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without styling")
	return cmd
}
