package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/diogo/pawsitive/internal/errors"
	"github.com/diogo/pawsitive/internal/render"
	"github.com/diogo/pawsitive/internal/tips"
)

type tipsFlags struct {
	index int
	all   bool
	list  bool
	raw   bool
}

func newTipsCmd(deps *Dependencies, a *app) *cobra.Command {
	var flags tipsFlags

	cmd := &cobra.Command{
		Use:   "tips [category]",
		Short: "Print mental health tips",
		Long: `Print the tips of a category. Without a category the first one is shown.

Examples:
  pawsitive tips                 Daily wellness tips
  pawsitive tips anxiety         Tips for managing anxiety
  pawsitive tips sleep -n 2      Only the second sleep tip
  pawsitive tips --all           Every category
  pawsitive tips --list          Category ids`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := a.catalog()
			a.flushWarnings(deps.Stderr)

			if flags.list {
				for _, c := range catalog.Categories {
					fmt.Fprintf(deps.Stdout, "%-10s %s (%d tips)\n", c.ID, c.Name, len(c.Tips))
				}
				return nil
			}

			cats, err := selectTips(catalog, args, flags)
			if err != nil {
				return err
			}
			return printMarkdown(deps, a, tipsMarkdown(cats, catalog.Disclaimer), flags.raw)
		},
	}

	cmd.Flags().IntVarP(&flags.index, "index", "n", 0, "Show only the tip at this position (1-based)")
	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, "Show every category")
	cmd.Flags().BoolVarP(&flags.list, "list", "l", false, "List category ids")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print markdown without styling")
	return cmd
}

// selectTips narrows the catalog to what the flags ask for
func selectTips(catalog *tips.Catalog, args []string, flags tipsFlags) ([]tips.Category, error) {
	if flags.all {
		if flags.index != 0 {
			return nil, apperrors.NewValidationError("index", "cannot be combined with --all")
		}
		return catalog.Categories, nil
	}

	cat := catalog.Categories[0]
	if len(args) == 1 {
		c, err := catalog.Category(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w (valid: %s)", err, strings.Join(catalog.IDs(), ", "))
		}
		cat = c
	}

	if flags.index != 0 {
		if flags.index < 1 || flags.index > len(cat.Tips) {
			return nil, apperrors.NewValidationError("index", fmt.Sprintf("must be between 1 and %d", len(cat.Tips)))
		}
		cat.Tips = []tips.Tip{cat.Tips[flags.index-1]}
	}
	return []tips.Category{cat}, nil
}

func tipsMarkdown(cats []tips.Category, disclaimer string) string {
	var sb strings.Builder
	for i, c := range cats {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s\n\n", c.Name)
		for _, t := range c.Tips {
			fmt.Fprintf(&sb, "### %s %s\n\n%s\n\n", t.Icon, t.Title, t.Description)
		}
	}
	if disclaimer != "" {
		fmt.Fprintf(&sb, "---\n\n*%s*\n", disclaimer)
	}
	return sb.String()
}

// printMarkdown renders md with glamour on a terminal, or prints it as is
func printMarkdown(deps *Dependencies, a *app, md string, raw bool) error {
	if raw || !deps.StdoutTTY() {
		_, err := fmt.Fprint(deps.Stdout, md)
		return err
	}
	opts := a.renderOptions(bubbleWidth(deps.TerminalWidth()))
	_, err := fmt.Fprintln(deps.Stdout, render.MarkdownOrPlain(md, opts))
	return err
}
