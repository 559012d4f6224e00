package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/pawsitive/internal/progress"
)

type progressFlags struct {
	file string
	json bool
	raw  bool
}

func newProgressCmd(deps *Dependencies, a *app) *cobra.Command {
	var flags progressFlags

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show your progress dashboard",
		Long: `Show streak, activities, mood history and achievements.

The snapshot is read from --file, then from the progress_file setting.
Without either a sample snapshot is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.flushWarnings(deps.Stderr)

			s, err := a.snapshot(flags.file)
			if err != nil {
				return err
			}

			if flags.json {
				data, err := json.MarshalIndent(s, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal snapshot: %w", err)
				}
				fmt.Fprintln(deps.Stdout, string(data))
				return nil
			}
			return printMarkdown(deps, a, progressMarkdown(s), flags.raw)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Progress snapshot file (JSON)")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print the snapshot as JSON")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print markdown without styling")
	return cmd
}

func progressMarkdown(s progress.Snapshot) string {
	avg := "-"
	if v, ok := s.Average(); ok {
		avg = fmt.Sprintf("%.1f/5", v)
	}

	var sb strings.Builder
	sb.WriteString("# Your Progress\n\n")
	sb.WriteString("| Day Streak | Activities | Average Mood | Trend |\n")
	sb.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %s | %s |\n\n", s.Streak, s.CompletedActivities, avg, s.Trend())

	sb.WriteString("## Mood History\n\n")
	if len(s.MoodHistory) == 0 {
		sb.WriteString("No check-ins yet.\n\n")
	} else {
		sb.WriteString("```\n")
		for i, v := range s.MoodHistory {
			fmt.Fprintf(&sb, "D%-3d %s%s %d/%d\n", i+1,
				strings.Repeat("█", v), strings.Repeat("░", progress.MaxSample-v), v, progress.MaxSample)
		}
		sb.WriteString("```\n\n")
	}

	sb.WriteString("## Your Achievements\n\n")
	for _, ach := range s.Achievements() {
		fmt.Fprintf(&sb, "- %s **%s** - %s\n", ach.Icon, ach.Name, ach.Description)
	}
	return sb.String()
}
