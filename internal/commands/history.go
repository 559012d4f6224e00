package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/pawsitive/internal/chat"
	"github.com/diogo/pawsitive/internal/config"
	"github.com/diogo/pawsitive/internal/history"
)

func newHistoryCmd(deps *Dependencies, a *app) *cobra.Command {
	openStore := func() (*history.Store, error) {
		dir, err := config.GetTranscriptDir(a.cfg)
		if err != nil {
			return nil, err
		}
		return history.NewStore(dir)
	}

	list := func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		return listTranscripts(deps, store)
	}

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"transcripts"},
		Short:   "Browse saved conversations",
		Long: `List, show and delete conversations saved with Ctrl+S. In a terminal,
running it without a subcommand opens a picker.

` + history.ListAliases(),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			if !deps.StdoutTTY() {
				return listTranscripts(deps, store)
			}

			e, ok, err := deps.TUI.RunHistorySelector(store)
			if err != nil {
				return fmt.Errorf("history picker exited: %w", err)
			}
			if !ok {
				return nil
			}
			return showTranscript(deps, a, store, e, false)
		},
	}

	var raw bool
	show := &cobra.Command{
		Use:   "show <ref>",
		Short: "Print a saved conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			e, err := history.NewResolver(store).Resolve(args[0])
			if err != nil {
				return err
			}
			return showTranscript(deps, a, store, e, raw)
		},
	}
	show.Flags().BoolVar(&raw, "raw", false, "Print markdown without styling")

	del := &cobra.Command{
		Use:   "delete <ref>",
		Short: "Delete a saved conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			e, err := history.NewResolver(store).Resolve(args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(e); err != nil {
				return err
			}
			a.logger.Info("transcript deleted", "id", e.ID, "path", e.Path)
			fmt.Fprintln(deps.Stdout, successStyle.Render("✓ Deleted "+e.ID))
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List saved conversations", Args: cobra.NoArgs, RunE: list},
		show,
		del,
	)
	return cmd
}

func listTranscripts(deps *Dependencies, store *history.Store) error {
	entries, err := store.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, dimStyle.Render("No saved conversations yet. Press Ctrl+S in the chat to save one."))
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(deps.Stdout, "%3d  %-8s  %-16s  %2d messages  %s %-9s  %s\n",
			i+1, e.ID[:min(8, len(e.ID))], history.FormatRelativeTime(e.StartedAt),
			e.Messages, e.Mood.Emoji(), e.Mood, e.Companion)
	}
	return nil
}

// showTranscript prints markdown through glamour and JSON as is
func showTranscript(deps *Dependencies, a *app, store *history.Store, e history.Entry, raw bool) error {
	content, err := store.Read(e)
	if err != nil {
		return err
	}
	if e.Format == chat.ExportFormatJSON {
		_, err = fmt.Fprint(deps.Stdout, content)
		return err
	}
	return printMarkdown(deps, a, content, raw)
}
