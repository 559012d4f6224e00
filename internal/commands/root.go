// Package commands provides CLI commands for pawsitive.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/pawsitive/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

type rootFlags struct {
	output  string
	file    string
	raw     bool
	version bool
}

// NewRootCmd creates the pawsitive command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	cmd, _ := newRootCmd(deps)
	return cmd
}

func newRootCmd(deps *Dependencies) (*cobra.Command, *app) {
	state := &app{}
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "pawsitive [message]",
		Short: "A friendly mental wellness companion for your terminal",
		Long: `pawsitive is a mental wellness companion. Chat with Buddy, browse
practical tips, and keep an eye on your progress, all from the terminal.

Examples:
  pawsitive                             Open the companion
  pawsitive "I feel a bit anxious"      Get a single reply
  echo "so tired today" | pawsitive     Read the message from stdin
  pawsitive tips anxiety                Print the anxiety tips
  pawsitive progress                    Show your progress dashboard
  pawsitive history show @last          Print the last saved conversation
  pawsitive config set tui_theme nord   Change the theme`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			state.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.version {
				fmt.Fprintf(deps.Stdout, "pawsitive %s (built %s)\n", Version, BuildTime)
				return nil
			}

			input, ok, err := readInput(deps, flags.file, args)
			if err != nil {
				return err
			}
			if ok {
				return runReply(deps, state, input, replyOptions{
					raw:    flags.raw || !deps.StdoutTTY(),
					output: flags.output,
				})
			}

			if deps.StdoutTTY() {
				return runCompanion(deps, state, tui.TabChat)
			}

			// No input and no terminal - show help
			return cmd.Help()
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Save the reply to a file")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read the message from a file")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print only the reply text")
	cmd.Flags().BoolVarP(&flags.version, "version", "v", false, "Show version and exit")

	cmd.AddCommand(
		newChatCmd(deps, state),
		newTipsCmd(deps, state),
		newProgressCmd(deps, state),
		newAboutCmd(deps, state),
		newConfigCmd(deps, state),
		newHistoryCmd(deps, state),
	)
	return cmd, state
}

// readInput picks the message from --file, piped stdin or the arguments, in
// that order. ok is false when there is no message at all.
func readInput(deps *Dependencies, file string, args []string) (string, bool, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if deps.StdinPiped() {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return strings.Join(args, " "), true, nil
	}
	return "", false, nil
}

// runCompanion opens the TUI on tab
func runCompanion(deps *Dependencies, a *app, tab tui.Tab) error {
	opts := a.tuiOptions(deps, tab)
	a.logger.Info("starting companion", "tab", tab.String(), "theme", a.cfg.TUITheme)
	if err := deps.TUI.RunCompanion(opts); err != nil {
		return fmt.Errorf("companion exited: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() {
	deps := NewDependencies()
	cmd, state := newRootCmd(deps)
	err := cmd.Execute()
	state.close()
	if err != nil {
		fmt.Fprintln(deps.Stderr, tui.FormatError(err))
		os.Exit(1)
	}
}
