package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/pawsitive/internal/config"
	apperrors "github.com/diogo/pawsitive/internal/errors"
	"github.com/diogo/pawsitive/internal/render"
	"github.com/diogo/pawsitive/internal/tui"
)

// newConfigCmd creates the config command and its subcommands
func newConfigCmd(deps *Dependencies, a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change pawsitive settings. In a terminal, running it without a
subcommand opens the settings editor.

Settings live in config.json inside ~/.pawsitive (or $PAWSITIVE_HOME).
PAWSITIVE_THEME, PAWSITIVE_LOG_LEVEL and GLAMOUR_STYLE override the file,
and can also be set in a .env file in the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.StdoutTTY() {
				return editConfig(deps, a)
			}
			return showConfig(deps, a)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfig(deps, a)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print where settings, logs and transcripts are stored",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showPaths(deps, a)
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change one setting",
			Long:  "Change one setting. Valid keys: " + strings.Join(config.Keys(), ", "),
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setConfig(deps, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "themes",
			Short: "List color themes and markdown styles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listThemes(deps, a)
			},
		},
	)
	return cmd
}

func showConfig(deps *Dependencies, a *app) error {
	a.flushWarnings(deps.Stderr)
	data, err := json.MarshalIndent(a.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}

// editConfig opens the settings editor on the file content so environment
// overrides are never saved
func editConfig(deps *Dependencies, a *app) error {
	cfg, err := config.LoadConfigFile()
	if err != nil {
		return fmt.Errorf("refusing to overwrite unreadable config: %w", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	a.logger.Info("starting settings editor", "path", path)
	if err := deps.TUI.RunConfig(tui.ConfigOptions{Config: cfg, Path: path}); err != nil {
		return fmt.Errorf("settings editor exited: %w", err)
	}
	return nil
}

func showPaths(deps *Dependencies, a *app) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	logPath, err := config.GetLogPath(a.cfg)
	if err != nil {
		return err
	}
	transcripts, err := config.GetTranscriptDir(a.cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "config:      %s\n", configPath)
	fmt.Fprintf(deps.Stdout, "log:         %s\n", logPath)
	fmt.Fprintf(deps.Stdout, "transcripts: %s\n", transcripts)
	return nil
}

// setConfig edits the file itself so environment overrides are never saved
func setConfig(deps *Dependencies, key, value string) error {
	cfg, err := config.LoadConfigFile()
	if err != nil {
		return fmt.Errorf("refusing to overwrite unreadable config: %w", err)
	}

	if err := validateSetting(key, value); err != nil {
		return err
	}
	if err := config.Set(&cfg, key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, successStyle.Render(fmt.Sprintf("✓ %s = %s", key, value)))
	return nil
}

// validateSetting checks values that config.Set cannot judge on its own
func validateSetting(key, value string) error {
	switch key {
	case "tui_theme":
		if _, ok := render.GetTUIThemeByName(value); !ok {
			return apperrors.NewValidationError(key, fmt.Sprintf("unknown theme %q (valid: %s)", value, strings.Join(render.TUIThemeNames(), ", ")))
		}
	case "markdown.style":
		if render.IsBuiltinStyle(value) {
			return nil
		}
		if _, err := os.Stat(value); err != nil {
			return apperrors.NewValidationError(key, fmt.Sprintf("%q is neither a builtin style (%s) nor a style file", value, strings.Join(render.ThemeNames(), ", ")))
		}
	}
	return nil
}

func listThemes(deps *Dependencies, a *app) error {
	mark := func(name, current string) string {
		if name == current {
			return "*"
		}
		return " "
	}

	fmt.Fprintln(deps.Stdout, "Color themes (tui_theme):")
	for _, t := range render.AvailableTUIThemes() {
		fmt.Fprintf(deps.Stdout, "  %s %-12s %s\n", mark(t.Name, a.cfg.TUITheme), t.Name, t.Description)
	}

	fmt.Fprintln(deps.Stdout, "\nMarkdown styles (markdown.style):")
	for _, t := range render.AvailableThemes() {
		fmt.Fprintf(deps.Stdout, "  %s %-12s %s\n", mark(t.Name, a.cfg.Markdown.Style), t.Name, t.Description)
	}
	return nil
}
