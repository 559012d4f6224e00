package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/diogo/pawsitive/internal/config"
	"github.com/diogo/pawsitive/internal/logging"
	"github.com/diogo/pawsitive/internal/progress"
	"github.com/diogo/pawsitive/internal/render"
	"github.com/diogo/pawsitive/internal/tips"
	"github.com/diogo/pawsitive/internal/tui"
)

// app is the per-invocation state shared by every subcommand
type app struct {
	cfg    config.Config
	logger *slog.Logger
	closer io.Closer

	// warnings are non-fatal startup problems. The TUI shows them in its
	// status bar, the plain commands print them to stderr.
	warnings []string
}

// load reads .env, the config file and sets up logging. Nothing here is fatal:
// a broken config falls back to defaults and a broken log file to no logging.
func (a *app) load() {
	if err := config.LoadDotEnv(); err != nil {
		a.warn(err.Error())
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		a.warn(fmt.Sprintf("using default config: %v", err))
	}
	a.cfg = cfg

	a.logger = logging.Discard()
	if path, err := config.GetLogPath(cfg); err != nil {
		a.warn(fmt.Sprintf("logging disabled: %v", err))
	} else if logger, closer, err := logging.Init(cfg.Log, path); err != nil {
		a.warn(fmt.Sprintf("logging disabled: %v", err))
	} else {
		a.logger, a.closer = logger, closer
	}

	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		a.warn(fmt.Sprintf("unknown theme %q, using %s", cfg.TUITheme, render.GetTUITheme().Name))
	}
	tui.UpdateTheme()
}

func (a *app) warn(msg string) {
	a.warnings = append(a.warnings, msg)
}

func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
		a.closer = nil
	}
}

// flushWarnings prints pending warnings to w
func (a *app) flushWarnings(w io.Writer) {
	for _, msg := range a.warnings {
		fmt.Fprintln(w, warnStyle.Render("⚠ "+msg))
	}
	a.warnings = nil
}

// companionName returns the configured name, never empty
func (a *app) companionName() string {
	if a.cfg.CompanionName == "" {
		return config.DefaultConfig().CompanionName
	}
	return a.cfg.CompanionName
}

// catalog loads the configured tip catalog, falling back to the builtin one
func (a *app) catalog() *tips.Catalog {
	cat, err := tips.LoadOrBuiltin(a.cfg.TipsFile)
	if err != nil {
		a.logger.Warn("tip catalog fallback", "file", a.cfg.TipsFile, "error", err)
		a.warn(fmt.Sprintf("using builtin tips: %v", err))
	}
	return cat
}

// snapshot loads the progress file at path, or the configured one when path is empty
func (a *app) snapshot(path string) (progress.Snapshot, error) {
	if path == "" {
		path = a.cfg.ProgressFile
	}
	s, err := progress.Load(path)
	if err != nil {
		a.logger.Warn("progress load failed", "file", path, "error", err)
		return progress.Snapshot{}, err
	}
	return s, nil
}

func (a *app) renderOptions(width int) render.Options {
	return render.FromMarkdownConfig(a.cfg.Markdown).WithWidth(width)
}

// tuiOptions assembles everything the companion TUI needs
func (a *app) tuiOptions(deps *Dependencies, tab tui.Tab) tui.Options {
	snap, err := a.snapshot("")
	if err != nil {
		a.warn(fmt.Sprintf("using sample progress: %v", err))
		snap = progress.DefaultSnapshot()
	}

	transcripts, err := config.GetTranscriptDir(a.cfg)
	if err != nil {
		a.warn(err.Error())
		transcripts = ""
	}

	opts := tui.Options{
		CompanionName: a.companionName(),
		Tab:           tab,
		TypingDelay:   a.cfg.TypingDelay(),
		FrameInterval: a.cfg.FrameInterval(),
		TranscriptDir: transcripts,
		Catalog:       a.catalog(),
		Snapshot:      &snap,
		Render:        render.FromMarkdownConfig(a.cfg.Markdown),
		Logger:        a.logger,
		Rand:          deps.Rand,
		CopyFn:        deps.Clipboard,
	}
	opts.Warnings = a.warnings
	a.warnings = nil
	return opts
}
