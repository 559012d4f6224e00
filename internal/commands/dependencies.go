package commands

import (
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/pawsitive/internal/history"
	"github.com/diogo/pawsitive/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunCompanion(opts tui.Options) error
	RunConfig(opts tui.ConfigOptions) error
	RunHistorySelector(store tui.TranscriptLister) (history.Entry, bool, error)
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinPiped reports whether input is being piped in.
	StdinPiped func() bool
	// StdoutTTY reports whether stdout is a terminal.
	StdoutTTY func() bool
	// TerminalWidth returns the width of stdout.
	TerminalWidth func() int

	// Sleep waits out the typing delay of a one-shot reply.
	Sleep func(time.Duration)

	// Rand drives reply selection.
	Rand *rand.Rand
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunCompanion(opts tui.Options) error {
	return tui.RunCompanion(opts)
}

func (d *DefaultTUI) RunConfig(opts tui.ConfigOptions) error {
	return tui.RunConfig(opts)
}

func (d *DefaultTUI) RunHistorySelector(store tui.TranscriptLister) (history.Entry, bool, error) {
	return tui.RunHistorySelector(store)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:           &DefaultTUI{},
		Clipboard:     clipboard.WriteAll,
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		StdinPiped:    isStdinPiped,
		StdoutTTY:     isStdoutTTY,
		TerminalWidth: getTerminalWidth,
		Sleep:         time.Sleep,
		Rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func isStdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}
