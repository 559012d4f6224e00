package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/diogo/pawsitive/internal/chat"
	"github.com/diogo/pawsitive/internal/config"
	apperrors "github.com/diogo/pawsitive/internal/errors"
	"github.com/diogo/pawsitive/internal/history"
	"github.com/diogo/pawsitive/internal/mood"
	"github.com/diogo/pawsitive/internal/progress"
	"github.com/diogo/pawsitive/internal/tips"
	"github.com/diogo/pawsitive/internal/tui"
)

type fakeTUI struct {
	calls       int
	opts        tui.Options
	configCalls int
	configOpts  tui.ConfigOptions
	pickerCalls int
	pick        func([]history.Entry) (history.Entry, bool)
	err         error
}

func (f *fakeTUI) RunCompanion(opts tui.Options) error {
	f.calls++
	f.opts = opts
	return f.err
}

func (f *fakeTUI) RunConfig(opts tui.ConfigOptions) error {
	f.configCalls++
	f.configOpts = opts
	return f.err
}

func (f *fakeTUI) RunHistorySelector(store tui.TranscriptLister) (history.Entry, bool, error) {
	f.pickerCalls++
	if f.err != nil {
		return history.Entry{}, false, f.err
	}
	entries, err := store.List()
	if err != nil || f.pick == nil {
		return history.Entry{}, false, err
	}
	e, ok := f.pick(entries)
	return e, ok, nil
}

type testEnv struct {
	deps    *Dependencies
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	tui     *fakeTUI
	copied  []string
	slept   []time.Duration
	tty     bool
	piped   bool
	home    string
	copyErr error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvTheme, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvGlamStyle, "")

	e := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		tui:    &fakeTUI{},
		home:   home,
	}
	e.deps = &Dependencies{
		TUI: e.tui,
		Clipboard: func(s string) error {
			if e.copyErr != nil {
				return e.copyErr
			}
			e.copied = append(e.copied, s)
			return nil
		},
		Stdin:         strings.NewReader(""),
		Stdout:        e.stdout,
		Stderr:        e.stderr,
		StdinPiped:    func() bool { return e.piped },
		StdoutTTY:     func() bool { return e.tty },
		TerminalWidth: func() int { return 80 },
		Sleep:         func(d time.Duration) { e.slept = append(e.slept, d) },
		Rand:          rand.New(rand.NewSource(1)),
	}
	return e
}

func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	e.stdout.Reset()
	e.stderr.Reset()
	cmd, state := newRootCmd(e.deps)
	t.Cleanup(state.close)
	cmd.SetArgs(args)
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)
	return cmd.Execute()
}

func (e *testEnv) saveConfig(t *testing.T, edit func(*config.Config)) {
	t.Helper()
	cfg := config.DefaultConfig()
	edit(&cfg)
	if err := config.SaveConfig(cfg); err != nil {
		t.Fatal(err)
	}
}

func isReplyFor(input, got string) bool {
	return slices.Contains(mood.Match(input).Replies, strings.TrimSpace(got))
}

func TestRootCommand_Help(t *testing.T) {
	cmd := NewRootCmd(NewDependencies())
	if cmd.Use != "pawsitive [message]" {
		t.Errorf("Expected use 'pawsitive [message]', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should not be empty")
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"chat", "tips", "progress", "about", "config", "history"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %s", want)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	e := newTestEnv(t)
	for _, flag := range []string{"-v", "--version"} {
		t.Run(flag, func(t *testing.T) {
			if err := e.run(t, flag); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !strings.HasPrefix(e.stdout.String(), "pawsitive "+Version) {
				t.Errorf("version output = %q", e.stdout.String())
			}
		})
	}
}

func TestRootCommand_NoInput(t *testing.T) {
	t.Run("terminal opens the companion", func(t *testing.T) {
		e := newTestEnv(t)
		e.tty = true
		if err := e.run(t); err != nil {
			t.Fatal(err)
		}
		if e.tui.calls != 1 || e.tui.opts.Tab != tui.TabChat {
			t.Fatalf("companion not started on chat: %+v", e.tui)
		}
		if e.tui.opts.CompanionName != "Buddy" || e.tui.opts.Catalog == nil || e.tui.opts.Snapshot == nil {
			t.Error("companion options incomplete")
		}
		if !strings.HasPrefix(e.tui.opts.TranscriptDir, e.home) {
			t.Errorf("transcripts should default under %s, got %s", e.home, e.tui.opts.TranscriptDir)
		}
	})

	t.Run("pipe shows help", func(t *testing.T) {
		e := newTestEnv(t)
		if err := e.run(t); err != nil {
			t.Fatal(err)
		}
		if e.tui.calls != 0 {
			t.Error("companion must not start without a terminal")
		}
		if !strings.Contains(e.stdout.String(), "Usage:") {
			t.Error("expected help output")
		}
	})

	t.Run("companion error is wrapped", func(t *testing.T) {
		e := newTestEnv(t)
		e.tty = true
		e.tui.err = errors.New("no tty")
		err := e.run(t)
		if err == nil || !strings.Contains(err.Error(), "no tty") {
			t.Errorf("expected wrapped error, got %v", err)
		}
	})
}

func TestReply_Raw(t *testing.T) {
	e := newTestEnv(t)

	if err := e.run(t, "I", "feel", "sad"); err != nil {
		t.Fatal(err)
	}
	if !isReplyFor("I feel sad", e.stdout.String()) {
		t.Errorf("unexpected reply %q", e.stdout.String())
	}
	if len(e.slept) != 0 {
		t.Error("raw replies should not wait for the typing delay")
	}
}

func TestReply_Stdin(t *testing.T) {
	e := newTestEnv(t)
	e.piped = true
	e.deps.Stdin = strings.NewReader("so tired today\n")

	if err := e.run(t); err != nil {
		t.Fatal(err)
	}
	if !isReplyFor("so tired today", e.stdout.String()) {
		t.Errorf("unexpected reply %q", e.stdout.String())
	}
}

func TestReply_EmptyInput(t *testing.T) {
	e := newTestEnv(t)
	e.piped = true
	e.deps.Stdin = strings.NewReader("   \n")

	err := e.run(t)
	if !errors.Is(err, apperrors.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestReply_FileToOutput(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "message.txt")
	out := filepath.Join(dir, "reply.md")
	if err := os.WriteFile(in, []byte("I'm worried about work"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := e.run(t, "-f", in, "-o", out, "--raw"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !isReplyFor("worried", string(data)) {
		t.Errorf("unexpected reply %q", data)
	}
	if e.stdout.Len() != 0 {
		t.Error("nothing should be printed when writing to a file")
	}

	if err := e.run(t, "-f", filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestReply_Decorated(t *testing.T) {
	e := newTestEnv(t)
	e.tty = true
	e.saveConfig(t, func(c *config.Config) {
		c.CopyToClipboard = true
		c.CompanionName = "Maple"
		c.TypingDelayMs = 200
	})

	if err := e.run(t, "what a great day"); err != nil {
		t.Fatal(err)
	}

	if len(e.slept) != 1 || e.slept[0] != 200*time.Millisecond {
		t.Errorf("typing delay = %v, want [200ms]", e.slept)
	}
	if len(e.copied) != 1 || !isReplyFor("great", e.copied[0]) {
		t.Errorf("clipboard = %v", e.copied)
	}
	if !strings.Contains(e.stderr.String(), "Copied to clipboard") {
		t.Error("missing clipboard confirmation")
	}
	if !strings.Contains(e.stdout.String(), "Maple") || !strings.Contains(e.stdout.String(), string(mood.Excited)) {
		t.Errorf("label missing from %q", e.stdout.String())
	}

	e.copyErr = errors.New("no display")
	if err := e.run(t, "hello"); err != nil {
		t.Fatalf("clipboard failure must not fail the reply: %v", err)
	}
	if !strings.Contains(e.stderr.String(), "no display") {
		t.Error("clipboard failure should be reported")
	}
}

func TestChatCommand_Tab(t *testing.T) {
	e := newTestEnv(t)

	if err := e.run(t, "chat", "--tab", "tips"); err != nil {
		t.Fatal(err)
	}
	if e.tui.opts.Tab != tui.TabTips {
		t.Errorf("tab = %s, want Tips", e.tui.opts.Tab)
	}

	err := e.run(t, "chat", "-t", "settings")
	if !apperrors.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestChatCommand_ConfigWarnings(t *testing.T) {
	e := newTestEnv(t)
	if err := os.WriteFile(filepath.Join(e.home, "config.json"), []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := e.run(t, "chat"); err != nil {
		t.Fatal(err)
	}
	if len(e.tui.opts.Warnings) == 0 {
		t.Error("a broken config should surface as a warning")
	}
	if e.tui.opts.CompanionName != "Buddy" {
		t.Error("a broken config should fall back to defaults")
	}
}

func TestTipsCommand(t *testing.T) {
	e := newTestEnv(t)
	builtin := tips.Builtin()

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "default category",
			args: []string{"tips"},
			want: []string{"## Daily Practices", "Practice Mindfulness", builtin.Disclaimer},
		},
		{
			name:    "single tip",
			args:    []string{"tips", "anxiety", "-n", "2"},
			want:    []string{"Anxiety Management", "Grounding Technique"},
			notWant: []string{"4-7-8 Breathing", "Worry Time"},
		},
		{
			name: "all categories",
			args: []string{"tips", "--all"},
			want: []string{"Daily Practices", "Anxiety Management", "Mood Boosters", "Sleep Hygiene", "Stress Relief"},
		},
		{
			name: "list ids",
			args: []string{"tips", "--list"},
			want: []string{"daily", "anxiety", "mood", "sleep", "stress"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.run(t, tt.args...); err != nil {
				t.Fatal(err)
			}
			out := e.stdout.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q", w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q", w)
				}
			}
		})
	}
}

func TestTipsCommand_Errors(t *testing.T) {
	e := newTestEnv(t)

	err := e.run(t, "tips", "cooking")
	if !errors.Is(err, apperrors.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "daily") {
		t.Error("error should list the valid ids")
	}

	for _, args := range [][]string{
		{"tips", "sleep", "-n", "4"},
		{"tips", "-n", "-1"},
		{"tips", "--all", "-n", "1"},
	} {
		if err := e.run(t, args...); !apperrors.IsValidationError(err) {
			t.Errorf("%v: expected validation error, got %v", args, err)
		}
	}
}

func TestTipsCommand_CustomCatalog(t *testing.T) {
	e := newTestEnv(t)
	file := filepath.Join(t.TempDir(), "tips.json")
	data := `{"categories": [{"id": "focus", "name": "Focus", "tips": [{"title": "Single-task", "description": "One thing at a time.", "icon": "🎯"}]}]}`
	if err := os.WriteFile(file, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	e.saveConfig(t, func(c *config.Config) { c.TipsFile = file })

	if err := e.run(t, "tips", "focus"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(e.stdout.String(), "Single-task") {
		t.Error("custom catalog not used")
	}

	if err := os.WriteFile(file, []byte("not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := e.run(t, "tips"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(e.stdout.String(), "Daily Practices") {
		t.Error("broken catalog should fall back to the builtin one")
	}
	if !strings.Contains(e.stderr.String(), "using builtin tips") {
		t.Error("fallback should be reported on stderr")
	}
}

func TestProgressCommand(t *testing.T) {
	e := newTestEnv(t)

	if err := e.run(t, "progress"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Day Streak", "| 3 | 12 |", "D7", "First Steps", "3-Day Streak"} {
		if !strings.Contains(e.stdout.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}

	file := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(file, []byte(`{"streak": 0, "completed_activities": 1, "mood_history": [1, 2, 4]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := e.run(t, "progress", "--file", file, "--json"); err != nil {
		t.Fatal(err)
	}
	var got progress.Snapshot
	if err := json.Unmarshal(e.stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if got.CompletedActivities != 1 || len(got.MoodHistory) != 3 {
		t.Errorf("snapshot = %+v", got)
	}

	if err := os.WriteFile(file, []byte(`{"streak": -2}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := e.run(t, "progress", "-f", file); !apperrors.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestProgressMarkdown_NoHistory(t *testing.T) {
	md := progressMarkdown(progress.Snapshot{})
	if !strings.Contains(md, "No check-ins yet") || !strings.Contains(md, progress.TrendNotEnough) {
		t.Errorf("unexpected markdown:\n%s", md)
	}
}

func TestAboutCommand(t *testing.T) {
	e := newTestEnv(t)
	e.saveConfig(t, func(c *config.Config) { c.CompanionName = "Pip" })

	if err := e.run(t, "about"); err != nil {
		t.Fatal(err)
	}
	out := e.stdout.String()
	for _, want := range []string{"Our Mission", "Pip", tui.Disclaimer} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestConfigCommand_SetAndShow(t *testing.T) {
	e := newTestEnv(t)

	if err := e.run(t, "config", "set", "companion_name", "Maple"); err != nil {
		t.Fatal(err)
	}
	if err := e.run(t, "config", "set", "tui_theme", "nord"); err != nil {
		t.Fatal(err)
	}

	if err := e.run(t, "config", "show"); err != nil {
		t.Fatal(err)
	}
	var shown config.Config
	if err := json.Unmarshal(e.stdout.Bytes(), &shown); err != nil {
		t.Fatalf("show output is not JSON: %v", err)
	}
	if shown.CompanionName != "Maple" || shown.TUITheme != "nord" {
		t.Errorf("config not saved: %+v", shown)
	}
}

func TestConfigCommand_SetRejects(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		key, value string
	}{
		{"favorite_color", "blue"},
		{"tui_theme", "solarized"},
		{"markdown.style", "/does/not/exist.json"},
		{"typing_delay_ms", "-5"},
		{"log.level", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := e.run(t, "config", "set", tt.key, tt.value); !apperrors.IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(e.home, "config.json")); !os.IsNotExist(err) {
		t.Error("rejected values must not write the config")
	}
}

func TestConfigCommand_SetKeepsEnvOutOfFile(t *testing.T) {
	e := newTestEnv(t)
	t.Setenv(config.EnvTheme, "dracula")

	if err := e.run(t, "config", "set", "companion_name", "Pip"); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadConfigFile()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TUITheme != "pawsitive" {
		t.Errorf("environment override leaked into the file: %s", cfg.TUITheme)
	}
}

func TestConfigCommand_SetRefusesBrokenFile(t *testing.T) {
	e := newTestEnv(t)
	path := filepath.Join(e.home, "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := e.run(t, "config", "set", "companion_name", "Pip"); !apperrors.IsParseError(err) {
		t.Errorf("expected parse error, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{broken" {
		t.Error("broken config must be left alone")
	}
}

func TestConfigCommand_Editor(t *testing.T) {
	e := newTestEnv(t)
	e.tty = true
	t.Setenv(config.EnvTheme, "dracula")
	e.saveConfig(t, func(c *config.Config) { c.CompanionName = "Pip" })

	if err := e.run(t, "config"); err != nil {
		t.Fatal(err)
	}
	if e.tui.configCalls != 1 {
		t.Fatalf("editor not started: %+v", e.tui)
	}
	opts := e.tui.configOpts
	if opts.Config.CompanionName != "Pip" || opts.Config.TUITheme != "pawsitive" {
		t.Errorf("editor should get the file content without env overrides, got %+v", opts.Config)
	}
	if opts.Path != filepath.Join(e.home, "config.json") {
		t.Errorf("Path = %s", opts.Path)
	}

	e.tty = false
	if err := e.run(t, "config"); err != nil {
		t.Fatal(err)
	}
	if e.tui.configCalls != 1 || !strings.Contains(e.stdout.String(), `"companion_name": "Pip"`) {
		t.Error("without a terminal config should print the settings")
	}
}

func TestConfigCommand_PathAndThemes(t *testing.T) {
	e := newTestEnv(t)

	if err := e.run(t, "config", "path"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(e.stdout.String(), filepath.Join(e.home, "config.json")) {
		t.Errorf("path output = %q", e.stdout.String())
	}

	if err := e.run(t, "config", "themes"); err != nil {
		t.Fatal(err)
	}
	out := e.stdout.String()
	if !strings.Contains(out, "* pawsitive") || !strings.Contains(out, "* dark") {
		t.Errorf("current theme and style should be marked:\n%s", out)
	}
}

func TestHistoryCommand(t *testing.T) {
	e := newTestEnv(t)

	if err := e.run(t, "history"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(e.stdout.String(), "No saved conversations") {
		t.Errorf("empty history output = %q", e.stdout.String())
	}

	dir := filepath.Join(e.home, "transcripts")
	s := chat.NewSession()
	p, _ := s.Send("I feel sad")
	s.Deliver(p)
	if _, err := chat.SaveTranscript(s, dir, chat.ExportFormatMarkdown); err != nil {
		t.Fatal(err)
	}

	if err := e.run(t, "history", "list"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(e.stdout.String(), s.ID()[:8]) || !strings.Contains(e.stdout.String(), "concerned") {
		t.Errorf("list output = %q", e.stdout.String())
	}

	if err := e.run(t, "history", "show", "@last"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(e.stdout.String(), "I feel sad") {
		t.Error("show should print the transcript")
	}

	if err := e.run(t, "transcripts", "delete", "1"); err != nil {
		t.Fatal(err)
	}
	if err := e.run(t, "history", "show", "@last"); err == nil {
		t.Error("show after delete should fail")
	}
}

func TestHistoryCommand_Picker(t *testing.T) {
	e := newTestEnv(t)
	e.tty = true

	dir := filepath.Join(e.home, "transcripts")
	s := chat.NewSession(chat.WithCompanionName("Maple"))
	p, _ := s.Send("so tired")
	s.Deliver(p)
	if _, err := chat.SaveTranscript(s, dir, chat.ExportFormatJSON); err != nil {
		t.Fatal(err)
	}

	// quitting the picker prints nothing
	if err := e.run(t, "history"); err != nil {
		t.Fatal(err)
	}
	if e.tui.pickerCalls != 1 || e.stdout.Len() != 0 {
		t.Errorf("picker calls %d, output %q", e.tui.pickerCalls, e.stdout.String())
	}

	e.tui.pick = func(entries []history.Entry) (history.Entry, bool) {
		return entries[0], true
	}
	if err := e.run(t, "history"); err != nil {
		t.Fatal(err)
	}
	out := e.stdout.String()
	if !strings.Contains(out, `"companion": "Maple"`) || !strings.Contains(out, "so tired") {
		t.Errorf("picked JSON transcript not printed: %q", out)
	}

	e.tui.err = errors.New("no tty")
	if err := e.run(t, "history"); err == nil || !strings.Contains(err.Error(), "no tty") {
		t.Errorf("expected wrapped picker error, got %v", err)
	}
}

func TestReadInput(t *testing.T) {
	deps := &Dependencies{
		Stdin:      strings.NewReader("from stdin"),
		StdinPiped: func() bool { return false },
	}

	if _, ok, _ := readInput(deps, "", nil); ok {
		t.Error("no input should report ok=false")
	}
	if got, ok, _ := readInput(deps, "", []string{"feeling", "ok"}); !ok || got != "feeling ok" {
		t.Errorf("args = %q, %v", got, ok)
	}

	deps.StdinPiped = func() bool { return true }
	if got, _, _ := readInput(deps, "", []string{"ignored"}); got != "from stdin" {
		t.Errorf("stdin should win over args, got %q", got)
	}
}

func TestBubbleWidth(t *testing.T) {
	tests := []struct {
		term, want int
	}{
		{20, 40},
		{80, 76},
		{300, 120},
	}
	for _, tt := range tests {
		if got := bubbleWidth(tt.term); got != tt.want {
			t.Errorf("bubbleWidth(%d) = %d, want %d", tt.term, got, tt.want)
		}
	}
}

func TestSpinnerLifecycle(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "Buddy is typing")
	s.start()
	time.Sleep(200 * time.Millisecond)
	s.halt()
	s.halt() // second halt is a no-op

	if !strings.Contains(buf.String(), "Buddy is typing") {
		t.Error("spinner never rendered")
	}
	if !strings.HasSuffix(buf.String(), "\033[?25h") {
		t.Error("cursor should be restored on halt")
	}
}
