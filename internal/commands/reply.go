package commands

import (
	"fmt"

	"github.com/diogo/pawsitive/internal/chat"
	apperrors "github.com/diogo/pawsitive/internal/errors"
	"github.com/diogo/pawsitive/internal/mood"
	"github.com/diogo/pawsitive/internal/render"
)

type replyOptions struct {
	// raw prints only the reply text, without the spinner or styling
	raw    bool
	output string
}

// runReply classifies a single message and prints the companion's reply
func runReply(deps *Dependencies, a *app, input string, opts replyOptions) error {
	a.flushWarnings(deps.Stderr)

	session := chat.NewSession(
		chat.WithClassifier(mood.NewClassifier(mood.WithRand(deps.Rand))),
		chat.WithCompanionName(a.companionName()),
		chat.WithTypingDelay(a.cfg.TypingDelay()),
		chat.WithLogger(a.logger),
	)
	defer session.Close()

	pending, ok := session.Send(input)
	if !ok {
		return fmt.Errorf("nothing to reply to: %w", apperrors.ErrEmptyInput)
	}

	if !opts.raw && pending.Delay > 0 {
		spin := newSpinner(deps.Stderr, session.CompanionName()+" is typing")
		spin.start()
		deps.Sleep(pending.Delay)
		spin.halt()
	}

	reply, ok := session.Deliver(pending)
	if !ok {
		return apperrors.ErrNoReply
	}
	a.logger.Info("one-shot reply", "session", session.ID(), "mood", session.Mood(), "raw", opts.raw)

	// Raw output mode: output only the reply text
	if opts.raw {
		if opts.output != "" {
			return writeOutput(opts.output, reply.Text)
		}
		fmt.Fprintln(deps.Stdout, reply.Text)
		return nil
	}

	if a.cfg.CopyToClipboard {
		if err := deps.Clipboard(reply.Text); err != nil {
			a.logger.Warn("clipboard copy failed", "error", err)
			fmt.Fprintln(deps.Stderr, warnStyle.Render(fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else {
			fmt.Fprintln(deps.Stderr, successStyle.Render("✓ Copied to clipboard"))
		}
	}

	if opts.output != "" {
		if err := writeOutput(opts.output, reply.Text); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stderr, successStyle.Render(fmt.Sprintf("✓ Reply saved to %s", opts.output)))
		return nil
	}

	width := bubbleWidth(deps.TerminalWidth())
	m := session.Mood()
	label := companionLabelStyle.Render(fmt.Sprintf("🐾 %s", session.CompanionName())) +
		dimStyle.Render(fmt.Sprintf("  %s %s", m.Emoji(), m))
	rendered := render.MarkdownOrPlain(reply.Text, a.renderOptions(width-4))

	fmt.Fprintln(deps.Stdout, label)
	fmt.Fprintln(deps.Stdout, companionBubbleStyle.Width(width).Render(rendered))
	return nil
}
