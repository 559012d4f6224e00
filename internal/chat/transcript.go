package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ExportFormat represents the format for exporting a conversation
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// ParseExportFormat accepts "markdown", "md" or "json"
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return ExportFormatMarkdown, nil
	case "json":
		return ExportFormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Extension returns the file extension for the format
func (f ExportFormat) Extension() string {
	if f == ExportFormatJSON {
		return ".json"
	}
	return ".md"
}

// ExportMarkdown renders the conversation as Markdown
func ExportMarkdown(s *Session) string {
	var sb strings.Builder

	sb.WriteString("# Chat with ")
	sb.WriteString(s.CompanionName())
	sb.WriteString("\n\n")

	sb.WriteString("**Session:** ")
	sb.WriteString(s.ID())
	sb.WriteString("\n")
	sb.WriteString("**Started:** ")
	sb.WriteString(s.StartedAt().Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString("**Mood:** ")
	sb.WriteString(s.Mood().String())
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("**Messages:** %d", len(s.messages)))
	sb.WriteString("\n\n---\n\n")

	for i, msg := range s.messages {
		role := "You"
		if msg.Sender == SenderCompanion {
			role = s.CompanionName()
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		if !msg.Timestamp.IsZero() {
			sb.WriteString(" (")
			sb.WriteString(msg.Timestamp.Format("15:04"))
			sb.WriteString(")")
		}
		sb.WriteString("\n\n")
		sb.WriteString(msg.Text)
		sb.WriteString("\n")

		if i < len(s.messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

type transcriptJSON struct {
	ID        string      `json:"id"`
	Companion string      `json:"companion"`
	StartedAt time.Time   `json:"started_at"`
	Mood      string      `json:"mood"`
	Messages  []Message   `json:"messages"`
	MoodLog   []MoodEntry `json:"mood_log"`
}

// ExportJSON renders the conversation as indented JSON
func ExportJSON(s *Session) ([]byte, error) {
	data, err := json.MarshalIndent(transcriptJSON{
		ID:        s.ID(),
		Companion: s.CompanionName(),
		StartedAt: s.StartedAt(),
		Mood:      s.Mood().String(),
		Messages:  s.Messages(),
		MoodLog:   s.MoodLog(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return data, nil
}

// SaveTranscript writes the conversation into dir and returns the file path
func SaveTranscript(s *Session, dir string, format ExportFormat) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create transcript directory: %w", err)
	}

	var data []byte
	switch format {
	case ExportFormatJSON:
		var err error
		data, err = ExportJSON(s)
		if err != nil {
			return "", err
		}
	default:
		data = []byte(ExportMarkdown(s))
	}

	name := fmt.Sprintf("%s-%s%s", s.StartedAt().Format("20060102-150405"), s.ID(), format.Extension())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}
