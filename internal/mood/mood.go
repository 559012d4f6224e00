// Package mood classifies free-text chat input into a companion mood and reply.
package mood

import "strings"

// Mood is the companion's current mood label
type Mood string

const (
	Happy     Mood = "happy"
	Excited   Mood = "excited"
	Thinking  Mood = "thinking"
	Concerned Mood = "concerned"
)

// DefaultMood is the mood of a fresh or reset session
const DefaultMood = Happy

// All returns every mood label
func All() []Mood {
	return []Mood{Happy, Excited, Thinking, Concerned}
}

// Valid reports whether m is one of the enumerated labels
func (m Mood) Valid() bool {
	switch m {
	case Happy, Excited, Thinking, Concerned:
		return true
	default:
		return false
	}
}

// String returns the label
func (m Mood) String() string {
	return string(m)
}

// Emoji returns the indicator shown next to the character
func (m Mood) Emoji() string {
	switch m {
	case Happy:
		return "😊"
	case Thinking:
		return "🤔"
	case Excited:
		return "🎉"
	case Concerned:
		return "😟"
	default:
		return ""
	}
}

// ParseMood converts a label to a Mood. Unknown labels map to DefaultMood.
func ParseMood(s string) Mood {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m
	}
	return DefaultMood
}
