// Package chat holds the scripted conversation between the user and the companion.
package chat

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/diogo/pawsitive/internal/errors"
	"github.com/diogo/pawsitive/internal/mood"
	"github.com/diogo/pawsitive/internal/timer"
)

// Sender identifies who wrote a message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderCompanion Sender = "companion"
)

// DefaultCompanionName is the character's name
const DefaultCompanionName = "Buddy"

// DefaultTypingDelay is how long the companion "types" before replying
const DefaultTypingDelay = 1500 * time.Millisecond

const scopeReply timer.Scope = "chat/reply"

// Message is one chat entry
type Message struct {
	ID        int       `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MoodEntry records one classification made during the session
type MoodEntry struct {
	Mood     mood.Mood     `json:"mood"`
	Category mood.Category `json:"category"`
	At       time.Time     `json:"at"`
}

// Pending is a companion reply waiting for its typing delay
type Pending struct {
	timer.Request
	Input string
}

// SeedText returns the companion's opening line
func SeedText(name string) string {
	return fmt.Sprintf("Hi there! I'm %s, your mental health companion. How are you feeling today?", name)
}

// Session is an append-only conversation that can be reset wholesale
type Session struct {
	id          string
	name        string
	classifier  *mood.Classifier
	timers      *timer.Registry
	now         func() time.Time
	typingDelay time.Duration
	logger      *slog.Logger

	startedAt time.Time
	messages  []Message
	nextID    int
	mood      mood.Mood
	moodLog   []MoodEntry
	pending   map[uint64]string
}

// Option configures a Session
type Option func(*Session)

// WithClassifier sets the classifier used for replies
func WithClassifier(c *mood.Classifier) Option {
	return func(s *Session) {
		s.classifier = c
	}
}

// WithClock sets the time source for message timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithTypingDelay sets the delay before a reply is delivered
func WithTypingDelay(d time.Duration) Option {
	return func(s *Session) {
		s.typingDelay = d
	}
}

// WithCompanionName sets the name used in the opening line
func WithCompanionName(name string) Option {
	return func(s *Session) {
		if strings.TrimSpace(name) != "" {
			s.name = name
		}
	}
}

// WithRegistry shares a timer registry with other components
func WithRegistry(r *timer.Registry) Option {
	return func(s *Session) {
		s.timers = r
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession creates a session holding only the opening line
func NewSession(opts ...Option) *Session {
	s := &Session{
		name:        DefaultCompanionName,
		now:         time.Now,
		typingDelay: DefaultTypingDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.classifier == nil {
		s.classifier = mood.NewClassifier()
	}
	if s.timers == nil {
		s.timers = timer.NewRegistry()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.seed()
	return s
}

func (s *Session) seed() {
	s.id = uuid.NewString()
	s.startedAt = s.now()
	s.messages = nil
	s.nextID = 1
	s.mood = mood.DefaultMood
	s.moodLog = nil
	s.pending = make(map[uint64]string)
	s.append(SenderCompanion, SeedText(s.name))
}

func (s *Session) append(sender Sender, text string) Message {
	msg := Message{
		ID:        s.nextID,
		Sender:    sender,
		Text:      text,
		Timestamp: s.now(),
	}
	s.nextID++
	s.messages = append(s.messages, msg)
	return msg
}

// Send appends the user's message and schedules the companion's reply.
// Whitespace-only input is ignored and reports false.
func (s *Session) Send(input string) (Pending, bool) {
	if strings.TrimSpace(input) == "" {
		return Pending{}, false
	}

	msg := s.append(SenderUser, input)
	req := s.timers.Schedule(scopeReply, s.typingDelay)
	s.pending[req.Handle.ID] = input

	s.logger.Debug("chat message sent", "session", s.id, "message_id", msg.ID, "pending", len(s.pending))
	return Pending{Request: req, Input: input}, true
}

// Deliver classifies the pending input, updates the mood and appends the
// reply. Replies canceled by Reset report false.
func (s *Session) Deliver(p Pending) (Message, bool) {
	if !s.timers.Fire(p.Handle) {
		return Message{}, false
	}
	input, ok := s.pending[p.Handle.ID]
	if !ok {
		return Message{}, false
	}
	delete(s.pending, p.Handle.ID)

	res := s.classifier.Classify(input)
	s.mood = res.Mood
	s.moodLog = append(s.moodLog, MoodEntry{Mood: res.Mood, Category: res.Category, At: s.now()})
	msg := s.append(SenderCompanion, res.Reply)

	s.logger.Info("companion replied", "session", s.id, "category", res.Category, "mood", res.Mood)
	return msg, true
}

// Reset cancels pending replies and restores the opening line and default mood
func (s *Session) Reset() {
	s.timers.CancelScope(scopeReply)
	s.seed()
	s.logger.Info("chat reset", "session", s.id)
}

// Close cancels pending replies
func (s *Session) Close() {
	s.timers.CancelScope(scopeReply)
	s.pending = make(map[uint64]string)
}

// ID returns the conversation identifier; it changes on Reset
func (s *Session) ID() string {
	return s.id
}

// CompanionName returns the companion's name
func (s *Session) CompanionName() string {
	return s.name
}

// StartedAt returns when the conversation (re)started
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Mood returns the mood derived from the last delivered reply
func (s *Session) Mood() mood.Mood {
	return s.mood
}

// Typing reports whether a reply is pending
func (s *Session) Typing() bool {
	return len(s.pending) > 0
}

// Messages returns a copy of the conversation
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// MoodLog returns the classifications made since the last reset
func (s *Session) MoodLog() []MoodEntry {
	out := make([]MoodEntry, len(s.moodLog))
	copy(out, s.moodLog)
	return out
}

// LastReply returns the newest companion reply, excluding the opening line
func (s *Session) LastReply() (Message, error) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		msg := s.messages[i]
		if msg.Sender == SenderCompanion && msg.ID > 1 {
			return msg, nil
		}
	}
	return Message{}, apperrors.ErrNoReply
}
