package chat

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	apperrors "github.com/diogo/pawsitive/internal/errors"
	"github.com/diogo/pawsitive/internal/mood"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestSession(opts ...Option) *Session {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	base := []Option{
		WithClassifier(mood.NewClassifier(mood.WithRand(rand.New(rand.NewSource(1))))),
		WithClock(clock.now),
	}
	return NewSession(append(base, opts...)...)
}

func TestNewSession_Seed(t *testing.T) {
	s := newTestSession()

	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("len(Messages()) = %d, want 1", len(msgs))
	}
	seed := msgs[0]
	if seed.ID != 1 || seed.Sender != SenderCompanion {
		t.Errorf("seed = %+v", seed)
	}
	if seed.Text != SeedText(DefaultCompanionName) {
		t.Errorf("seed text = %q", seed.Text)
	}
	if s.Mood() != mood.Happy {
		t.Errorf("Mood() = %s, want happy", s.Mood())
	}
	if s.Typing() {
		t.Error("new session should not be typing")
	}
	if s.ID() == "" {
		t.Error("session should have an ID")
	}
}

func TestSeedText(t *testing.T) {
	want := "Hi there! I'm Buddy, your mental health companion. How are you feeling today?"
	if got := SeedText("Buddy"); got != want {
		t.Errorf("SeedText() = %q, want %q", got, want)
	}
}

func TestWithCompanionName(t *testing.T) {
	s := newTestSession(WithCompanionName("Maple"))
	if s.CompanionName() != "Maple" {
		t.Errorf("CompanionName() = %s", s.CompanionName())
	}
	if s.Messages()[0].Text != SeedText("Maple") {
		t.Error("seed should use the companion name")
	}

	blank := newTestSession(WithCompanionName("   "))
	if blank.CompanionName() != DefaultCompanionName {
		t.Error("blank name should keep the default")
	}
}

func TestSend_IgnoresBlankInput(t *testing.T) {
	s := newTestSession()

	for _, in := range []string{"", "   ", "\t\n"} {
		if _, ok := s.Send(in); ok {
			t.Errorf("Send(%q) should be ignored", in)
		}
	}
	if len(s.Messages()) != 1 {
		t.Errorf("blank input appended messages: %d", len(s.Messages()))
	}
	if s.Typing() {
		t.Error("blank input should not start a reply")
	}
}

func TestSendAndDeliver(t *testing.T) {
	s := newTestSession()

	p, ok := s.Send("I feel sad and happy")
	if !ok {
		t.Fatal("Send should accept input")
	}
	if p.Delay != DefaultTypingDelay {
		t.Errorf("Delay = %v, want %v", p.Delay, DefaultTypingDelay)
	}
	if !s.Typing() {
		t.Error("expected typing while reply is pending")
	}

	msgs := s.Messages()
	if len(msgs) != 2 || msgs[1].Sender != SenderUser || msgs[1].ID != 2 {
		t.Fatalf("user message not appended: %+v", msgs)
	}
	if msgs[1].Text != "I feel sad and happy" {
		t.Errorf("user text = %q", msgs[1].Text)
	}
	if s.Mood() != mood.Happy {
		t.Error("mood changes only when the reply is delivered")
	}

	reply, ok := s.Deliver(p)
	if !ok {
		t.Fatal("Deliver should succeed")
	}
	if reply.ID != 3 || reply.Sender != SenderCompanion {
		t.Errorf("reply = %+v", reply)
	}
	if s.Mood() != mood.Concerned {
		t.Errorf("Mood() = %s, want concerned", s.Mood())
	}
	if s.Typing() {
		t.Error("typing should stop after delivery")
	}

	log := s.MoodLog()
	if len(log) != 1 || log[0].Category != mood.CategorySadness {
		t.Errorf("MoodLog() = %+v", log)
	}

	if _, ok := s.Deliver(p); ok {
		t.Error("a reply is delivered only once")
	}
}

func TestSend_Greeting(t *testing.T) {
	s := newTestSession()
	p, _ := s.Send("hello")
	reply, _ := s.Deliver(p)

	if s.Mood() != mood.Happy {
		t.Errorf("Mood() = %s, want happy", s.Mood())
	}
	found := false
	for _, g := range mood.Groups() {
		if g.Category != mood.CategoryGreeting {
			continue
		}
		for _, r := range g.Replies {
			if r == reply.Text {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("reply %q not from greeting pool", reply.Text)
	}
}

func TestReset(t *testing.T) {
	s := newTestSession()
	oldID := s.ID()

	first, _ := s.Send("I am worried")
	s.Deliver(first)
	pending, _ := s.Send("so tired")

	s.Reset()

	msgs := s.Messages()
	if len(msgs) != 1 || msgs[0].ID != 1 || msgs[0].Sender != SenderCompanion {
		t.Fatalf("after reset Messages() = %+v", msgs)
	}
	if s.Mood() != mood.Happy {
		t.Errorf("Mood() = %s, want happy", s.Mood())
	}
	if s.Typing() {
		t.Error("reset should cancel pending replies")
	}
	if len(s.MoodLog()) != 0 {
		t.Error("reset should clear the mood log")
	}
	if s.ID() == oldID {
		t.Error("reset should start a new conversation ID")
	}

	if _, ok := s.Deliver(pending); ok {
		t.Error("reply scheduled before reset must not be delivered")
	}
	if len(s.Messages()) != 1 {
		t.Error("stale reply leaked into the reset conversation")
	}
}

func TestClose(t *testing.T) {
	s := newTestSession()
	p, _ := s.Send("hey")
	s.Close()
	if _, ok := s.Deliver(p); ok {
		t.Error("reply should not be delivered after Close")
	}
	if s.Typing() {
		t.Error("Close should clear pending replies")
	}
}

func TestMultiplePendingReplies(t *testing.T) {
	s := newTestSession(WithTypingDelay(10 * time.Millisecond))

	a, _ := s.Send("I am tired")
	b, _ := s.Send("amazing day")

	if a.Handle == b.Handle {
		t.Fatal("each send needs its own handle")
	}

	s.Deliver(a)
	if !s.Typing() {
		t.Error("second reply still pending")
	}
	if s.Mood() != mood.Thinking {
		t.Errorf("Mood() = %s, want thinking", s.Mood())
	}

	s.Deliver(b)
	if s.Mood() != mood.Excited {
		t.Errorf("Mood() = %s, want excited", s.Mood())
	}

	ids := []int{}
	for _, m := range s.Messages() {
		ids = append(ids, m.ID)
	}
	for i, id := range ids {
		if id != i+1 {
			t.Fatalf("message IDs not sequential: %v", ids)
		}
	}
}

func TestLastReply(t *testing.T) {
	s := newTestSession()

	if _, err := s.LastReply(); !errors.Is(err, apperrors.ErrNoReply) {
		t.Errorf("LastReply() error = %v, want ErrNoReply", err)
	}

	p, _ := s.Send("hello")
	want, _ := s.Deliver(p)
	s.Send("another message")

	got, err := s.LastReply()
	if err != nil {
		t.Fatalf("LastReply() error = %v", err)
	}
	if got != want {
		t.Errorf("LastReply() = %+v, want %+v", got, want)
	}
}

func TestMessages_ReturnsCopy(t *testing.T) {
	s := newTestSession()
	msgs := s.Messages()
	msgs[0].Text = "changed"
	if s.Messages()[0].Text == "changed" {
		t.Error("Messages() should return a copy")
	}
}
