package mood

import (
	"math/rand"
	"strings"
	"time"
)

// Category names a keyword group
type Category string

const (
	CategoryGreeting  Category = "greeting"
	CategorySadness   Category = "sad"
	CategoryAnxiety   Category = "anxious"
	CategoryHappiness Category = "happy"
	CategoryTiredness Category = "tired"
	CategoryDefault   Category = "default"
)

// Group maps trigger substrings to a mood and a pool of replies
type Group struct {
	Category Category
	Keywords []string
	Mood     Mood
	Replies  []string
}

// Matches reports whether the lower-cased input contains any keyword
func (g Group) Matches(lower string) bool {
	for _, kw := range g.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// groups is ordered: the first matching group wins.
var groups = []Group{
	{
		Category: CategoryGreeting,
		Keywords: []string{"hi", "hello", "hey", "howdy"},
		Mood:     Happy,
		Replies: []string{
			"Hello! It's great to see you today!",
			"Hi there! How can I help you with your mental wellness today?",
			"Hey friend! I'm here to support you.",
		},
	},
	{
		Category: CategorySadness,
		Keywords: []string{"sad", "down", "unhappy", "depressed", "blue"},
		Mood:     Concerned,
		Replies: []string{
			"I'm sorry to hear you're feeling down. Remember that it's okay to not be okay sometimes. Would you like to talk about what's bothering you?",
			"I understand feeling sad can be tough. What's one small thing that might bring you a bit of joy today?",
			"It sounds like you're having a difficult time. Remember that feelings come and go like clouds in the sky. This will pass too.",
		},
	},
	{
		Category: CategoryAnxiety,
		Keywords: []string{"anxious", "worried", "nervous", "stress", "afraid", "scared"},
		Mood:     Concerned,
		Replies: []string{
			"When you're feeling anxious, try taking a few deep breaths. Breathe in for 4 counts, hold for 7, and exhale for 8. Would you like to try that together?",
			"Anxiety can be overwhelming. Let's ground ourselves - can you name 5 things you can see right now?",
			"I understand anxiety can be challenging. Remember that your thoughts are not facts, and this feeling will pass.",
		},
	},
	{
		Category: CategoryHappiness,
		Keywords: []string{"happy", "good", "great", "excellent", "amazing", "joy", "wonderful"},
		Mood:     Excited,
		Replies: []string{
			"That's wonderful to hear! What's bringing you joy today?",
			"I'm so glad you're feeling good! Celebrating these moments is important for our mental health.",
			"That's great news! Positive emotions are worth savoring - maybe take a moment to really appreciate this feeling?",
		},
	},
	{
		Category: CategoryTiredness,
		Keywords: []string{"tired", "exhausted", "sleepy", "fatigue"},
		Mood:     Thinking,
		Replies: []string{
			"Being tired can really affect our mental state. Have you been able to get enough rest lately?",
			"Rest is so important for mental health. Could you take a short break or maybe plan for an earlier bedtime tonight?",
			"Our bodies and minds need proper rest. Is there something specific that's been disrupting your sleep or energy levels?",
		},
	},
}

var defaultGroup = Group{
	Category: CategoryDefault,
	Mood:     Thinking,
	Replies: []string{
		"I'm here to listen and support you. Would you like to tell me more?",
		"Thank you for sharing that with me. How does that make you feel?",
		"I appreciate you opening up. Is there anything specific you'd like guidance on?",
	},
}

// Groups returns the keyword groups in precedence order, followed by the default group
func Groups() []Group {
	out := make([]Group, 0, len(groups)+1)
	out = append(out, groups...)
	return append(out, defaultGroup)
}

// Result is the outcome of classifying one input
type Result struct {
	Category Category
	Mood     Mood
	Reply    string
}

// Classifier picks a mood and a canned reply for user input
type Classifier struct {
	rnd *rand.Rand
}

// ClassifierOption configures a Classifier
type ClassifierOption func(*Classifier)

// WithRand sets the random source used to pick replies
func WithRand(r *rand.Rand) ClassifierOption {
	return func(c *Classifier) {
		c.rnd = r
	}
}

// NewClassifier creates a Classifier
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{}
	for _, opt := range opts {
		opt(c)
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// Match returns the group selected for input without drawing a reply
func Match(input string) Group {
	lower := strings.ToLower(input)
	for _, g := range groups {
		if g.Matches(lower) {
			return g
		}
	}
	return defaultGroup
}

// Classify returns the mood and a uniformly chosen reply for input.
// Every input, including the empty string, yields a result.
func (c *Classifier) Classify(input string) Result {
	g := Match(input)
	return Result{
		Category: g.Category,
		Mood:     g.Mood,
		Reply:    g.Replies[c.rnd.Intn(len(g.Replies))],
	}
}
