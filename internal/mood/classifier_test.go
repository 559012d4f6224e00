package mood

import (
	"math/rand"
	"testing"
)

func newTestClassifier(seed int64) *Classifier {
	return NewClassifier(WithRand(rand.New(rand.NewSource(seed))))
}

func inPool(reply string, pool []string) bool {
	for _, r := range pool {
		if r == reply {
			return true
		}
	}
	return false
}

func groupFor(category Category) Group {
	for _, g := range Groups() {
		if g.Category == category {
			return g
		}
	}
	return Group{}
}

func TestClassify_Categories(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		category Category
		mood     Mood
	}{
		{"greeting", "Hello Buddy", CategoryGreeting, Happy},
		{"greeting uppercase", "HOWDY", CategoryGreeting, Happy},
		{"sadness", "I feel sad today", CategorySadness, Concerned},
		{"depressed", "so depressed", CategorySadness, Concerned},
		{"anxiety", "I am worried about my exam", CategoryAnxiety, Concerned},
		{"stress", "work stress", CategoryAnxiety, Concerned},
		{"happiness", "I feel great", CategoryHappiness, Excited},
		{"joy", "pure joy", CategoryHappiness, Excited},
		{"tiredness", "I am so tired", CategoryTiredness, Thinking},
		{"fatigue", "fatigue", CategoryTiredness, Thinking},
		{"default", "the weather", CategoryDefault, Thinking},
		{"empty", "", CategoryDefault, Thinking},
	}

	c := newTestClassifier(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.input)
			if got.Category != tt.category {
				t.Errorf("Category = %s, want %s", got.Category, tt.category)
			}
			if got.Mood != tt.mood {
				t.Errorf("Mood = %s, want %s", got.Mood, tt.mood)
			}
			if !inPool(got.Reply, groupFor(tt.category).Replies) {
				t.Errorf("Reply %q not in %s pool", got.Reply, tt.category)
			}
		})
	}
}

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		category Category
	}{
		{"sad before happy", "I am sad but also happy", CategorySadness},
		{"happy listed first still sad", "happy yet blue", CategorySadness},
		{"anxious before happy", "nervous and excellent", CategoryAnxiety},
		{"greeting before sadness", "hey, I am sad", CategoryGreeting},
		{"sadness before anxiety", "sad and scared", CategorySadness},
		{"happy before tired", "good but tired", CategoryHappiness},
		// substring semantics: "hi" inside "this" is a greeting
		{"substring greeting", "this is odd", CategoryGreeting},
		// "unhappy" hits the sadness group before happiness sees "happy"
		{"unhappy", "unhappy", CategorySadness},
	}

	c := newTestClassifier(2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.input); got.Category != tt.category {
				t.Errorf("Classify(%q).Category = %s, want %s", tt.input, got.Category, tt.category)
			}
		})
	}
}

func TestClassify_UsesWholePool(t *testing.T) {
	c := newTestClassifier(42)
	seen := make(map[string]bool)
	for i := 0; i < 300; i++ {
		seen[c.Classify("hello").Reply] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all 3 greeting replies to be drawn, got %d", len(seen))
	}
}

func TestClassify_DeterministicWithSeed(t *testing.T) {
	a := newTestClassifier(7)
	b := newTestClassifier(7)
	for i := 0; i < 20; i++ {
		if a.Classify("tired").Reply != b.Classify("tired").Reply {
			t.Fatal("same seed should give the same replies")
		}
	}
}

func TestGroups(t *testing.T) {
	gs := Groups()
	want := []Category{
		CategoryGreeting, CategorySadness, CategoryAnxiety,
		CategoryHappiness, CategoryTiredness, CategoryDefault,
	}
	if len(gs) != len(want) {
		t.Fatalf("len(Groups()) = %d, want %d", len(gs), len(want))
	}
	for i, g := range gs {
		if g.Category != want[i] {
			t.Errorf("Groups()[%d] = %s, want %s", i, g.Category, want[i])
		}
		if len(g.Replies) != 3 {
			t.Errorf("group %s has %d replies, want 3", g.Category, len(g.Replies))
		}
		if !g.Mood.Valid() {
			t.Errorf("group %s has invalid mood %q", g.Category, g.Mood)
		}
	}
}

func TestNewClassifier_DefaultRand(t *testing.T) {
	c := NewClassifier()
	if c.rnd == nil {
		t.Fatal("expected default random source")
	}
	if r := c.Classify("hi"); r.Reply == "" {
		t.Error("expected a reply")
	}
}
