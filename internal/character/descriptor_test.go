package character

import (
	"testing"

	"github.com/diogo/pawsitive/internal/mood"
)

func TestEyesFor(t *testing.T) {
	tests := []struct {
		name     string
		mood     mood.Mood
		blinking bool
		want     EyeGeometry
	}{
		{"happy", mood.Happy, false, EyeGeometry{Height: 15, Scale: 1}},
		{"thinking", mood.Thinking, false, EyeGeometry{Height: 15, Width: 15, Scale: 1}},
		{"excited", mood.Excited, false, EyeGeometry{Height: 18, Scale: 1.1}},
		{"concerned", mood.Concerned, false, EyeGeometry{Height: 10, Scale: 1, OffsetY: 3}},
		{"unknown", mood.Mood("x"), false, EyeGeometry{Height: 15, Scale: 1}},
		{"blink overrides", mood.Excited, true, EyeGeometry{Height: 1, Scale: 1, OffsetY: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eyesFor(tt.mood, tt.blinking); got != tt.want {
				t.Errorf("eyesFor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMouthFor(t *testing.T) {
	tests := []struct {
		name    string
		mood    mood.Mood
		panting bool
		kind    MouthKind
		width   float64
	}{
		{"panting overrides", mood.Concerned, true, MouthOpen, 2},
		{"happy", mood.Happy, false, MouthSmile, 3},
		{"thinking", mood.Thinking, false, MouthFlat, 3},
		{"excited", mood.Excited, false, MouthWideSmile, 4},
		{"concerned", mood.Concerned, false, MouthFrown, 3},
		{"unknown", mood.Mood(""), false, MouthSmile, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mouthFor(tt.mood, tt.panting)
			if got.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", got.Kind, tt.kind)
			}
			if got.StrokeWidth != tt.width {
				t.Errorf("StrokeWidth = %v, want %v", got.StrokeWidth, tt.width)
			}
			if got.Path == "" {
				t.Error("Path should not be empty")
			}
		})
	}
}

func TestTongueFor(t *testing.T) {
	tests := []struct {
		mood    mood.Mood
		panting bool
		visible bool
	}{
		{mood.Happy, false, true},
		{mood.Excited, false, true},
		{mood.Happy, true, false},
		{mood.Excited, true, false},
		{mood.Thinking, false, false},
		{mood.Concerned, false, false},
	}

	for _, tt := range tests {
		if got := tongueFor(tt.mood, tt.panting); got.Visible != tt.visible {
			t.Errorf("tongueFor(%s, %v).Visible = %v, want %v", tt.mood, tt.panting, got.Visible, tt.visible)
		}
	}
}

func TestDescriptor_MatchesMood(t *testing.T) {
	for _, m := range mood.All() {
		c, _ := newTestCharacter(m)
		d := c.Descriptor()
		if d.Mood != m {
			t.Errorf("Descriptor().Mood = %s, want %s", d.Mood, m)
		}
		if d.Indicator != m.Emoji() {
			t.Errorf("Indicator = %q, want %q", d.Indicator, m.Emoji())
		}
		if d.Mouth != mouthFor(m, d.Flags.Panting) {
			t.Errorf("%s: mouth does not follow mood and panting", m)
		}
		if d.Tongue.Visible {
			t.Errorf("%s: tongue is hidden while panting or for non-happy moods", m)
		}
	}
}
