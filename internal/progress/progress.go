// Package progress summarizes the user's wellness progress snapshot.
package progress

import (
	"fmt"
	"math"
	"os"

	"github.com/tidwall/gjson"

	apperrors "github.com/diogo/pawsitive/internal/errors"
)

// Mood history samples are rated on a 1..5 scale
const (
	MinSample = 1
	MaxSample = 5
)

// Trend labels
const (
	TrendNotEnough = "Not enough data"
	TrendImproving = "Improving"
	TrendDeclining = "Declining"
	TrendSteady    = "Steady"
)

// trendThreshold is the minimum change across the last three samples that counts as a trend
const trendThreshold = 0.5

// Snapshot is a read-only view of the user's progress
type Snapshot struct {
	Streak              int   `json:"streak"`
	CompletedActivities int   `json:"completed_activities"`
	MoodHistory         []int `json:"mood_history"`
}

// Achievement is a badge earned from the snapshot
type Achievement struct {
	Name        string
	Description string
	Icon        string
}

// DefaultSnapshot returns the demo snapshot shown when no progress file is configured
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Streak:              3,
		CompletedActivities: 12,
		MoodHistory:         []int{3, 4, 3, 5, 4, 4, 3},
	}
}

// Average returns the mean of the mood history; ok is false when it is empty
func (s Snapshot) Average() (float64, bool) {
	if len(s.MoodHistory) == 0 {
		return 0, false
	}
	sum := 0
	for _, v := range s.MoodHistory {
		sum += v
	}
	return float64(sum) / float64(len(s.MoodHistory)), true
}

// Trend compares the first and last of the most recent three samples
func (s Snapshot) Trend() string {
	n := len(s.MoodHistory)
	if n < 3 {
		return TrendNotEnough
	}
	first := float64(s.MoodHistory[n-3])
	last := float64(s.MoodHistory[n-1])
	switch {
	case last-first > trendThreshold:
		return TrendImproving
	case first-last > trendThreshold:
		return TrendDeclining
	default:
		return TrendSteady
	}
}

// Achievements lists the badges the snapshot has earned, in display order
func (s Snapshot) Achievements() []Achievement {
	out := []Achievement{{
		Name:        "First Steps",
		Description: "Started your wellness journey",
		Icon:        "🌱",
	}}
	if s.Streak >= 3 {
		out = append(out, Achievement{
			Name:        "3-Day Streak",
			Description: "Checked in three days in a row",
			Icon:        "🔥",
		})
	}
	if s.CompletedActivities >= 5 {
		out = append(out, Achievement{
			Name:        "Mind Master",
			Description: "Completed five activities",
			Icon:        "🧠",
		})
	}
	if s.risingStar() {
		out = append(out, Achievement{
			Name:        "Rising Star",
			Description: "Mood improved all week",
			Icon:        "⭐",
		})
	}
	return out
}

// risingStar holds when the last seven samples never drop and end higher than they start
func (s Snapshot) risingStar() bool {
	n := len(s.MoodHistory)
	if n < 7 {
		return false
	}
	week := s.MoodHistory[n-7:]
	for i := 1; i < len(week); i++ {
		if week[i] < week[i-1] {
			return false
		}
	}
	return week[len(week)-1] > week[0]
}

// Validate rejects negative counts and samples outside the rating scale
func (s Snapshot) Validate() error {
	if s.Streak < 0 {
		return apperrors.NewValidationError("streak", fmt.Sprintf("must not be negative, got %d", s.Streak))
	}
	if s.CompletedActivities < 0 {
		return apperrors.NewValidationError("completed_activities", fmt.Sprintf("must not be negative, got %d", s.CompletedActivities))
	}
	for i, v := range s.MoodHistory {
		if v < MinSample || v > MaxSample {
			return apperrors.NewValidationError(
				fmt.Sprintf("mood_history[%d]", i),
				fmt.Sprintf("must be between %d and %d, got %d", MinSample, MaxSample, v),
			)
		}
	}
	return nil
}

// Parse decodes a snapshot document:
//
//	{"streak": 3, "completed_activities": 12, "mood_history": [3, 4, 5]}
func Parse(data, source string) (Snapshot, error) {
	if !gjson.Valid(data) {
		return Snapshot{}, apperrors.NewParseError("not valid JSON", source)
	}
	parsed := gjson.Parse(data)
	if !parsed.IsObject() {
		return Snapshot{}, apperrors.NewParseError("expected a JSON object", source)
	}

	var s Snapshot
	s.Streak = int(parsed.Get("streak").Int())
	s.CompletedActivities = int(parsed.Get("completed_activities").Int())

	history := parsed.Get("mood_history")
	if history.Exists() && !history.IsArray() {
		return Snapshot{}, apperrors.NewParseError("mood_history must be an array", source)
	}
	var parseErr error
	history.ForEach(func(idx, v gjson.Result) bool {
		if v.Type != gjson.Number {
			parseErr = apperrors.NewParseError(fmt.Sprintf("mood_history[%d] is not a number", idx.Int()), source)
			return false
		}
		if v.Num != math.Trunc(v.Num) {
			parseErr = apperrors.NewParseError(fmt.Sprintf("mood_history[%d] must be a whole number, got %s", idx.Int(), v.Raw), source)
			return false
		}
		s.MoodHistory = append(s.MoodHistory, int(v.Int()))
		return true
	})
	if parseErr != nil {
		return Snapshot{}, parseErr
	}

	if err := s.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", source, err)
	}
	return s, nil
}

// Load reads a snapshot file. An empty path returns DefaultSnapshot.
func Load(path string) (Snapshot, error) {
	if path == "" {
		return DefaultSnapshot(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read progress file: %w", err)
	}
	return Parse(string(data), path)
}
