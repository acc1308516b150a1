// Package review turns a day's checklist statistics into a natural-language
// checkup by calling an external text-generation provider, and maintains the
// review history with at most one entry per date.
package review

import "github.com/embermill/daycheck/internal/checklist"

// Mood is the model's overall read on the day.
type Mood string

// Mood values.
const (
	MoodExcellent Mood = "excellent"
	MoodGood      Mood = "good"
	MoodAverage   Mood = "average"
	MoodPoor      Mood = "poor"
)

// valid reports whether m is one of the known mood values.
func (m Mood) valid() bool {
	switch m {
	case MoodExcellent, MoodGood, MoodAverage, MoodPoor:
		return true
	}
	return false
}

// CheckupReview is the structured feedback produced for one day. Once stored
// it is only ever replaced wholesale by a re-review.
type CheckupReview struct {
	Date           string   `json:"date"`
	Summary        string   `json:"summary"`
	DetailedReview string   `json:"detailed_review"`
	Highlights     []string `json:"highlights"`
	Suggestions    []string `json:"suggestions"`
	Mood           Mood     `json:"mood"`
	Score          int      `json:"score"`
}

// CheckupHistory holds past reviews and their source stats, at most one
// entry per date in each list.
type CheckupHistory struct {
	Reviews []CheckupReview        `json:"reviews"`
	Stats   []checklist.DailyStats `json:"stats"`
}

// State is the persisted checkup blob: today's review (if any) plus history.
type State struct {
	TodayReview *CheckupReview `json:"today_review,omitempty"`
	History     CheckupHistory `json:"history"`
}

// ClearToday drops today's review so the next analysis runs fresh. History
// is left untouched; the next successful analysis replaces its entry for
// the date.
func (s State) ClearToday() State {
	s.TodayReview = nil
	return s
}
