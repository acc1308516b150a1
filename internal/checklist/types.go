// Package checklist implements the daily task lifecycle: recurring action
// definitions, per-day task instances derived from them, execution timing,
// day rollover, and the daily statistics computed from all of it.
//
// All state transitions are pure functions over an AppState snapshot. They
// take the clock as an explicit argument and return a new snapshot; callers
// (the CLI layer) are responsible for persisting the result.
package checklist

import "time"

// DateLayout is the calendar-day format used for AppState.CurrentDate and
// DailyStats.Date.
const DateLayout = "2006-01-02"

// Difficulty rates how hard an action is to do.
type Difficulty string

// Difficulty levels.
const (
	DifficultyLow    Difficulty = "low"
	DifficultyMedium Difficulty = "medium"
	DifficultyHigh   Difficulty = "high"
)

// Importance rates how much an action matters.
type Importance string

// Importance levels.
const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// weight maps importance to its sort weight (high first).
func (i Importance) weight() int {
	switch i {
	case ImportanceHigh:
		return 3
	case ImportanceMedium:
		return 2
	default:
		return 1
	}
}

// ActionDefinition is a user-authored recurring task template.
type ActionDefinition struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Difficulty     Difficulty `json:"difficulty"`
	Importance     Importance `json:"importance"`
	TimesPerDay    int        `json:"times_per_day"`
	TracksDuration bool       `json:"tracks_duration"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TaskExecution is one timed attempt at an action. An execution is open
// while StartTime is set and EndTime is not; DurationMs stays 0 until the
// execution completes.
type TaskExecution struct {
	StartTime  *time.Time `json:"start_time"`
	EndTime    *time.Time `json:"end_time"`
	DurationMs int64      `json:"duration_ms"`
}

// TodayTask is the per-calendar-day execution state for one ActionDefinition.
// At most one execution may be open at a time; completed executions are
// appended to Executions and never removed within a day.
type TodayTask struct {
	ActionID         string          `json:"action_id"`
	CompletedCount   int             `json:"completed_count"`
	CurrentExecution *TaskExecution  `json:"current_execution,omitempty"`
	IsCompletedToday bool            `json:"is_completed_today"`
	Executions       []TaskExecution `json:"executions"`
	LastUpdated      time.Time       `json:"last_updated"`
}

// AppState is the aggregate checklist state persisted as a single blob.
// TodayTasks holds exactly one instance per entry in ActionItems, keyed by
// action ID; CurrentDate is the calendar day the task instances belong to.
type AppState struct {
	ActionItems []ActionDefinition `json:"action_items"`
	TodayTasks  []TodayTask        `json:"today_tasks"`
	CurrentDate string             `json:"current_date"`
}

// TaskView pairs a task instance with its definition for display.
type TaskView struct {
	Task   TodayTask
	Action ActionDefinition
}

// BucketCount is a completed/total pair for one importance or difficulty
// bucket.
type BucketCount struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// DailyStats is the derived summary of one day's checklist results. It is
// recomputed on demand and only persisted as part of the checkup history.
type DailyStats struct {
	Date           string `json:"date"`
	TotalTasks     int    `json:"total_tasks"`
	CompletedTasks int    `json:"completed_tasks"`
	CompletionRate int    `json:"completion_rate"`

	HighImportance   BucketCount `json:"high_importance"`
	MediumImportance BucketCount `json:"medium_importance"`
	LowImportance    BucketCount `json:"low_importance"`

	HighDifficulty   BucketCount `json:"high_difficulty"`
	MediumDifficulty BucketCount `json:"medium_difficulty"`
	LowDifficulty    BucketCount `json:"low_difficulty"`

	TotalDurationMs   int64 `json:"total_duration_ms"`
	AverageDurationMs int64 `json:"average_duration_ms"`
}
