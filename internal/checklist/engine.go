package checklist

import (
	"sort"
	"time"
)

// emptyTask returns a zeroed task instance for an action.
func emptyTask(actionID string, now time.Time) TodayTask {
	return TodayTask{
		ActionID:    actionID,
		Executions:  []TaskExecution{},
		LastUpdated: now,
	}
}

// Reconcile applies the day rollover if the stored date no longer matches the
// local calendar day: action definitions are kept and every task instance is
// replaced with a fresh empty one. It is idempotent and must run before any
// task mutation so a stale instance is never mutated across a day boundary.
// Yesterday's instances are discarded, not archived; only the checkup history
// retains a trace of past days.
func Reconcile(s AppState, now time.Time) AppState {
	today := now.Format(DateLayout)
	if s.CurrentDate == today {
		return s
	}

	tasks := make([]TodayTask, 0, len(s.ActionItems))
	for _, def := range s.ActionItems {
		tasks = append(tasks, emptyTask(def.ID, now))
	}

	next := s
	next.TodayTasks = tasks
	next.CurrentDate = today
	return next
}

// mutateTask copies the task list and applies fn to the instance for
// actionID. Returns s unchanged when the instance is unknown or fn declines.
func mutateTask(s AppState, actionID string, fn func(*TodayTask) bool) (AppState, bool) {
	for i := range s.TodayTasks {
		if s.TodayTasks[i].ActionID != actionID {
			continue
		}
		tasks := append([]TodayTask(nil), s.TodayTasks...)
		task := tasks[i]
		if !fn(&task) {
			return s, false
		}
		tasks[i] = task
		next := s
		next.TodayTasks = tasks
		return next, true
	}
	return s, false
}

// CompleteSimple records one completion of a single-click action. The task
// becomes done for the day once the completed count reaches the action's
// TimesPerDay. Unknown action IDs are a no-op.
func CompleteSimple(s AppState, actionID string, now time.Time) (AppState, bool) {
	def, ok := FindAction(s, actionID)
	if !ok {
		return s, false
	}
	return mutateTask(s, actionID, func(t *TodayTask) bool {
		t.CompletedCount++
		t.IsCompletedToday = t.CompletedCount >= def.TimesPerDay
		t.LastUpdated = now
		return true
	})
}

// Start opens a new timed execution for the action. It is a no-op if an
// execution is already open: there is never more than one open execution
// per action.
func Start(s AppState, actionID string, now time.Time) (AppState, bool) {
	if _, ok := FindAction(s, actionID); !ok {
		return s, false
	}
	return mutateTask(s, actionID, func(t *TodayTask) bool {
		if t.CurrentExecution != nil {
			return false
		}
		start := now
		t.CurrentExecution = &TaskExecution{StartTime: &start}
		t.LastUpdated = now
		return true
	})
}

// CompleteWithDuration closes the open execution, records it, and counts one
// completion. A missing open execution is a no-op.
func CompleteWithDuration(s AppState, actionID string, now time.Time) (AppState, bool) {
	def, ok := FindAction(s, actionID)
	if !ok {
		return s, false
	}
	return mutateTask(s, actionID, func(t *TodayTask) bool {
		if t.CurrentExecution == nil || t.CurrentExecution.StartTime == nil {
			return false
		}
		end := now
		done := TaskExecution{
			StartTime:  t.CurrentExecution.StartTime,
			EndTime:    &end,
			DurationMs: end.Sub(*t.CurrentExecution.StartTime).Milliseconds(),
		}
		t.Executions = append(append([]TaskExecution(nil), t.Executions...), done)
		t.CurrentExecution = nil
		t.CompletedCount++
		t.IsCompletedToday = t.CompletedCount >= def.TimesPerDay
		t.LastUpdated = now
		return true
	})
}

// Cancel discards the open execution without recording it or counting a
// completion. A missing open execution is a no-op.
func Cancel(s AppState, actionID string, now time.Time) (AppState, bool) {
	return mutateTask(s, actionID, func(t *TodayTask) bool {
		if t.CurrentExecution == nil {
			return false
		}
		t.CurrentExecution = nil
		t.LastUpdated = now
		return true
	})
}

// SortedTasks returns today's tasks paired with their definitions, ordered
// for display: incomplete before complete, then by importance (high first),
// then by creation time. Instances whose definition no longer exists are
// filtered out.
func SortedTasks(s AppState) []TaskView {
	views := make([]TaskView, 0, len(s.TodayTasks))
	for _, task := range s.TodayTasks {
		def, ok := FindAction(s, task.ActionID)
		if !ok {
			continue
		}
		views = append(views, TaskView{Task: task, Action: def})
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if a.Task.IsCompletedToday != b.Task.IsCompletedToday {
			return !a.Task.IsCompletedToday
		}
		if wa, wb := a.Action.Importance.weight(), b.Action.Importance.weight(); wa != wb {
			return wa > wb
		}
		return a.Action.CreatedAt.Before(b.Action.CreatedAt)
	})
	return views
}
