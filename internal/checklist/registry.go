package checklist

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ActionUpdate carries the fields an edit may change. Nil fields are left
// untouched.
type ActionUpdate struct {
	Name           *string
	Difficulty     *Difficulty
	Importance     *Importance
	TimesPerDay    *int
	TracksDuration *bool
}

// AddAction appends a new action definition and its empty task instance.
// A blank name is rejected as a no-op; TimesPerDay is clamped to at least 1.
// The second return value reports whether the state changed.
func AddAction(s AppState, name string, difficulty Difficulty, importance Importance, timesPerDay int, tracksDuration bool, now time.Time) (AppState, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, false
	}
	if timesPerDay < 1 {
		timesPerDay = 1
	}

	def := ActionDefinition{
		ID:             uuid.NewString(),
		Name:           name,
		Difficulty:     difficulty,
		Importance:     importance,
		TimesPerDay:    timesPerDay,
		TracksDuration: tracksDuration,
		CreatedAt:      now,
	}

	next := s
	next.ActionItems = append(append([]ActionDefinition(nil), s.ActionItems...), def)
	next.TodayTasks = append(append([]TodayTask(nil), s.TodayTasks...), emptyTask(def.ID, now))
	return next, true
}

// UpdateAction merges the provided fields into the definition with the given
// ID. An unknown ID is a no-op. Changing TimesPerDay or TracksDuration resets
// the associated task instance: altering the shape of a recurring task
// invalidates any progress made under the old shape.
func UpdateAction(s AppState, id string, upd ActionUpdate, now time.Time) (AppState, bool) {
	idx := -1
	for i := range s.ActionItems {
		if s.ActionItems[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, false
	}

	def := s.ActionItems[idx]
	resetTask := false

	if upd.Name != nil {
		if name := strings.TrimSpace(*upd.Name); name != "" {
			def.Name = name
		}
	}
	if upd.Difficulty != nil {
		def.Difficulty = *upd.Difficulty
	}
	if upd.Importance != nil {
		def.Importance = *upd.Importance
	}
	if upd.TimesPerDay != nil {
		times := *upd.TimesPerDay
		if times < 1 {
			times = 1
		}
		if times != def.TimesPerDay {
			resetTask = true
		}
		def.TimesPerDay = times
	}
	if upd.TracksDuration != nil {
		if *upd.TracksDuration != def.TracksDuration {
			resetTask = true
		}
		def.TracksDuration = *upd.TracksDuration
	}

	next := s
	next.ActionItems = append([]ActionDefinition(nil), s.ActionItems...)
	next.ActionItems[idx] = def

	if resetTask {
		next.TodayTasks = append([]TodayTask(nil), s.TodayTasks...)
		for i := range next.TodayTasks {
			if next.TodayTasks[i].ActionID == id {
				next.TodayTasks[i] = emptyTask(id, now)
			}
		}
	}
	return next, true
}

// DeleteAction removes the definition and its task instance. An unknown ID
// is a no-op.
func DeleteAction(s AppState, id string) (AppState, bool) {
	found := false
	items := make([]ActionDefinition, 0, len(s.ActionItems))
	for _, def := range s.ActionItems {
		if def.ID == id {
			found = true
			continue
		}
		items = append(items, def)
	}
	if !found {
		return s, false
	}

	tasks := make([]TodayTask, 0, len(s.TodayTasks))
	for _, task := range s.TodayTasks {
		if task.ActionID == id {
			continue
		}
		tasks = append(tasks, task)
	}

	next := s
	next.ActionItems = items
	next.TodayTasks = tasks
	return next, true
}

// FindAction returns the definition with the given ID, if any.
func FindAction(s AppState, id string) (ActionDefinition, bool) {
	for _, def := range s.ActionItems {
		if def.ID == id {
			return def, true
		}
	}
	return ActionDefinition{}, false
}
