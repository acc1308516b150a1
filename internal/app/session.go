package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/embermill/daycheck/internal/checklist"
	"github.com/embermill/daycheck/internal/config"
	"github.com/embermill/daycheck/internal/review"
	"github.com/embermill/daycheck/internal/store"
)

// Storage keys for the two persisted blobs.
const (
	stateKey   = "checklist/v1"
	checkupKey = "checkup/v1"
)

// session bundles the loaded config, the open database and the reconciled
// checklist state for one command invocation.
type session struct {
	cfg   *config.Config
	db    *store.DB
	state checklist.AppState
}

// openSession loads config, opens the store, and loads the checklist state
// with the day rollover already applied. Reconciling here, before any
// command logic runs, guarantees no mutation ever operates on a stale day's
// instances. A rolled-over state is persisted immediately.
func openSession() (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	var state checklist.AppState
	if _, err := db.Load(stateKey, &state); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading state: %w", err)
	}

	reconciled := checklist.Reconcile(state, time.Now())
	ses := &session{cfg: cfg, db: db, state: reconciled}
	if reconciled.CurrentDate != state.CurrentDate {
		if err := ses.save(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return ses, nil
}

// save persists the full checklist state.
func (s *session) save() error {
	if err := s.db.Save(stateKey, s.state); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *session) Close() {
	_ = s.db.Close()
}

// loadCheckup reads the persisted checkup state (today's review + history).
func (s *session) loadCheckup() (review.State, error) {
	var st review.State
	if _, err := s.db.Load(checkupKey, &st); err != nil {
		return review.State{}, fmt.Errorf("loading checkup state: %w", err)
	}
	// A review left over from a previous day is stale.
	if st.TodayReview != nil && st.TodayReview.Date != s.state.CurrentDate {
		st.TodayReview = nil
	}
	return st, nil
}

// saveCheckup persists the checkup state.
func (s *session) saveCheckup(st review.State) error {
	if err := s.db.Save(checkupKey, st); err != nil {
		return fmt.Errorf("saving checkup state: %w", err)
	}
	return nil
}

// todayStats computes the stats for the reconciled day.
func (s *session) todayStats() checklist.DailyStats {
	return checklist.ComputeDailyStats(s.state.CurrentDate, s.state.ActionItems, s.state.TodayTasks)
}

// sortedViews returns today's tasks in display order.
func sortedViews(s *session) []checklist.TaskView {
	return checklist.SortedTasks(s.state)
}

// resolveAction finds an action by exact ID, unique ID prefix, or
// case-insensitive name.
func (s *session) resolveAction(arg string) (checklist.ActionDefinition, error) {
	if def, ok := checklist.FindAction(s.state, arg); ok {
		return def, nil
	}

	var matches []checklist.ActionDefinition
	lower := strings.ToLower(arg)
	for _, def := range s.state.ActionItems {
		if strings.EqualFold(def.Name, arg) {
			return def, nil
		}
		if strings.HasPrefix(def.ID, arg) || strings.HasPrefix(strings.ToLower(def.Name), lower) {
			matches = append(matches, def)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return checklist.ActionDefinition{}, fmt.Errorf("no action matches %q", arg)
	default:
		names := make([]string, len(matches))
		for i, def := range matches {
			names[i] = def.Name
		}
		return checklist.ActionDefinition{}, fmt.Errorf("%q is ambiguous: %s", arg, strings.Join(names, ", "))
	}
}

// parseLevel validates a low/medium/high flag value.
func parseLevel(flag, value string) (string, error) {
	switch value {
	case "low", "medium", "high":
		return value, nil
	default:
		return "", fmt.Errorf("--%s must be one of low, medium, high (got %q)", flag, value)
	}
}
