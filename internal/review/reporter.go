package review

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/embermill/daycheck/internal/checklist"
)

// Reporter runs checkup analyses. Concurrent analyses for the same date are
// collapsed into a single generation call so history can never pick up
// duplicate entries for the day.
type Reporter struct {
	gen   Generator
	group singleflight.Group
}

// NewReporter builds a Reporter around the given generator.
func NewReporter(gen Generator) *Reporter {
	return &Reporter{gen: gen}
}

// Analyze builds the prompt from stats and history, calls the generator, and
// returns the state with today's review set and the history entry for the
// date replaced. On any generator error the input state is returned
// untouched: history is only written after a fully successful call.
func (r *Reporter) Analyze(ctx context.Context, stats checklist.DailyStats, st State) (State, error) {
	v, err, _ := r.group.Do(stats.Date, func() (any, error) {
		prompt := BuildPrompt(stats, st.History)
		raw, err := r.gen.Generate(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return ParseReview(raw, stats.Date), nil
	})
	if err != nil {
		return st, err
	}

	rev := v.(CheckupReview)
	next := st
	next.TodayReview = &rev
	next.History = mergeHistory(st.History, rev, stats)
	return next, nil
}

// mergeHistory replaces any existing entry for the review's date in both
// lists, keeping at most one entry per date.
func mergeHistory(h CheckupHistory, rev CheckupReview, stats checklist.DailyStats) CheckupHistory {
	reviews := make([]CheckupReview, 0, len(h.Reviews)+1)
	for _, r := range h.Reviews {
		if r.Date != rev.Date {
			reviews = append(reviews, r)
		}
	}
	reviews = append(reviews, rev)

	statsList := make([]checklist.DailyStats, 0, len(h.Stats)+1)
	for _, s := range h.Stats {
		if s.Date != stats.Date {
			statsList = append(statsList, s)
		}
	}
	statsList = append(statsList, stats)

	return CheckupHistory{Reviews: reviews, Stats: statsList}
}
