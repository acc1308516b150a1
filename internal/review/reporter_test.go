package review

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/embermill/daycheck/internal/checklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator returns canned responses and counts calls. When gate is
// non-nil, Generate blocks until the gate closes.
type fakeGenerator struct {
	response string
	err      error
	calls    atomic.Int32
	gate     chan struct{}
	started  chan struct{}
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls.Add(1)
	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.gate != nil {
		<-g.gate
	}
	return g.response, g.err
}

func TestAnalyze_MergesHistory(t *testing.T) {
	gen := &fakeGenerator{response: `{"summary":"Great day","score":85,"mood":"excellent"}`}
	rep := NewReporter(gen)
	stats := checklist.DailyStats{Date: "2026-08-27", TotalTasks: 2, CompletedTasks: 2, CompletionRate: 100}

	st, err := rep.Analyze(context.Background(), stats, State{})
	require.NoError(t, err)

	require.NotNil(t, st.TodayReview)
	assert.Equal(t, "Great day", st.TodayReview.Summary)
	assert.Equal(t, 85, st.TodayReview.Score)

	require.Len(t, st.History.Reviews, 1)
	require.Len(t, st.History.Stats, 1)
	assert.Equal(t, "2026-08-27", st.History.Reviews[0].Date)
	assert.Equal(t, stats, st.History.Stats[0])
}

func TestAnalyze_ReplacesSameDateEntry(t *testing.T) {
	gen := &fakeGenerator{response: `{"summary":"second take","score":60}`}
	rep := NewReporter(gen)
	stats := checklist.DailyStats{Date: "2026-08-27", TotalTasks: 1}

	prior := State{
		History: CheckupHistory{
			Reviews: []CheckupReview{
				{Date: "2026-08-26", Summary: "yesterday"},
				{Date: "2026-08-27", Summary: "first take"},
			},
			Stats: []checklist.DailyStats{
				{Date: "2026-08-26"},
				{Date: "2026-08-27", TotalTasks: 99},
			},
		},
	}

	st, err := rep.Analyze(context.Background(), stats, prior)
	require.NoError(t, err)

	// At most one entry per date in each list.
	require.Len(t, st.History.Reviews, 2)
	require.Len(t, st.History.Stats, 2)
	var todayCount int
	for _, r := range st.History.Reviews {
		if r.Date == "2026-08-27" {
			todayCount++
			assert.Equal(t, "second take", r.Summary)
		}
	}
	assert.Equal(t, 1, todayCount)
	for _, s := range st.History.Stats {
		if s.Date == "2026-08-27" {
			assert.Equal(t, 1, s.TotalTasks, "stats entry replaced")
		}
	}
}

func TestAnalyze_ErrorLeavesStateUntouched(t *testing.T) {
	gen := &fakeGenerator{err: &ProviderError{Status: 500, Body: "boom"}}
	rep := NewReporter(gen)
	prior := State{
		TodayReview: &CheckupReview{Date: "2026-08-26", Summary: "stale"},
		History:     CheckupHistory{Reviews: []CheckupReview{{Date: "2026-08-26"}}},
	}

	st, err := rep.Analyze(context.Background(), checklist.DailyStats{Date: "2026-08-27"}, prior)
	require.Error(t, err)

	var provErr *ProviderError
	assert.True(t, errors.As(err, &provErr), "provider error surfaces verbatim")
	assert.Equal(t, prior.TodayReview, st.TodayReview)
	assert.Len(t, st.History.Reviews, 1, "history not partially written")
}

func TestAnalyze_SingleFlightPerDate(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"summary":"shared","score":75}`,
		gate:     make(chan struct{}),
		started:  make(chan struct{}, 1),
	}
	rep := NewReporter(gen)
	stats := checklist.DailyStats{Date: "2026-08-27"}

	var wg sync.WaitGroup
	results := make([]State, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = rep.Analyze(context.Background(), stats, State{})
	}()
	<-gen.started // first call is in flight

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _ = rep.Analyze(context.Background(), stats, State{})
	}()
	time.Sleep(20 * time.Millisecond) // let the second call join the flight
	close(gen.gate)
	wg.Wait()

	assert.Equal(t, int32(1), gen.calls.Load(), "duplicate analyses share one generation call")
	for i, st := range results {
		require.NotNil(t, st.TodayReview, "result %d", i)
		assert.Equal(t, "shared", st.TodayReview.Summary)
		assert.Len(t, st.History.Reviews, 1)
	}
}

func TestClearToday(t *testing.T) {
	st := State{
		TodayReview: &CheckupReview{Date: "2026-08-27"},
		History:     CheckupHistory{Reviews: []CheckupReview{{Date: "2026-08-27"}}},
	}

	cleared := st.ClearToday()
	assert.Nil(t, cleared.TodayReview)
	assert.Len(t, cleared.History.Reviews, 1, "history untouched by clear")
}
