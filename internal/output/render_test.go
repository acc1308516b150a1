package output

import (
	"strings"
	"testing"

	"github.com/embermill/daycheck/internal/checklist"
)

func TestMain(m *testing.M) {
	// Styles emit ANSI escapes; disable them so assertions see plain text.
	SetNoColor(true)
	m.Run()
}

func TestFormatDurationMs(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{5_400_000, "1h 30m"},
		{3_600_000, "1h 0m"},
		{90_000, "1m"},
		{45_000, "45s"},
		{0, "0s"},
	}
	for _, tc := range tests {
		if got := FormatDurationMs(tc.ms); got != tc.want {
			t.Errorf("FormatDurationMs(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}

func TestScoreBar_Bounds(t *testing.T) {
	if got := ScoreBar(0, 10); !strings.Contains(got, strings.Repeat("░", 10)) {
		t.Errorf("score 0 should render an empty bar: %q", got)
	}
	if got := ScoreBar(100, 10); !strings.Contains(got, strings.Repeat("█", 10)) {
		t.Errorf("score 100 should render a full bar: %q", got)
	}
}

func TestRenderTaskList(t *testing.T) {
	if got := RenderTaskList(nil); !strings.Contains(got, "No actions yet") {
		t.Errorf("empty list hint missing: %q", got)
	}

	views := []checklist.TaskView{
		{
			Action: checklist.ActionDefinition{Name: "meditate", Importance: checklist.ImportanceHigh, Difficulty: checklist.DifficultyLow, TimesPerDay: 2},
			Task:   checklist.TodayTask{CompletedCount: 1},
		},
	}
	got := RenderTaskList(views)
	for _, want := range []string{"meditate", "1/2", "high", "simple"} {
		if !strings.Contains(got, want) {
			t.Errorf("task list missing %q:\n%s", want, got)
		}
	}
}

func TestRenderStats_IncludesRate(t *testing.T) {
	stats := checklist.DailyStats{Date: "2026-08-27", TotalTasks: 3, CompletedTasks: 2, CompletionRate: 67}
	got := RenderStats(stats)
	if !strings.Contains(got, "67/100") {
		t.Errorf("stats missing rate bar:\n%s", got)
	}
	if strings.Contains(got, "Focus time") {
		t.Error("focus section rendered with no tracked time")
	}
}

func TestTable_AlignsColumns(t *testing.T) {
	table := NewTable("A", "LONG HEADER")
	table.AddRow("x", "y")
	table.AddRow("longer", "z")

	got := table.Render()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, rule and 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[2], "x     ") {
		t.Errorf("short cell not padded: %q", lines[2])
	}
}

func TestTable_TruncatesLongCells(t *testing.T) {
	table := NewTable("SUMMARY")
	table.AddRow(strings.Repeat("a", 100))

	got := table.Render()
	if !strings.Contains(got, "…") {
		t.Errorf("long cell not truncated:\n%s", got)
	}
	if strings.Contains(got, strings.Repeat("a", maxCellWidth)) {
		t.Errorf("cell exceeds max width:\n%s", got)
	}
}
