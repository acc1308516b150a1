package output

import (
	"fmt"
	"strings"

	"github.com/embermill/daycheck/internal/checklist"
	"github.com/embermill/daycheck/internal/review"
)

// ScoreBar renders a visual progress bar for a 0-100 value.
// Example: "████████░░ 80/100"
func ScoreBar(score int, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := score * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(...string) string
	switch {
	case score >= 70:
		style = StyleSuccess.Render
	case score >= 40:
		style = StyleWarning.Render
	default:
		style = StyleError.Render
	}

	return fmt.Sprintf("%s %s", style(bar), StyleMuted.Render(fmt.Sprintf("%d/100", score)))
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// FormatDurationMs renders a millisecond duration as "1h 23m" (or "45s"
// below one minute).
func FormatDurationMs(ms int64) string {
	switch {
	case ms >= 3_600_000:
		return fmt.Sprintf("%dh %dm", ms/3_600_000, (ms%3_600_000)/60_000)
	case ms >= 60_000:
		return fmt.Sprintf("%dm", ms/60_000)
	default:
		return fmt.Sprintf("%ds", ms/1000)
	}
}

// taskStatus renders the status cell for a task row.
func taskStatus(v checklist.TaskView) string {
	switch {
	case v.Task.IsCompletedToday:
		return StyleSuccess.Render("done")
	case v.Task.CurrentExecution != nil:
		return StyleWarning.Render("running")
	default:
		return StyleMuted.Render("open")
	}
}

// taskKind renders the kind cell for a task row.
func taskKind(def checklist.ActionDefinition) string {
	if def.TracksDuration {
		return "timed"
	}
	return "simple"
}

// RenderTaskList renders today's checklist as a table.
func RenderTaskList(views []checklist.TaskView) string {
	if len(views) == 0 {
		return StyleMuted.Render("No actions yet. Add one with: daycheck add <name>") + "\n"
	}

	table := NewTable("STATUS", "NAME", "PROGRESS", "IMPORTANCE", "DIFFICULTY", "KIND")
	for _, v := range views {
		table.AddRow(
			taskStatus(v),
			v.Action.Name,
			fmt.Sprintf("%d/%d", v.Task.CompletedCount, v.Action.TimesPerDay),
			string(v.Action.Importance),
			string(v.Action.Difficulty),
			taskKind(v.Action),
		)
	}
	return table.Render()
}

// statLine renders one "label: completed/total" line.
func statLine(label string, b checklist.BucketCount) string {
	return fmt.Sprintf(" %s %d/%d completed\n", StyleLabel.Render(label), b.Completed, b.Total)
}

// RenderStats renders a DailyStats summary.
func RenderStats(stats checklist.DailyStats) string {
	var sb strings.Builder

	sb.WriteString(Section(fmt.Sprintf("Daily stats — %s", stats.Date)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(" %s %d of %d tasks\n", StyleLabel.Render("Completed"), stats.CompletedTasks, stats.TotalTasks))
	sb.WriteString(fmt.Sprintf(" %s %s\n", StyleLabel.Render("Completion"), ScoreBar(stats.CompletionRate, 20)))

	sb.WriteString(Section("By importance"))
	sb.WriteString("\n")
	sb.WriteString(statLine("High", stats.HighImportance))
	sb.WriteString(statLine("Medium", stats.MediumImportance))
	sb.WriteString(statLine("Low", stats.LowImportance))

	sb.WriteString(Section("By difficulty"))
	sb.WriteString("\n")
	sb.WriteString(statLine("High", stats.HighDifficulty))
	sb.WriteString(statLine("Medium", stats.MediumDifficulty))
	sb.WriteString(statLine("Low", stats.LowDifficulty))

	if stats.TotalDurationMs > 0 {
		sb.WriteString(Section("Focus time"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(" %s %s\n", StyleLabel.Render("Total tracked"), FormatDurationMs(stats.TotalDurationMs)))
		sb.WriteString(fmt.Sprintf(" %s %s\n", StyleLabel.Render("Average"), FormatDurationMs(stats.AverageDurationMs)))
	}

	return sb.String()
}

// moodStyle picks a style for a mood value.
func moodStyle(m review.Mood) func(...string) string {
	switch m {
	case review.MoodExcellent:
		return StyleSuccess.Render
	case review.MoodPoor:
		return StyleError.Render
	default:
		return StyleWarning.Render
	}
}

// RenderReview renders a checkup review card.
func RenderReview(r review.CheckupReview) string {
	var sb strings.Builder

	sb.WriteString(Section(fmt.Sprintf("Checkup — %s", r.Date)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(" %s %s\n", StyleLabel.Render("Score"), ScoreBar(r.Score, 20)))
	sb.WriteString(fmt.Sprintf(" %s %s\n", StyleLabel.Render("Mood"), moodStyle(r.Mood)(string(r.Mood))))
	sb.WriteString(fmt.Sprintf(" %s %s\n\n", StyleLabel.Render("Summary"), StyleBold.Render(r.Summary)))
	sb.WriteString(" " + r.DetailedReview + "\n")

	if len(r.Highlights) > 0 {
		sb.WriteString(Section("Highlights"))
		sb.WriteString("\n")
		for _, h := range r.Highlights {
			sb.WriteString(fmt.Sprintf(" %s %s\n", StyleSuccess.Render("•"), h))
		}
	}
	if len(r.Suggestions) > 0 {
		sb.WriteString(Section("Suggestions"))
		sb.WriteString("\n")
		for _, s := range r.Suggestions {
			sb.WriteString(fmt.Sprintf(" %s %s\n", StyleWarning.Render("•"), s))
		}
	}

	return sb.String()
}
