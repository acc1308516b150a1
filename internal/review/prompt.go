package review

import (
	"fmt"
	"strings"

	"github.com/embermill/daycheck/internal/checklist"
)

// historyWindow is how many recent reviews the prompt may reference.
const historyWindow = 7

// BuildPrompt renders the checkup prompt for the day's stats plus a bounded
// slice of history. The output is deterministic for identical inputs.
func BuildPrompt(stats checklist.DailyStats, history CheckupHistory) string {
	var sb strings.Builder

	sb.WriteString("You are a supportive habit coach. Review the user's checklist results for the day and respond with warm, honest feedback. Celebrate real wins; when the day went badly, be understanding rather than critical.\n\n")

	sb.WriteString(fmt.Sprintf("## Today's results (%s)\n\n", stats.Date))
	sb.WriteString("### Overall\n")
	sb.WriteString(fmt.Sprintf("- Total tasks: %d\n", stats.TotalTasks))
	sb.WriteString(fmt.Sprintf("- Completed: %d\n", stats.CompletedTasks))
	sb.WriteString(fmt.Sprintf("- Completion rate: %d%%\n\n", stats.CompletionRate))

	sb.WriteString("### By importance\n")
	sb.WriteString(fmt.Sprintf("- High: %d/%d completed\n", stats.HighImportance.Completed, stats.HighImportance.Total))
	sb.WriteString(fmt.Sprintf("- Medium: %d/%d completed\n", stats.MediumImportance.Completed, stats.MediumImportance.Total))
	sb.WriteString(fmt.Sprintf("- Low: %d/%d completed\n\n", stats.LowImportance.Completed, stats.LowImportance.Total))

	sb.WriteString("### By difficulty\n")
	sb.WriteString(fmt.Sprintf("- High: %d/%d completed\n", stats.HighDifficulty.Completed, stats.HighDifficulty.Total))
	sb.WriteString(fmt.Sprintf("- Medium: %d/%d completed\n", stats.MediumDifficulty.Completed, stats.MediumDifficulty.Total))
	sb.WriteString(fmt.Sprintf("- Low: %d/%d completed\n", stats.LowDifficulty.Completed, stats.LowDifficulty.Total))

	if stats.TotalDurationMs > 0 {
		hours := stats.TotalDurationMs / 3_600_000
		minutes := (stats.TotalDurationMs % 3_600_000) / 60_000
		sb.WriteString("\n### Focus time\n")
		sb.WriteString(fmt.Sprintf("- Total tracked time: %dh %dm\n", hours, minutes))
	}

	recent := history.Reviews
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}
	if len(recent) > 0 {
		sb.WriteString("\n### Recent history\n")
		for _, r := range recent {
			sb.WriteString(fmt.Sprintf("- %s: %s (score: %d)\n", r.Date, r.Summary, r.Score))
		}
	}

	sb.WriteString(`
## Respond with a JSON object in exactly this shape:

{
  "summary": "one-sentence take on the day, under 20 words, warm and a little playful",
  "detailed_review": "200-300 words analyzing today's results, comparing against the history when available",
  "highlights": ["what went well"],
  "suggestions": ["one concrete improvement"],
  "mood": "one of excellent/good/average/poor",
  "score": 0-100
}

Notes:
1. Write like a friend, not a report.
2. Keep highlights and suggestions to 1-2 entries each.
3. If history is present, call out progress or regression against it.
`)

	return sb.String()
}
