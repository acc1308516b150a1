package checklist

import "math"

// ComputeDailyStats derives the day's summary from the action definitions
// and their task instances. It is deterministic, never mutates its inputs,
// and is safe to call repeatedly. Definitions without a matching instance
// still count toward TotalTasks but contribute nothing else.
func ComputeDailyStats(date string, actions []ActionDefinition, tasks []TodayTask) DailyStats {
	stats := DailyStats{
		Date:       date,
		TotalTasks: len(actions),
	}

	byID := make(map[string]TodayTask, len(tasks))
	for _, t := range tasks {
		byID[t.ActionID] = t
	}

	var durationCount int64
	for _, def := range actions {
		task, ok := byID[def.ID]
		if !ok {
			continue
		}

		completed := task.IsCompletedToday
		if completed {
			stats.CompletedTasks++
		}

		bumpBucket(importanceBucket(&stats, def.Importance), completed)
		bumpBucket(difficultyBucket(&stats, def.Difficulty), completed)

		for _, exec := range task.Executions {
			if exec.DurationMs > 0 {
				stats.TotalDurationMs += exec.DurationMs
				durationCount++
			}
		}
	}

	if stats.TotalTasks > 0 {
		rate := float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
		stats.CompletionRate = int(math.Round(rate))
	}
	if durationCount > 0 {
		stats.AverageDurationMs = int64(math.Round(float64(stats.TotalDurationMs) / float64(durationCount)))
	}
	return stats
}

func bumpBucket(b *BucketCount, completed bool) {
	b.Total++
	if completed {
		b.Completed++
	}
}

func importanceBucket(stats *DailyStats, imp Importance) *BucketCount {
	switch imp {
	case ImportanceHigh:
		return &stats.HighImportance
	case ImportanceMedium:
		return &stats.MediumImportance
	default:
		return &stats.LowImportance
	}
}

func difficultyBucket(stats *DailyStats, diff Difficulty) *BucketCount {
	switch diff {
	case DifficultyHigh:
		return &stats.HighDifficulty
	case DifficultyMedium:
		return &stats.MediumDifficulty
	default:
		return &stats.LowDifficulty
	}
}
