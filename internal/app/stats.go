package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/embermill/daycheck/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's completion statistics",
	Long: `Compute and display today's completion statistics: overall rate,
per-importance and per-difficulty buckets, and tracked focus time.
These are the numbers the checkup review is based on.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ses, err := openSession()
	if err != nil {
		return err
	}
	defer ses.Close()

	stats := ses.todayStats()

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Println(output.RenderStats(stats))
	return nil
}
