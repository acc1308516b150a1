package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/embermill/daycheck/internal/output"
	"github.com/embermill/daycheck/internal/review"
)

var flagRedo bool

var reviewCmd = &cobra.Command{
	Use:     "review",
	Aliases: []string{"checkup"},
	Short:   "Get an AI checkup on today's progress",
	Long: `Send today's statistics and recent review history to the configured
AI provider and display the structured feedback it returns.

A review already generated today is shown again without contacting the
provider. Pass --redo to discard it and request a fresh one.

Requires an API key, via the config file or the DAYCHECK_API_KEY
environment variable.`,
	RunE: runReview,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past checkup reviews",
	RunE:  runHistory,
}

func init() {
	reviewCmd.Flags().BoolVar(&flagRedo, "redo", false, "Discard today's review and request a new one")
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(historyCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	ses, err := openSession()
	if err != nil {
		return err
	}
	defer ses.Close()

	st, err := ses.loadCheckup()
	if err != nil {
		return err
	}
	if flagRedo {
		st = st.ClearToday()
	}

	if st.TodayReview == nil {
		client := review.NewClient(review.Config{
			Provider: review.Provider(ses.cfg.AI.Provider),
			APIKey:   ses.cfg.AI.APIKey,
			APIURL:   ses.cfg.AI.APIURL,
			Model:    ses.cfg.AI.Model,
		})
		reporter := review.NewReporter(client)

		fmt.Println(output.StyleMuted.Render("Asking " + ses.cfg.AI.Provider + " for a checkup..."))
		st, err = reporter.Analyze(cmd.Context(), ses.todayStats(), st)
		if err != nil {
			return err
		}
		if err := ses.saveCheckup(st); err != nil {
			return err
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st.TodayReview)
	}

	fmt.Println(output.RenderReview(*st.TodayReview))
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	ses, err := openSession()
	if err != nil {
		return err
	}
	defer ses.Close()

	st, err := ses.loadCheckup()
	if err != nil {
		return err
	}

	reviews := make([]review.CheckupReview, len(st.History.Reviews))
	copy(reviews, st.History.Reviews)
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].Date > reviews[j].Date
	})

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reviews)
	}

	if len(reviews) == 0 {
		fmt.Println(output.StyleMuted.Render("No reviews yet. Run: daycheck review"))
		return nil
	}

	table := output.NewTable("DATE", "MOOD", "SCORE", "SUMMARY")
	for _, r := range reviews {
		table.AddRow(r.Date, string(r.Mood), fmt.Sprintf("%d", r.Score), r.Summary)
	}
	table.Print()
	return nil
}
