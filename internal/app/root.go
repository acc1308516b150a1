// Package app contains the Cobra command tree for daycheck.
package app

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/embermill/daycheck/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "daycheck",
	Short: "A daily habit checklist with an AI checkup",
	Long: `daycheck tracks a personal checklist of recurring actions. Each action
becomes a fresh task every calendar day; simple tasks are ticked off,
timed tasks are started and stopped. At the end of the day an AI
"checkup" reviews the completion stats and keeps a scored history.

Run 'daycheck' with no arguments to see today's checklist.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagNoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
			output.SetNoColor(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ses, err := openSession()
		if err != nil {
			return err
		}
		defer ses.Close()

		fmt.Printf("daycheck %s — %s\n\n", appVersion, ses.state.CurrentDate)
		fmt.Print(output.RenderTaskList(sortedViews(ses)))
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/daycheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}
