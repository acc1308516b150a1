package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/embermill/daycheck/internal/checklist"
	"github.com/embermill/daycheck/internal/output"
)

var doneCmd = &cobra.Command{
	Use:   "done <action>",
	Short: "Tick off one completion of a simple action",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var startCmd = &cobra.Command{
	Use:   "start <action>",
	Short: "Start timing a timed action",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

var stopCmd = &cobra.Command{
	Use:   "stop <action>",
	Short: "Stop the running timer and record one completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <action>",
	Short: "Discard the running timer without recording anything",
	Args:  cobra.ExactArgs(1),
	RunE:  runCancel,
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(cancelCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	ses, err := openSession()
	if err != nil {
		return err
	}
	defer ses.Close()

	def, err := ses.resolveAction(args[0])
	if err != nil {
		return err
	}
	if def.TracksDuration {
		return fmt.Errorf("%q is a timed action: use 'daycheck start' and 'daycheck stop'", def.Name)
	}

	next, ok := checklist.CompleteSimple(ses.state, def.ID, time.Now())
	if !ok {
		return fmt.Errorf("no action matches %q", args[0])
	}
	ses.state = next
	if err := ses.save(); err != nil {
		return err
	}

	task := taskFor(next, def.ID)
	if task.IsCompletedToday {
		fmt.Printf("%s %q done for today (%d/%d)\n", output.StyleSuccess.Render("✓"), def.Name, task.CompletedCount, def.TimesPerDay)
	} else {
		fmt.Printf("%s %q %d/%d\n", output.StyleSuccess.Render("✓"), def.Name, task.CompletedCount, def.TimesPerDay)
	}
	return nil
}

func runStart(cmd *cobra.Command, args []string) error {
	ses, err := openSession()
	if err != nil {
		return err
	}
	defer ses.Close()

	def, err := ses.resolveAction(args[0])
	if err != nil {
		return err
	}
	if !def.TracksDuration {
		return fmt.Errorf("%q is a simple action: use 'daycheck done'", def.Name)
	}

	next, ok := checklist.Start(ses.state, def.ID, time.Now())
	if !ok {
		return fmt.Errorf("%q is already running: stop or cancel it first", def.Name)
	}
	ses.state = next
	if err := ses.save(); err != nil {
		return err
	}

	fmt.Printf("%s timing %q\n", output.StyleWarning.Render("▶"), def.Name)
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	ses, err := openSession()
	if err != nil {
		return err
	}
	defer ses.Close()

	def, err := ses.resolveAction(args[0])
	if err != nil {
		return err
	}

	next, ok := checklist.CompleteWithDuration(ses.state, def.ID, time.Now())
	if !ok {
		return fmt.Errorf("%q is not running", def.Name)
	}
	ses.state = next
	if err := ses.save(); err != nil {
		return err
	}

	task := taskFor(next, def.ID)
	last := task.Executions[len(task.Executions)-1]
	fmt.Printf("%s %q %s recorded (%d/%d)\n", output.StyleSuccess.Render("■"),
		def.Name, output.FormatDurationMs(last.DurationMs), task.CompletedCount, def.TimesPerDay)
	return nil
}

func runCancel(cmd *cobra.Command, args []string) error {
	ses, err := openSession()
	if err != nil {
		return err
	}
	defer ses.Close()

	def, err := ses.resolveAction(args[0])
	if err != nil {
		return err
	}

	next, ok := checklist.Cancel(ses.state, def.ID, time.Now())
	if !ok {
		return fmt.Errorf("%q is not running", def.Name)
	}
	ses.state = next
	if err := ses.save(); err != nil {
		return err
	}

	fmt.Printf("Cancelled the running timer for %q\n", def.Name)
	return nil
}

// taskFor returns the task instance for an action ID.
func taskFor(s checklist.AppState, actionID string) checklist.TodayTask {
	for _, task := range s.TodayTasks {
		if task.ActionID == actionID {
			return task
		}
	}
	return checklist.TodayTask{}
}
