package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/embermill/daycheck/internal/checklist"
	"github.com/embermill/daycheck/internal/output"
)

var (
	addDifficulty string
	addImportance string
	addTimes      int
	addTimed      bool
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a recurring action to the checklist",
	Long: `Add a recurring action. The action gets a fresh task instance today and
on every following day. Timed actions (--timed) are completed with
start/stop; everything else is a single tick per completion.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	editName       string
	editDifficulty string
	editImportance string
	editTimes      int
	editTimed      bool
)

var editCmd = &cobra.Command{
	Use:   "edit <action>",
	Short: "Update an action's definition",
	Long: `Update fields of an action, addressed by name or ID prefix. Changing
--times or --timed resets today's progress for that action, since the
old progress no longer means anything under the new shape.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var rmCmd = &cobra.Command{
	Use:   "rm <action>",
	Short: "Delete an action and its task for today",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show today's checklist",
	RunE:  runList,
}

func init() {
	addCmd.Flags().StringVar(&addDifficulty, "difficulty", "medium", "Difficulty: low, medium or high")
	addCmd.Flags().StringVar(&addImportance, "importance", "medium", "Importance: low, medium or high")
	addCmd.Flags().IntVar(&addTimes, "times", 1, "Completions per day required to finish the task")
	addCmd.Flags().BoolVar(&addTimed, "timed", false, "Track start/stop time for each completion")
	rootCmd.AddCommand(addCmd)

	editCmd.Flags().StringVar(&editName, "name", "", "New display name")
	editCmd.Flags().StringVar(&editDifficulty, "difficulty", "", "Difficulty: low, medium or high")
	editCmd.Flags().StringVar(&editImportance, "importance", "", "Importance: low, medium or high")
	editCmd.Flags().IntVar(&editTimes, "times", 0, "Completions per day required to finish the task")
	editCmd.Flags().BoolVar(&editTimed, "timed", false, "Track start/stop time for each completion")
	rootCmd.AddCommand(editCmd)

	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(listCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	difficulty, err := parseLevel("difficulty", addDifficulty)
	if err != nil {
		return err
	}
	importance, err := parseLevel("importance", addImportance)
	if err != nil {
		return err
	}

	ses, err := openSession()
	if err != nil {
		return err
	}
	defer ses.Close()

	next, ok := checklist.AddAction(ses.state, name,
		checklist.Difficulty(difficulty), checklist.Importance(importance),
		addTimes, addTimed, time.Now())
	if !ok {
		return fmt.Errorf("action name must not be empty")
	}
	ses.state = next
	if err := ses.save(); err != nil {
		return err
	}

	def := next.ActionItems[len(next.ActionItems)-1]
	fmt.Printf("Added %q (%s, %d/day)\n", def.Name, kindLabel(def), def.TimesPerDay)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	ses, err := openSession()
	if err != nil {
		return err
	}
	defer ses.Close()

	def, err := ses.resolveAction(args[0])
	if err != nil {
		return err
	}

	var upd checklist.ActionUpdate
	if cmd.Flags().Changed("name") {
		upd.Name = &editName
	}
	if cmd.Flags().Changed("difficulty") {
		value, err := parseLevel("difficulty", editDifficulty)
		if err != nil {
			return err
		}
		d := checklist.Difficulty(value)
		upd.Difficulty = &d
	}
	if cmd.Flags().Changed("importance") {
		value, err := parseLevel("importance", editImportance)
		if err != nil {
			return err
		}
		i := checklist.Importance(value)
		upd.Importance = &i
	}
	if cmd.Flags().Changed("times") {
		upd.TimesPerDay = &editTimes
	}
	if cmd.Flags().Changed("timed") {
		upd.TracksDuration = &editTimed
	}

	if upd == (checklist.ActionUpdate{}) {
		return fmt.Errorf("nothing to change: pass at least one of --name, --difficulty, --importance, --times, --timed")
	}

	next, ok := checklist.UpdateAction(ses.state, def.ID, upd, time.Now())
	if !ok {
		return fmt.Errorf("no action matches %q", args[0])
	}
	ses.state = next
	if err := ses.save(); err != nil {
		return err
	}

	fmt.Printf("Updated %q\n", def.Name)
	if upd.TimesPerDay != nil || upd.TracksDuration != nil {
		fmt.Println(output.StyleMuted.Render("Today's progress for this action was reset."))
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	ses, err := openSession()
	if err != nil {
		return err
	}
	defer ses.Close()

	def, err := ses.resolveAction(args[0])
	if err != nil {
		return err
	}

	next, ok := checklist.DeleteAction(ses.state, def.ID)
	if !ok {
		return fmt.Errorf("no action matches %q", args[0])
	}
	ses.state = next
	if err := ses.save(); err != nil {
		return err
	}

	fmt.Printf("Removed %q\n", def.Name)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	ses, err := openSession()
	if err != nil {
		return err
	}
	defer ses.Close()

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(ses.state)
	}

	fmt.Printf("Checklist for %s\n\n", ses.state.CurrentDate)
	fmt.Print(output.RenderTaskList(sortedViews(ses)))
	return nil
}

// kindLabel names an action's completion style for messages.
func kindLabel(def checklist.ActionDefinition) string {
	if def.TracksDuration {
		return "timed"
	}
	return "simple"
}
