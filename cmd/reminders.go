package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-trip-planner/internal/model"
)

var (
	reminderContent string
	reminderDue     string
	reminderDone    bool
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "List and manage the reminders of a trip",
}

var remindersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	Args:  cobra.NoArgs,
	RunE:  runRemindersList,
}

var remindersCreateCmd = &cobra.Command{
	Use:   "create [text]",
	Short: "Add a reminder",
	RunE:  runRemindersCreate,
}

var remindersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a reminder; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemindersUpdate,
}

var remindersDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a reminder as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemindersDone,
}

var remindersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemindersDelete,
}

func init() {
	for _, c := range []*cobra.Command{remindersCreateCmd, remindersUpdateCmd} {
		c.Flags().StringVar(&reminderContent, "content", "", "Reminder text")
		c.Flags().StringVar(&reminderDue, "due", "", "Due date or timestamp")
	}
	remindersUpdateCmd.Flags().BoolVar(&reminderDone, "done", false, "Done flag")
	remindersCmd.AddCommand(remindersListCmd, remindersCreateCmd, remindersUpdateCmd, remindersDoneCmd, remindersDeleteCmd)
}

func runRemindersList(cmd *cobra.Command, args []string) error {
	snap, err := loadScoped(cmd.Context(), a.reminders, tripID)
	if err != nil {
		return err
	}
	reportSnapshot(cmd, "reminders", snap)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), snap.Items)
	}
	if len(snap.Items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reminders.")
		return nil
	}
	tbl := newTable("ID", "", "REMINDER", "DUE", "")
	for _, r := range snap.Items {
		tbl.AddRow(r.ID(), checkbox(r.Done), r.Content, orDash(r.DueAt), markers(r.Meta))
	}
	fmt.Fprintln(cmd.OutOrStdout(), tbl)
	return nil
}

func checkbox(done bool) string {
	if done {
		return okStyle.Sprint("[x]")
	}
	return "[ ]"
}

func runRemindersCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer a.wait()
	if _, err := loadScoped(ctx, a.reminders, tripID); err != nil {
		return err
	}

	created, err := a.reminders.Create(ctx, model.Reminder{
		Content: contentArg(cmd, args, "content", reminderContent),
		DueAt:   reminderDue,
	})
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), created)
	}
	reportMutation(cmd, "Created", "reminder", created.ID(), created.Mock)
	return nil
}

func runRemindersUpdate(cmd *cobra.Command, args []string) error {
	return updateReminder(cmd, args[0], model.ReminderPatch{
		Content: ptrIfChanged(cmd, "content", strings.TrimSpace(reminderContent)),
		DueAt:   ptrIfChanged(cmd, "due", strings.TrimSpace(reminderDue)),
		Done:    ptrIfChanged(cmd, "done", reminderDone),
	})
}

func runRemindersDone(cmd *cobra.Command, args []string) error {
	done := true
	return updateReminder(cmd, args[0], model.ReminderPatch{Done: &done})
}

func updateReminder(cmd *cobra.Command, id string, patch model.ReminderPatch) error {
	ctx := cmd.Context()
	defer a.wait()
	if _, err := loadScoped(ctx, a.reminders, tripID); err != nil {
		return err
	}

	updated, err := a.reminders.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), updated)
	}
	reportMutation(cmd, "Updated", "reminder", updated.ID(), a.reminders.Snapshot().UsingMock)
	return nil
}

func runRemindersDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer a.wait()
	if _, err := loadScoped(ctx, a.reminders, tripID); err != nil {
		return err
	}
	if err := a.reminders.Delete(ctx, args[0]); err != nil {
		return err
	}
	reportMutation(cmd, "Deleted", "reminder", args[0], a.reminders.Snapshot().UsingMock)
	return nil
}
