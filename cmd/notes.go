package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-trip-planner/internal/model"
)

var noteContent string

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List and manage the notes of a trip",
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Args:  cobra.NoArgs,
	RunE:  runNotesList,
}

var notesCreateCmd = &cobra.Command{
	Use:   "create [text]",
	Short: "Add a note",
	RunE:  runNotesCreate,
}

var notesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace the text of a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesUpdate,
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesDelete,
}

func init() {
	for _, c := range []*cobra.Command{notesCreateCmd, notesUpdateCmd} {
		c.Flags().StringVar(&noteContent, "content", "", "Note text")
	}
	notesCmd.AddCommand(notesListCmd, notesCreateCmd, notesUpdateCmd, notesDeleteCmd)
}

func runNotesList(cmd *cobra.Command, args []string) error {
	snap, err := loadScoped(cmd.Context(), a.notes, tripID)
	if err != nil {
		return err
	}
	reportSnapshot(cmd, "notes", snap)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), snap.Items)
	}
	if len(snap.Items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No notes.")
		return nil
	}
	tbl := newTable("ID", "NOTE", "CREATED", "")
	for _, n := range snap.Items {
		tbl.AddRow(n.ID(), n.Content, orDash(n.CreatedAt), markers(n.Meta))
	}
	fmt.Fprintln(cmd.OutOrStdout(), tbl)
	return nil
}

// contentArg takes the text from --content or the positional arguments.
func contentArg(cmd *cobra.Command, args []string, flag, value string) string {
	if cmd.Flags().Changed(flag) {
		return value
	}
	return strings.Join(args, " ")
}

func runNotesCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer a.wait()
	if _, err := loadScoped(ctx, a.notes, tripID); err != nil {
		return err
	}

	created, err := a.notes.Create(ctx, model.Note{Content: contentArg(cmd, args, "content", noteContent)})
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), created)
	}
	reportMutation(cmd, "Created", "note", created.ID(), created.Mock)
	return nil
}

func runNotesUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer a.wait()
	if _, err := loadScoped(ctx, a.notes, tripID); err != nil {
		return err
	}

	updated, err := a.notes.Update(ctx, args[0], model.NotePatch{
		Content: ptrIfChanged(cmd, "content", strings.TrimSpace(noteContent)),
	})
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), updated)
	}
	reportMutation(cmd, "Updated", "note", updated.ID(), a.notes.Snapshot().UsingMock)
	return nil
}

func runNotesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer a.wait()
	if _, err := loadScoped(ctx, a.notes, tripID); err != nil {
		return err
	}
	if err := a.notes.Delete(ctx, args[0]); err != nil {
		return err
	}
	reportMutation(cmd, "Deleted", "note", args[0], a.notes.Snapshot().UsingMock)
	return nil
}
