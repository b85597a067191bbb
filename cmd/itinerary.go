package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-trip-planner/internal/model"
)

var (
	tripID string

	itemTitle    string
	itemDay      string
	itemTime     string
	itemNotes    string
	itemStart    string
	itemEnd      string
	itemLocation string
)

var itineraryCmd = &cobra.Command{
	Use:   "itinerary",
	Short: "List and manage the itinerary of a trip",
}

var itineraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List itinerary items",
	Args:  cobra.NoArgs,
	RunE:  runItineraryList,
}

var itineraryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add an itinerary item",
	Args:  cobra.NoArgs,
	RunE:  runItineraryCreate,
}

var itineraryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an itinerary item; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE:  runItineraryUpdate,
}

var itineraryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an itinerary item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItineraryDelete,
}

func init() {
	for _, c := range []*cobra.Command{itineraryCmd, notesCmd, remindersCmd} {
		c.PersistentFlags().StringVar(&tripID, "trip", "", "Trip id")
	}
	for _, c := range []*cobra.Command{itineraryCreateCmd, itineraryUpdateCmd} {
		c.Flags().StringVar(&itemTitle, "title", "", "Title")
		c.Flags().StringVar(&itemDay, "day", "", `Day number or label, e.g. 2 or "Day 2"`)
		c.Flags().StringVar(&itemTime, "time", "", "Time of day, e.g. 10:00")
		c.Flags().StringVar(&itemNotes, "notes", "", "Notes")
		c.Flags().StringVar(&itemStart, "start", "", "Start timestamp (RFC 3339 or YYYY-MM-DD HH:MM)")
		c.Flags().StringVar(&itemEnd, "end", "", "End timestamp")
		c.Flags().StringVar(&itemLocation, "location", "", "Location")
	}
	itineraryCmd.AddCommand(itineraryListCmd, itineraryCreateCmd, itineraryUpdateCmd, itineraryDeleteCmd)
}

func runItineraryList(cmd *cobra.Command, args []string) error {
	snap, err := loadScoped(cmd.Context(), a.itinerary, tripID)
	if err != nil {
		return err
	}
	reportSnapshot(cmd, "itinerary", snap)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), snap.Items)
	}
	printItinerary(cmd, snap.Items)
	return nil
}

func printItinerary(cmd *cobra.Command, items []model.ItineraryItem) {
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No itinerary items.")
		return
	}
	tbl := newTable("ID", "DAY", "TIME", "TITLE", "LOCATION", "")
	for _, it := range items {
		tbl.AddRow(it.ID(), orDash(it.Day), orDash(itemWhen(it)), it.Title, orDash(it.Location), markers(it.Meta))
	}
	fmt.Fprintln(cmd.OutOrStdout(), tbl)
}

// itemWhen prefers the explicit time, then the start timestamp.
func itemWhen(it model.ItineraryItem) string {
	if it.Time != "" {
		return it.Time
	}
	return it.StartAt
}

// parseDay splits a --day value into a numeric index and the label.
func parseDay(s string) (label string, number int) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return s, n
	}
	return s, 0
}

func runItineraryCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer a.wait()
	if _, err := loadScoped(ctx, a.itinerary, tripID); err != nil {
		return err
	}

	day, dayNumber := parseDay(itemDay)
	created, err := a.itinerary.Create(ctx, model.ItineraryItem{
		Title:     itemTitle,
		Day:       day,
		DayNumber: dayNumber,
		Time:      itemTime,
		Notes:     itemNotes,
		StartAt:   itemStart,
		EndAt:     itemEnd,
		Location:  itemLocation,
	})
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), created)
	}
	reportMutation(cmd, "Created", "itinerary item", fmt.Sprintf("%s (%s)", created.Title, created.ID()), created.Mock)
	return nil
}

func runItineraryUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer a.wait()
	if _, err := loadScoped(ctx, a.itinerary, tripID); err != nil {
		return err
	}

	patch := model.ItineraryPatch{
		Title:    ptrIfChanged(cmd, "title", itemTitle),
		Time:     ptrIfChanged(cmd, "time", itemTime),
		Notes:    ptrIfChanged(cmd, "notes", itemNotes),
		StartAt:  ptrIfChanged(cmd, "start", itemStart),
		EndAt:    ptrIfChanged(cmd, "end", itemEnd),
		Location: ptrIfChanged(cmd, "location", itemLocation),
	}
	if cmd.Flags().Changed("day") {
		day, dayNumber := parseDay(itemDay)
		patch.Day = &day
		if dayNumber > 0 {
			patch.DayNumber = &dayNumber
		}
	}
	updated, err := a.itinerary.Update(ctx, args[0], patch)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), updated)
	}
	reportMutation(cmd, "Updated", "itinerary item", updated.ID(), a.itinerary.Snapshot().UsingMock)
	return nil
}

func runItineraryDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer a.wait()
	if _, err := loadScoped(ctx, a.itinerary, tripID); err != nil {
		return err
	}
	if err := a.itinerary.Delete(ctx, args[0]); err != nil {
		return err
	}
	reportMutation(cmd, "Deleted", "itinerary item", args[0], a.itinerary.Snapshot().UsingMock)
	return nil
}
