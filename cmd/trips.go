package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-trip-planner/internal/model"
)

var (
	tripName  string
	tripDates string
	tripStart string
	tripEnd   string
	tripDest  string
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "List and manage trips",
}

var tripsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trips",
	Args:  cobra.NoArgs,
	RunE:  runTripsList,
}

var tripsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripsShow,
}

var tripsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a trip",
	Args:  cobra.NoArgs,
	RunE:  runTripsCreate,
}

var tripsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a trip; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripsUpdate,
}

var tripsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runTripsDelete,
}

func init() {
	for _, c := range []*cobra.Command{tripsCreateCmd, tripsUpdateCmd} {
		c.Flags().StringVar(&tripName, "name", "", "Trip name")
		c.Flags().StringVar(&tripDates, "date-range", "", `Display date range, e.g. "Apr 12–20, 2026"`)
		c.Flags().StringVar(&tripStart, "start", "", "Start date (YYYY-MM-DD)")
		c.Flags().StringVar(&tripEnd, "end", "", "End date (YYYY-MM-DD)")
		c.Flags().StringVar(&tripDest, "dest", "", "Comma separated destinations")
	}
	tripsCmd.AddCommand(tripsListCmd, tripsShowCmd, tripsCreateCmd, tripsUpdateCmd, tripsDeleteCmd)
}

func runTripsList(cmd *cobra.Command, args []string) error {
	snap := a.trips.Reload(cmd.Context())
	reportSnapshot(cmd, "trips", snap)
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), snap.Items)
	}
	printTrips(cmd, snap.Items)
	return nil
}

func printTrips(cmd *cobra.Command, trips []model.Trip) {
	if len(trips) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No trips found.")
		return
	}
	tbl := newTable("ID", "NAME", "DATES", "DESTINATIONS", "")
	for _, t := range trips {
		tbl.AddRow(t.ID(), t.Name, orDash(t.DateRange), orDash(strings.Join(t.Destinations, ", ")), markers(t.Meta))
	}
	fmt.Fprintln(cmd.OutOrStdout(), tbl)
}

func runTripsShow(cmd *cobra.Command, args []string) error {
	t, err := a.findTrip(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), t)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, headerStyle.Sprint(t.Name), markers(t.Meta))
	fmt.Fprintf(w, "  ID:           %s\n", t.ID())
	fmt.Fprintf(w, "  Dates:        %s\n", orDash(t.DateRange))
	if t.StartDate != "" || t.EndDate != "" {
		fmt.Fprintf(w, "  From / to:    %s / %s\n", orDash(t.StartDate), orDash(t.EndDate))
	}
	fmt.Fprintf(w, "  Destinations: %s\n", orDash(strings.Join(t.Destinations, ", ")))
	return nil
}

func runTripsCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer a.wait()
	a.trips.Reload(ctx)

	draft := model.Trip{
		Name:      tripName,
		DateRange: tripDates,
		StartDate: tripStart,
		EndDate:   tripEnd,
	}
	if cmd.Flags().Changed("dest") {
		draft.Destinations = splitList(tripDest)
	}
	created, err := a.trips.Create(ctx, draft)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), created)
	}
	reportMutation(cmd, "Created", "trip", fmt.Sprintf("%s (%s)", created.Name, created.ID()), created.Mock)
	return nil
}

func runTripsUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer a.wait()
	a.trips.Reload(ctx)

	patch := model.TripPatch{
		Name:      ptrIfChanged(cmd, "name", tripName),
		DateRange: ptrIfChanged(cmd, "date-range", tripDates),
		StartDate: ptrIfChanged(cmd, "start", tripStart),
		EndDate:   ptrIfChanged(cmd, "end", tripEnd),
	}
	if cmd.Flags().Changed("dest") {
		patch.Destinations = splitList(tripDest)
	}
	updated, err := a.trips.Update(ctx, args[0], patch)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), updated)
	}
	reportMutation(cmd, "Updated", "trip", updated.ID(), a.trips.Snapshot().UsingMock)
	return nil
}

func runTripsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	defer a.wait()
	a.trips.Reload(ctx)
	if err := a.trips.Delete(ctx, args[0]); err != nil {
		return err
	}
	reportMutation(cmd, "Deleted", "trip", args[0], a.trips.Snapshot().UsingMock)
	return nil
}
