package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-trip-planner/internal/calendar"
	"github.com/Tiliavir/trivial-trip-planner/internal/model"
	"github.com/Tiliavir/trivial-trip-planner/internal/store"
	"github.com/Tiliavir/trivial-trip-planner/internal/timecalc"
)

// calendarPageLimit is the page size used when projecting a trip onto days.
const calendarPageLimit = 100

var (
	calendarMonth string
	calendarDay   string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month calendar of a trip's itinerary, notes and reminders",
	Args:  cobra.NoArgs,
	RunE:  runCalendar,
}

func init() {
	for _, c := range []*cobra.Command{calendarCmd, exportCmd} {
		c.Flags().StringVar(&tripID, "trip", "", "Trip id")
	}
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month to show (YYYY-MM, default current month)")
	calendarCmd.Flags().StringVar(&calendarDay, "day", "", "Also list everything on this day (YYYY-MM-DD)")
}

// tripDays is a trip projected onto calendar days.
type tripDays struct {
	Trip      model.Trip            `json:"trip"`
	Itinerary []model.ItineraryItem `json:"itinerary"`
	Notes     []model.Note          `json:"notes"`
	Reminders []model.Reminder      `json:"reminders"`
	Buckets   calendar.Buckets      `json:"days"`
	Context   calendar.Context      `json:"-"`
}

func loadAll[T model.Entity[T], P any](ctx context.Context, s *store.Store[T, P], tripID string) []T {
	return s.SetScopePage(ctx, tripID, store.Pagination{Limit: calendarPageLimit}).Items
}

// projectTrip loads the three per-trip collections and buckets them by day.
func (a *app) projectTrip(ctx context.Context, id string) (tripDays, error) {
	trip, err := a.findTrip(ctx, id)
	if err != nil {
		return tripDays{}, err
	}
	d := tripDays{
		Trip:      trip,
		Itinerary: loadAll(ctx, a.itinerary, trip.ID()),
		Notes:     loadAll(ctx, a.notes, trip.ID()),
		Reminders: loadAll(ctx, a.reminders, trip.ID()),
		Context:   calendar.ContextFor(trip, a.loc),
	}
	d.Buckets = calendar.Project(d.Context, d.Itinerary, d.Notes, d.Reminders)
	return d, nil
}

type calendarView struct {
	Trip     model.Trip                 `json:"trip"`
	Month    string                     `json:"month"`
	Label    string                     `json:"label"`
	Cells    []calendar.Cell            `json:"cells"`
	Counts   map[string]calendar.Counts `json:"counts"`
	Day      string                     `json:"day,omitempty"`
	Selected *calendar.Bucket           `json:"selected,omitempty"`
}

func runCalendar(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	now := a.now().In(a.loc)

	month := timecalc.CurrentMonthKey(now)
	if calendarMonth != "" {
		m, ok := timecalc.ParseMonthKey(calendarMonth)
		if !ok {
			return fmt.Errorf("invalid --month %q, want YYYY-MM", calendarMonth)
		}
		month = m
	}
	if calendarDay != "" {
		if _, ok := timecalc.ParseDateKey(calendarDay, a.loc); !ok {
			return fmt.Errorf("invalid --day %q, want YYYY-MM-DD", calendarDay)
		}
	}

	days, err := a.projectTrip(ctx, tripID)
	if err != nil {
		return err
	}
	cells, err := calendar.BuildMonthGrid(month, now)
	if err != nil {
		return err
	}
	first, _ := timecalc.ParseDateKey(month+"-01", a.loc)

	view := calendarView{
		Trip:   days.Trip,
		Month:  month,
		Label:  timecalc.MonthOf(first).Label,
		Cells:  cells,
		Counts: days.Buckets.CountsByDate(),
		Day:    calendarDay,
	}
	if calendarDay != "" {
		b := days.Buckets.Day(calendarDay)
		view.Selected = &b
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), view)
	}
	w := cmd.OutOrStdout()
	printMonthGrid(w, view)
	prev, _ := timecalc.AddMonths(month, -1)
	next, _ := timecalc.AddMonths(month, 1)
	fmt.Fprintln(w, faintStyle.Sprintf("Previous: --month %s  Next: --month %s", prev, next))
	printDaySummary(w, view)
	if view.Selected != nil {
		printDayDetails(w, view.Day, *view.Selected)
	}
	return nil
}

func printMonthGrid(w io.Writer, v calendarView) {
	title := fmt.Sprintf("%s – %s", v.Trip.Name, v.Label)
	fmt.Fprintln(w, headerStyle.Sprint(title))
	fmt.Fprintln(w, faintStyle.Sprint(" Mo  Tu  We  Th  Fr  Sa  Su"))

	busy := color.New(color.Bold)
	today := color.New(color.Bold, color.Underline)

	var line strings.Builder
	for i, c := range v.Cells {
		mark := " "
		if v.Counts[c.DateKey].Total() > 0 {
			mark = "•"
		}
		cell := fmt.Sprintf("%3d", c.Day)
		switch {
		case c.IsToday:
			cell = today.Sprint(cell)
		case !c.InMonth:
			cell = faintStyle.Sprint(cell)
		case mark != " ":
			cell = busy.Sprint(cell)
		}
		line.WriteString(cell + mark)
		if i%7 == 6 {
			fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
}

func printDaySummary(w io.Writer, v calendarView) {
	tbl := newTable("DAY", "ITINERARY", "NOTES", "REMINDERS")
	rows := 0
	for _, c := range v.Cells {
		n, ok := v.Counts[c.DateKey]
		if !c.InMonth || !ok || n.Total() == 0 {
			continue
		}
		tbl.AddRow(timecalc.FormatDateKeyHuman(c.DateKey), n.Itinerary, n.Notes, n.Reminders)
		rows++
	}
	fmt.Fprintln(w)
	if rows == 0 {
		fmt.Fprintln(w, "No dated items this month.")
		return
	}
	fmt.Fprintln(w, tbl)
}

func printDayDetails(w io.Writer, key string, b calendar.Bucket) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Sprint(timecalc.FormatDateKeyHuman(key)))
	if len(b.Itinerary)+len(b.Notes)+len(b.Reminders) == 0 {
		fmt.Fprintln(w, "No dated items for this day yet.")
		return
	}
	for _, it := range b.Itinerary {
		when := itemWhen(it)
		if when != "" {
			when = " • " + when
		}
		fmt.Fprintf(w, "  itinerary  %s%s\n", it.Title, when)
	}
	for _, n := range b.Notes {
		fmt.Fprintf(w, "  note       %s\n", n.Content)
	}
	for _, r := range b.Reminders {
		fmt.Fprintf(w, "  reminder   %s %s\n", checkbox(r.Done), r.Content)
	}
}
