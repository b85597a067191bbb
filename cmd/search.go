package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-trip-planner/internal/sample"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search destinations",
	Long:  "Search the built-in destination catalogue by name, country or summary.",
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	results := sample.SearchDestinations(query)
	if results == nil {
		results = []sample.Destination{}
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), results)
	}

	w := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(w, "No destinations match %q.\n", query)
		return nil
	}
	tbl := newTable("ID", "DESTINATION", "COUNTRY", "SUMMARY")
	for _, d := range results {
		tbl.AddRow(d.ID, d.Name, d.Country, d.Summary)
	}
	fmt.Fprintln(w, tbl)
	return nil
}
