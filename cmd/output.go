package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-trip-planner/internal/model"
	"github.com/Tiliavir/trivial-trip-planner/internal/store"
)

var (
	headerStyle = color.New(color.Bold, color.Underline)
	faintStyle  = color.New(color.Faint)
	warnStyle   = color.New(color.FgHiYellow)
	okStyle     = color.New(color.FgGreen)
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}

// newTable returns a table with the given bold header row.
func newTable(headers ...any) *uitable.Table {
	tbl := uitable.New()
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = headerStyle.Sprint(h)
	}
	tbl.AddRow(row...)
	return tbl
}

// markers renders the transient flags of an entity.
func markers(m model.Meta) string {
	var parts []string
	if m.Optimistic {
		parts = append(parts, "saving")
	}
	if m.Ref.IsPending() {
		parts = append(parts, "unsynced")
	}
	if m.Mock {
		parts = append(parts, "sample")
	}
	if len(parts) == 0 {
		return ""
	}
	return faintStyle.Sprint("(" + strings.Join(parts, ", ") + ")")
}

// reportSnapshot warns on stderr when a list came from sample data.
func reportSnapshot[T model.Entity[T]](cmd *cobra.Command, kind string, snap store.Snapshot[T]) {
	w := cmd.ErrOrStderr()
	switch {
	case snap.Err != nil:
		fmt.Fprintln(w, warnStyle.Sprintf("Backend unreachable, showing sample %s: %v", kind, snap.Err))
	case snap.UsingMock:
		fmt.Fprintln(w, faintStyle.Sprintf("Backend calls disabled, showing sample %s.", kind))
	}
	if snap.HasMore() {
		next := snap.Pagination.Offset + snap.Pagination.Limit
		fmt.Fprintln(w, faintStyle.Sprintf("More %s available: --offset %d", kind, next))
	}
}

// reportMutation prints the outcome of a create, update or delete.
func reportMutation(cmd *cobra.Command, verb, kind, id string, mocked bool) {
	msg := fmt.Sprintf("%s %s %s", verb, kind, id)
	if mocked {
		msg += faintStyle.Sprint(" (local only, backend calls disabled)")
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Sprint("✓ ")+msg)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "–"
	}
	return s
}

func ptrIfChanged[T any](cmd *cobra.Command, name string, v T) *T {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

// splitList parses a comma separated flag, dropping blanks.
func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
