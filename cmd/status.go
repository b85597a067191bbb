package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-trip-planner/internal/store"
)

var statusPing bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend configuration and connectivity",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusPing, "ping", false, "Reload trips to check the backend")
}

type statusReport struct {
	BaseURL        string         `json:"baseUrl"`
	BackendEnabled bool           `json:"backendEnabled"`
	FeatureFlags   map[string]any `json:"featureFlags"`
	LogLevel       string         `json:"logLevel"`
	Timezone       string         `json:"timezone"`
	Trips          *pingResult    `json:"trips,omitempty"`
}

type pingResult struct {
	Status    store.Status `json:"status"`
	UsingMock bool         `json:"usingMock"`
	Count     int          `json:"count"`
	Error     string       `json:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	r := statusReport{
		BaseURL:        a.gate.BaseURL(),
		BackendEnabled: a.gate.Enabled(),
		FeatureFlags:   a.cfg.FeatureFlags,
		LogLevel:       a.cfg.LogLevel,
		Timezone:       a.loc.String(),
	}
	if statusPing {
		snap := a.trips.Reload(cmd.Context())
		r.Trips = &pingResult{Status: snap.Status, UsingMock: snap.UsingMock, Count: len(snap.Items)}
		if snap.Err != nil {
			r.Trips.Error = snap.Err.Error()
		}
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), r)
	}

	w := cmd.OutOrStdout()
	backend := warnStyle.Sprint("disabled (sample data)")
	if r.BackendEnabled {
		backend = okStyle.Sprint("enabled")
	}
	fmt.Fprintf(w, "API:       %s\n", r.BaseURL)
	fmt.Fprintf(w, "Backend:   %s\n", backend)
	fmt.Fprintf(w, "Flags:     %s\n", orDash(formatFlags(r.FeatureFlags)))
	fmt.Fprintf(w, "Log level: %s\n", r.LogLevel)
	fmt.Fprintf(w, "Timezone:  %s\n", r.Timezone)
	if p := r.Trips; p != nil {
		line := fmt.Sprintf("%s, %d trips", p.Status, p.Count)
		if p.UsingMock {
			line += faintStyle.Sprint(" (sample)")
		}
		if p.Error != "" {
			line += warnStyle.Sprint(": " + p.Error)
		}
		fmt.Fprintf(w, "Trips:     %s\n", line)
	}
	return nil
}

// formatFlags renders flags as sorted name=value pairs.
func formatFlags(flags map[string]any) string {
	names := make([]string, 0, len(flags))
	for k := range flags {
		names = append(names, k)
	}
	slices.Sort(names)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", k, flags[k]))
	}
	return strings.Join(parts, ", ")
}
