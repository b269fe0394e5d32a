package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/lanscout/internal/scan"
)

// PrintTable renders the per-host summary table to w, followed by the
// headline statistics.
func PrintTable(w io.Writer, result *scan.Result, detailMaxLen int) {
	table := tablewriter.NewWriter(w)
	table.Header("IP Address", "MAC Address", "Hostname", "Open Ports & Services")

	for _, rec := range result.SortedHosts() {
		_ = table.Append([]string{
			rec.Addr.String(),
			rec.MAC,
			rec.Hostname,
			formatPorts(rec, detailMaxLen),
		})
	}
	_ = table.Render()

	stats := ComputeStats(result)
	fmt.Fprintf(w, "\n%d active hosts, %d open ports", stats.ActiveHosts, stats.TotalOpenPorts)
	if stats.MostCommon != "" {
		fmt.Fprintf(w, ", most common service: %s", stats.MostCommon)
	}
	fmt.Fprintln(w)
	if result.Partial {
		fmt.Fprintln(w, "Scan was cancelled before completion; results are partial.")
	}
}
