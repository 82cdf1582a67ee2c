package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-light-transport/pkg/mlt"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/olekukonko/tablewriter"
)

// formatDiagnostics renders the summary table, followed by the per-strategy table for MLT renders
func formatDiagnostics(diag *renderer.Diagnostics) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Renderer", "Workers", "Iterations", "Splats", "Normalization", "Render time", "Splats/s"})
	table.Append([]string{
		diag.Renderer,
		fmt.Sprintf("%d", diag.NumWorkers),
		fmt.Sprintf("%d", diag.Iterations),
		fmt.Sprintf("%d", diag.Splats),
		fmt.Sprintf("%.10f", diag.Normalization),
		diag.Elapsed.String(),
		fmt.Sprintf("%.0f", diag.SplatsPerSecond()),
	})
	table.Render()

	if diag.Chains.Mutations == 0 {
		return buf.String()
	}

	buf.WriteString("\n")
	table = tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Strategy", "Proposed", "Failed", "Accepted", "% accepted"})
	for i := 0; i < mlt.NumStrategies; i++ {
		table.Append([]string{
			mlt.Strategy(i).String(),
			fmt.Sprintf("%d", diag.Chains.Proposed[i]),
			fmt.Sprintf("%d", diag.Chains.Failed[i]),
			fmt.Sprintf("%d", diag.Chains.Accepted[i]),
			fmt.Sprintf("%02.1f %%", percent(diag.Chains.Accepted[i], diag.Chains.Proposed[i])),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", diag.Chains.Mutations),
		fmt.Sprintf("longest rejection run %d", diag.Chains.LongestRejection),
		fmt.Sprintf("%d", diag.Chains.Mutations-diag.Chains.Rejections),
		fmt.Sprintf("%02.1f %%", 100*diag.Chains.AcceptanceRate()),
	})
	table.Render()
	return buf.String()
}

func percent(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
