package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"submatch/internal/matcher"
)

var header = []string{"Target", "Best Source", "Similarity"}

// WriteCSV emits match results as comma-separated rows with the fixed
// three-column header, in the order targets were processed.
func WriteCSV(w io.Writer, results []matcher.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, result := range results {
		row := []string{
			result.Target,
			result.Source,
			strconv.FormatFloat(result.Score, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderTable renders match results as a table for interactive terminals.
func RenderTable(results []matcher.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{header[0], header[1], header[2]})
	for _, result := range results {
		tw.AppendRow(table.Row{
			result.Target,
			result.Source,
			fmt.Sprintf("%.4f", result.Score),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
