package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/codeheat/internal/config"
	"github.com/Sumatoshi-tech/codeheat/internal/pipeline"
)

// printSummary writes the end-of-run summary in the requested format.
func printSummary(w io.Writer, format string, summary *pipeline.Summary) error {
	if format == config.SummaryFormatYAML {
		return printYAMLSummary(w, summary)
	}

	return printTableSummary(w, summary)
}

func printYAMLSummary(w io.Writer, summary *pipeline.Summary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

func printTableSummary(w io.Writer, summary *pipeline.Summary) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendRow(table.Row{"Files processed", humanize.Comma(int64(summary.Processed))})
	t.AppendRow(table.Row{"Skipped (existing report)", humanize.Comma(int64(summary.SkippedExisting))})
	t.AppendRow(table.Row{"Skipped (max lines)", humanize.Comma(int64(summary.SkippedMaxLines))})
	t.AppendRow(table.Row{"History queries", humanize.Comma(int64(summary.LinesQueried))})
	t.AppendRow(table.Row{"Total edits", humanize.Comma(int64(summary.TotalEdits))})

	if summary.TopFile != "" {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Most edited file", fmt.Sprintf("%s (%s)",
			summary.TopFile, humanize.Comma(int64(summary.TopFileEdits)))})
	}

	t.Render()

	return nil
}
