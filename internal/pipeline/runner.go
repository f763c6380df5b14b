// Package pipeline orchestrates the per-file edit-frequency analysis run.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Sumatoshi-tech/codeheat/internal/discover"
	"github.com/Sumatoshi-tech/codeheat/internal/heatmap"
	"github.com/Sumatoshi-tech/codeheat/internal/history"
	"github.com/Sumatoshi-tech/codeheat/internal/output"
	"github.com/Sumatoshi-tech/codeheat/internal/report"
)

// Runner drives the pipeline for one run: skip checks, extraction,
// normalization, rendering, persistence, and overview aggregation. Files are
// processed one at a time; only line queries within a file run concurrently.
type Runner struct {
	// Extractor computes per-line edit counts.
	Extractor *history.Extractor

	// Output owns report paths and writes.
	Output *output.Manager

	// Overview collects ranked entries across files.
	Overview *report.Overview

	// MaxLines skips files with more lines than this. Zero disables the guard.
	MaxLines int

	// Warnf prints user-facing skip warnings. Nil disables them.
	Warnf func(format string, args ...any)

	// Logger receives verbose diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Run processes the discovered files in order and writes the overview index
// once all of them are done. A write failure aborts the run; the files
// already written stay valid on disk.
func (r *Runner) Run(ctx context.Context, files []*discover.SourceFile) (*Summary, error) {
	summary := &Summary{}

	for _, file := range files {
		err := r.processFile(ctx, file, summary)
		if err != nil {
			return nil, err
		}
	}

	err := r.writeIndex(summary)
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, file *discover.SourceFile, summary *Summary) error {
	if r.Output.ShouldSkipExisting(file.RelPath) {
		r.logger().DebugContext(ctx, "report exists, skipping", "file", file.RelPath)
		summary.SkippedExisting++

		return nil
	}

	// The line view is materialized here and dropped when this file's
	// processing ends.
	lines, err := file.ReadLines()
	if err != nil {
		return err
	}

	if r.MaxLines > 0 && len(lines) > r.MaxLines {
		r.warnf("skipping %s: %d lines exceed the configured maximum of %d",
			file.RelPath, len(lines), r.MaxLines)

		summary.SkippedMaxLines++

		return nil
	}

	r.logger().DebugContext(ctx, "analyzing", "file", file.RelPath, "lines", len(lines))

	counts, err := r.Extractor.FileCounts(ctx, file.RelPath, len(lines))
	if err != nil {
		return err
	}

	page := report.FilePage{
		RelPath:  file.RelPath,
		Language: file.Language,
		Lines:    lines,
		Counts:   counts,
		Scale:    heatmap.NewScale(history.Counts(counts)),
	}

	rendered, err := page.Build()
	if err != nil {
		return err
	}

	err = r.Output.Write(r.Output.ReportPath(file.RelPath), rendered.HTML)
	if err != nil {
		return err
	}

	// Recorded only after the write succeeded, so a failed file never
	// appears in the index.
	r.Overview.Record(report.Entry{
		RelPath:  file.RelPath,
		Href:     r.Output.ReportHref(file.RelPath),
		Language: file.Language,
		Total:    rendered.Total,
	})

	summary.Processed++
	summary.LinesQueried += len(lines)
	summary.TotalEdits += rendered.Total

	return nil
}

// writeIndex renders the overview and persists it at the output root.
func (r *Runner) writeIndex(summary *Summary) error {
	var buf bytes.Buffer

	err := r.Overview.Render(&buf)
	if err != nil {
		return fmt.Errorf("render index: %w", err)
	}

	err = r.Output.Write(r.Output.IndexPath(), buf.Bytes())
	if err != nil {
		return err
	}

	ranked := r.Overview.Ranked()
	if len(ranked) > 0 {
		summary.TopFile = ranked[0].RelPath
		summary.TopFileEdits = ranked[0].Total
	}

	return nil
}

func (r *Runner) warnf(format string, args ...any) {
	if r.Warnf != nil {
		r.Warnf(format, args...)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return r.Logger
}
