package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sumatoshi-tech/codeheat/internal/heatmap"
	"github.com/Sumatoshi-tech/codeheat/internal/history"
)

// ErrLineCountMismatch indicates the line contents and edit records disagree
// in length; rendering would drop or invent rows.
var ErrLineCountMismatch = errors.New("line contents and edit records differ in length")

// FilePage holds everything needed to render one file's heat-map page.
type FilePage struct {
	RelPath  string
	Language string
	Lines    []string
	Counts   []history.LineCount
	Scale    heatmap.Scale
}

// FileReport is a rendered page plus the file's total edit count. The total
// feeds the overview ranking only.
type FileReport struct {
	HTML  []byte
	Total int
}

// fileRow is one rendered table row.
type fileRow struct {
	Number    int
	Commits   int
	Content   string
	Intensity float64
}

// filePageData is the file.html template payload.
type filePageData struct {
	RelPath   string
	Language  string
	Total     int
	LineTotal int
	Min       int
	Max       int
	IndexHref string
	Rows      []fileRow
}

// Render writes the file's complete HTML document. Exactly one row is
// emitted per source line, in line order; content is escaped by the
// template, and each row's background alpha is the line's intensity.
func (p FilePage) Render(w io.Writer) error {
	if len(p.Lines) != len(p.Counts) {
		return fmt.Errorf("%w: %d lines, %d records", ErrLineCountMismatch, len(p.Lines), len(p.Counts))
	}

	rows := make([]fileRow, len(p.Lines))
	for i, line := range p.Lines {
		rows[i] = fileRow{
			Number:    p.Counts[i].Line,
			Commits:   p.Counts[i].Commits,
			Content:   line,
			Intensity: p.Scale.Intensity(p.Counts[i].Commits),
		}
	}

	html, err := renderTemplate("file.html", filePageData{
		RelPath:   p.RelPath,
		Language:  p.Language,
		Total:     history.Total(p.Counts),
		LineTotal: len(p.Lines),
		Min:       p.Scale.Min(),
		Max:       p.Scale.Max(),
		IndexHref: indexHref(p.RelPath),
		Rows:      rows,
	})
	if err != nil {
		return fmt.Errorf("render file page: %w", err)
	}

	_, err = io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("write file page: %w", err)
	}

	return nil
}

// Build renders the page into a FileReport.
func (p FilePage) Build() (*FileReport, error) {
	var buf bytes.Buffer

	err := p.Render(&buf)
	if err != nil {
		return nil, err
	}

	return &FileReport{HTML: buf.Bytes(), Total: history.Total(p.Counts)}, nil
}

// indexHref computes the relative link from a file's report back to the
// overview index at the output root.
func indexHref(relPath string) string {
	depth := strings.Count(relPath, "/")

	return strings.Repeat("../", depth) + IndexFilename
}
