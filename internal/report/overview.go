package report

import (
	"fmt"
	"html/template"
	"io"
	"sort"
)

// IndexFilename is the overview index written at the output root.
const IndexFilename = "index.html"

// Entry is one processed file's contribution to the overview index.
type Entry struct {
	// RelPath is the source path relative to the repository root.
	RelPath string

	// Href links to the file's rendered report, relative to the index.
	Href string

	// Language is the detected language label, possibly empty.
	Language string

	// Total is the file's summed per-line edit count.
	Total int
}

// Overview accumulates entries for the files processed in one run and emits
// the ranked index. It is append-only and rebuilt from scratch every run:
// files skipped via skip-existing keep their on-disk reports but are absent
// from a fresh run's index.
type Overview struct {
	head    string
	entries []Entry
}

// NewOverview creates an empty overview. head labels the analyzed commit and
// may be empty.
func NewOverview(head string) *Overview {
	return &Overview{head: head}
}

// Record appends an entry. Call only after the file's report write succeeded.
func (o *Overview) Record(entry Entry) {
	o.entries = append(o.entries, entry)
}

// Len returns the number of recorded entries.
func (o *Overview) Len() int {
	return len(o.entries)
}

// Ranked returns the entries sorted by descending total edit count. Ties
// keep their original recording order.
func (o *Overview) Ranked() []Entry {
	ranked := make([]Entry, len(o.entries))
	copy(ranked, o.entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})

	return ranked
}

// indexEntryData is one rendered table row of the index.
type indexEntryData struct {
	Rank     int
	RelPath  string
	Href     string
	Language string
	Total    int
}

// indexPageData is the index.html template payload.
type indexPageData struct {
	FileTotal int
	Head      string
	Chart     template.HTML
	Entries   []indexEntryData
}

// Render writes the complete overview index document: a bar chart of the
// most-edited files and a ranked table linking every report.
func (o *Overview) Render(w io.Writer) error {
	ranked := o.Ranked()

	chart, err := renderTopFilesChart(ranked)
	if err != nil {
		return fmt.Errorf("render overview chart: %w", err)
	}

	entries := make([]indexEntryData, len(ranked))
	for i, e := range ranked {
		entries[i] = indexEntryData{
			Rank:     i + 1,
			RelPath:  e.RelPath,
			Href:     e.Href,
			Language: e.Language,
			Total:    e.Total,
		}
	}

	html, renderErr := renderTemplate("index.html", indexPageData{
		FileTotal: len(ranked),
		Head:      o.head,
		Chart:     chart,
		Entries:   entries,
	})
	if renderErr != nil {
		return fmt.Errorf("render overview: %w", renderErr)
	}

	_, err = io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("write overview: %w", err)
	}

	return nil
}
