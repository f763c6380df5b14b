package pipeline

// Summary aggregates what one run did. It feeds the terminal summary table
// and the yaml summary output.
type Summary struct {
	// Processed counts files rendered and written this run.
	Processed int `yaml:"processed"`

	// SkippedExisting counts files skipped because their report existed.
	SkippedExisting int `yaml:"skipped_existing"`

	// SkippedMaxLines counts files skipped by the max-lines guard.
	SkippedMaxLines int `yaml:"skipped_max_lines"`

	// LinesQueried is the number of history queries issued.
	LinesQueried int `yaml:"lines_queried"`

	// TotalEdits sums every processed file's edit count.
	TotalEdits int `yaml:"total_edits"`

	// TopFile is the most-edited file of the run, empty when none.
	TopFile string `yaml:"top_file,omitempty"`

	// TopFileEdits is TopFile's total edit count.
	TopFileEdits int `yaml:"top_file_edits,omitempty"`
}
