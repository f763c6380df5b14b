// Package discover enumerates the analyzable text files of a git work tree.
package discover

import (
	"fmt"
	"os"
	"strings"
)

// SourceFile is a single candidate file found by the Walker. Line content is
// not held here: ReadLines materializes a line-indexed view from disk so the
// content lives only for the duration of that file's processing.
type SourceFile struct {
	// AbsPath is the absolute on-disk path.
	AbsPath string

	// RelPath is the path relative to the repository root, using forward
	// slashes. Report paths and history queries are keyed by it.
	RelPath string

	// Language is the enry language label, empty when undetected.
	Language string
}

// ReadLines reads the file and returns its lines in order. A trailing
// newline does not produce a final empty line.
func (f *SourceFile) ReadLines() ([]string, error) {
	data, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	if text == "" {
		return nil, nil
	}

	return strings.Split(text, "\n"), nil
}
