package discover

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

// sniffLen is how many leading bytes are inspected for binary detection and
// language classification.
const sniffLen = 8 * 1024

// Walker enumerates regular, non-binary files under a repository root in
// deterministic walk order.
type Walker struct {
	// Root is the repository work tree root.
	Root string

	// ReportSuffix excludes previously generated reports (e.g. ".html")
	// when they live inside the tree being walked. Empty disables the check.
	ReportSuffix string

	// MaxFileSize skips files larger than this many bytes. Zero means no limit.
	MaxFileSize uint64

	// SkipVendor excludes paths enry classifies as vendored.
	SkipVendor bool
}

// Walk returns every candidate SourceFile under the root. The .git directory
// and dot-directories are never descended into.
func (w *Walker) Walk() ([]*SourceFile, error) {
	var files []*SourceFile

	err := filepath.WalkDir(w.Root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if entry.IsDir() {
			if path != w.Root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(w.Root, path)
		if relErr != nil {
			return fmt.Errorf("relativize %s: %w", path, relErr)
		}

		rel = filepath.ToSlash(rel)

		sf, keep, classifyErr := w.classify(path, rel, entry)
		if classifyErr != nil {
			return classifyErr
		}

		if keep {
			files = append(files, sf)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", w.Root, err)
	}

	return files, nil
}

// classify decides whether a regular file is an analyzable text file and, if
// so, attaches its language label.
func (w *Walker) classify(path, rel string, entry fs.DirEntry) (*SourceFile, bool, error) {
	if strings.HasPrefix(filepath.Base(rel), ".") {
		return nil, false, nil
	}

	if w.ReportSuffix != "" && strings.HasSuffix(rel, w.ReportSuffix) {
		return nil, false, nil
	}

	if w.SkipVendor && enry.IsVendor(rel) {
		return nil, false, nil
	}

	if w.MaxFileSize > 0 {
		info, err := entry.Info()
		if err != nil {
			return nil, false, fmt.Errorf("stat %s: %w", path, err)
		}

		if uint64(info.Size()) > w.MaxFileSize {
			return nil, false, nil
		}
	}

	head, err := sniff(path)
	if err != nil {
		return nil, false, err
	}

	if enry.IsBinary(head) {
		return nil, false, nil
	}

	return &SourceFile{
		AbsPath:  path,
		RelPath:  rel,
		Language: enry.GetLanguage(filepath.Base(rel), head),
	}, true, nil
}

// sniff reads up to sniffLen leading bytes of the file.
func sniff(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, sniffLen)

	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return buf[:n], nil
}
