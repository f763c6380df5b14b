// Package output maps source paths into the mirrored report tree and owns
// all report writes.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sumatoshi-tech/codeheat/internal/report"
)

// DefaultReportSuffix is appended to a source file's name to form its
// report's name.
const DefaultReportSuffix = ".html"

const dirPerm = 0o755

// Manager computes mirrored output paths and persists rendered documents.
type Manager struct {
	// OutDir is the output root. Created if absent.
	OutDir string

	// ReportSuffix is appended to source names; empty means DefaultReportSuffix.
	ReportSuffix string

	// SkipExisting makes reruns idempotent: files whose report already
	// exists are not reprocessed.
	SkipExisting bool
}

// Suffix returns the effective report suffix.
func (m *Manager) Suffix() string {
	if m.ReportSuffix == "" {
		return DefaultReportSuffix
	}

	return m.ReportSuffix
}

// EnsureOutDir creates the output root if it does not exist yet.
func (m *Manager) EnsureOutDir() error {
	err := os.MkdirAll(m.OutDir, dirPerm)
	if err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	return nil
}

// ReportPath returns the on-disk report path for a root-relative source
// path, mirroring the source directory structure under the output root.
func (m *Manager) ReportPath(relPath string) string {
	return filepath.Join(m.OutDir, filepath.FromSlash(relPath)) + m.Suffix()
}

// ReportHref returns the report link relative to the overview index.
func (m *Manager) ReportHref(relPath string) string {
	return relPath + m.Suffix()
}

// IndexPath returns the on-disk path of the overview index.
func (m *Manager) IndexPath() string {
	return filepath.Join(m.OutDir, report.IndexFilename)
}

// ShouldSkipExisting reports whether the file's report already exists and
// the skip-existing policy is active.
func (m *Manager) ShouldSkipExisting(relPath string) bool {
	if !m.SkipExisting {
		return false
	}

	_, err := os.Stat(m.ReportPath(relPath))

	return err == nil
}

// Write persists a complete document at path, creating the mirrored
// directory first. Directory creation is idempotent; a write failure is
// fatal for the run since partial reports are unacceptable output.
func (m *Manager) Write(path string, doc []byte) error {
	err := os.MkdirAll(filepath.Dir(path), dirPerm)
	if err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	err = os.WriteFile(path, doc, 0o644)
	if err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}
