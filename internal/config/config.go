// Package config loads codeheat settings from file, environment, and defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// Default configuration values.
const (
	DefaultSkipExisting  = true
	DefaultMaxLines      = 0
	DefaultWorkers       = 0
	DefaultReportSuffix  = ".html"
	DefaultSkipVendor    = true
	DefaultSummaryFormat = "table"
)

// Summary output formats.
const (
	SummaryFormatTable = "table"
	SummaryFormatYAML  = "yaml"
)

// Validation errors.
var (
	ErrNegativeMaxLines     = errors.New("max_lines must not be negative")
	ErrNegativeWorkers      = errors.New("workers must not be negative")
	ErrInvalidSummaryFormat = errors.New("summary_format must be table or yaml")
	ErrInvalidMaxFileSize   = errors.New("invalid max_file_size")
	ErrInvalidReportSuffix  = errors.New("report_suffix must start with a dot and contain no separators")
)

// Config holds all runtime settings.
type Config struct {
	// SkipExisting skips files whose report already exists.
	SkipExisting bool `mapstructure:"skip_existing"`

	// MaxLines skips files with more lines than this. Zero disables the guard.
	MaxLines int `mapstructure:"max_lines"`

	// MaxFileSize excludes files above this size from discovery, in
	// humanize form ("512KB", "2MB"). Empty disables the guard.
	MaxFileSize string `mapstructure:"max_file_size"`

	// Workers bounds concurrent per-line history queries. Zero uses the
	// CPU count.
	Workers int `mapstructure:"workers"`

	// ReportSuffix is appended to source names to form report names.
	ReportSuffix string `mapstructure:"report_suffix"`

	// SkipVendor excludes vendored paths from discovery.
	SkipVendor bool `mapstructure:"skip_vendor"`

	// SummaryFormat selects the terminal run summary: table or yaml.
	SummaryFormat string `mapstructure:"summary_format"`
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.MaxLines < 0 {
		return ErrNegativeMaxLines
	}

	if c.Workers < 0 {
		return ErrNegativeWorkers
	}

	if c.SummaryFormat != SummaryFormatTable && c.SummaryFormat != SummaryFormatYAML {
		return ErrInvalidSummaryFormat
	}

	err := validateSuffix(c.ReportSuffix)
	if err != nil {
		return err
	}

	_, err = c.MaxFileSizeBytes()

	return err
}

// MaxFileSizeBytes parses MaxFileSize into bytes. Empty means no limit.
func (c *Config) MaxFileSizeBytes() (uint64, error) {
	if c.MaxFileSize == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(c.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, c.MaxFileSize)
	}

	return size, nil
}

func validateSuffix(suffix string) error {
	if suffix == "" || suffix[0] != '.' {
		return ErrInvalidReportSuffix
	}

	for _, r := range suffix {
		if r == '/' || r == '\\' {
			return ErrInvalidReportSuffix
		}
	}

	return nil
}
