// Package commands implements CLI command handlers for codeheat.
package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codeheat/internal/config"
	"github.com/Sumatoshi-tech/codeheat/internal/discover"
	"github.com/Sumatoshi-tech/codeheat/internal/gitlib"
	"github.com/Sumatoshi-tech/codeheat/internal/history"
	"github.com/Sumatoshi-tech/codeheat/internal/output"
	"github.com/Sumatoshi-tech/codeheat/internal/pipeline"
	"github.com/Sumatoshi-tech/codeheat/internal/report"
)

// ErrMissingOutDir is returned when no output directory was given.
var ErrMissingOutDir = errors.New("output directory is required, use -o")

// RunCommand holds the configuration for the run command.
type RunCommand struct {
	outDir        string
	configPath    string
	skipExisting  bool
	maxLines      int
	maxFileSize   string
	workers       int
	summaryFormat string
	verbose       bool
	noColor       bool
}

// NewRunCommand creates and configures the run command.
func NewRunCommand() *cobra.Command {
	rc := &RunCommand{}

	cmd := &cobra.Command{
		Use:   "run [repository]",
		Short: "Analyze per-line edit frequency and write the HTML report tree",
		Long: `Walk the repository work tree, query git history for every line of every
text file, and write one heat-mapped HTML page per file plus a ranked
overview index.

The per-line history query spawns one git process per line, which makes
total line count the dominant cost of a run. Reruns with --skip-existing
(the default) only process files whose report is missing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringVarP(&rc.outDir, "out", "o", "", "Output directory for the report tree (required)")
	cmd.Flags().StringVar(&rc.configPath, "config", "", "Config file path (default: .codeheat.yaml in CWD or $HOME)")
	cmd.Flags().BoolVar(&rc.skipExisting, "skip-existing", config.DefaultSkipExisting, "Skip files whose report already exists")
	cmd.Flags().IntVar(&rc.maxLines, "max-lines", config.DefaultMaxLines, "Skip files with more lines than this (0 = no limit)")
	cmd.Flags().StringVar(&rc.maxFileSize, "max-file-size", "", "Skip files larger than this (e.g. '512KB'; empty = no limit)")
	cmd.Flags().IntVar(&rc.workers, "workers", config.DefaultWorkers, "Concurrent history queries per file (0 = CPU count)")
	cmd.Flags().StringVar(&rc.summaryFormat, "summary-format", config.DefaultSummaryFormat, "Run summary format: table, yaml")
	cmd.Flags().BoolVarP(&rc.verbose, "verbose", "v", false, "Verbose diagnostics")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	if rc.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	if rc.outDir == "" {
		return ErrMissingOutDir
	}

	cfg, err := rc.loadConfig(cmd)
	if err != nil {
		return err
	}

	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	repo, err := gitlib.OpenRepository(repoPath)
	if err != nil {
		return err
	}
	defer repo.Free()

	logger := rc.newLogger()

	return rc.execute(cmd, repo, cfg, logger)
}

// loadConfig loads the config file and applies explicit flag overrides.
func (rc *RunCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("skip-existing") {
		cfg.SkipExisting = rc.skipExisting
	}

	if flags.Changed("max-lines") {
		cfg.MaxLines = rc.maxLines
	}

	if flags.Changed("max-file-size") {
		cfg.MaxFileSize = rc.maxFileSize
	}

	if flags.Changed("workers") {
		cfg.Workers = rc.workers
	}

	if flags.Changed("summary-format") {
		cfg.SummaryFormat = rc.summaryFormat
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

func (rc *RunCommand) newLogger() *slog.Logger {
	level := slog.LevelWarn
	if rc.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// execute wires the pipeline and runs it against the opened repository.
func (rc *RunCommand) execute(cmd *cobra.Command, repo *gitlib.Repository, cfg *config.Config, logger *slog.Logger) error {
	maxFileSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		return err
	}

	root := repo.Workdir()

	manager := &output.Manager{
		OutDir:       rc.outDir,
		ReportSuffix: cfg.ReportSuffix,
		SkipExisting: cfg.SkipExisting,
	}

	ensureErr := manager.EnsureOutDir()
	if ensureErr != nil {
		return ensureErr
	}

	walker := &discover.Walker{
		Root:         root,
		ReportSuffix: manager.Suffix(),
		MaxFileSize:  maxFileSize,
		SkipVendor:   cfg.SkipVendor,
	}

	files, err := walker.Walk()
	if err != nil {
		return err
	}

	logger.Debug("discovered files", "count", len(files), "root", root)

	runner := &pipeline.Runner{
		Extractor: &history.Extractor{
			Querier: history.NewGitLogQuerier(root, logger),
			Workers: cfg.Workers,
			Progress: func(done, total int) {
				logger.Debug("line progress", "done", done, "total", total)
			},
		},
		Output:   manager,
		Overview: report.NewOverview(repo.ShortHead()),
		MaxLines: cfg.MaxLines,
		Warnf: func(format string, args ...any) {
			color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
		},
		Logger: logger,
	}

	summary, err := runner.Run(cmd.Context(), files)
	if err != nil {
		return err
	}

	return printSummary(cmd.OutOrStdout(), cfg.SummaryFormat, summary)
}
