package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/phantomsec/phantomscan/internal/analysis"
	"github.com/phantomsec/phantomscan/internal/archive"
	"github.com/phantomsec/phantomscan/internal/config"
	"github.com/phantomsec/phantomscan/internal/detector"
	"github.com/phantomsec/phantomscan/internal/log"
	"github.com/phantomsec/phantomscan/internal/model"
	"github.com/phantomsec/phantomscan/internal/report"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <file>...",
		Short: "Audit files for sensitive data",
		Long: `Audit scans one or more files for sensitive data and reports what it found.

Each file runs through the redaction pipeline:
- Detection of credentials, API keys, bank accounts, national IDs,
  email addresses, and phone numbers
- Replacement of every match with a category mask such as [REDACTED:Credential]
- Risk classification by total redaction count

Reports never contain the detected values, only masks and counts.

Examples:
  # Audit a single file
  phantomscan audit notes.txt

  # Audit several files concurrently
  phantomscan audit exports/*.csv

  # Output JSON report to a file
  phantomscan audit --json -o report.json notes.txt

  # Use custom detection patterns from a configuration file
  phantomscan audit -c myconfig.yaml notes.txt

Configuration file (.phantomscan) example:
  alertThreshold: 3
  patterns:
    - category: ApiKey
      pattern: 'INTKEY-[A-Z0-9]{20}'
      confidence: 0.9`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAuditCmd,
	}

	// Audit behavior flags
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of files audited concurrently")
	cmd.Flags().IntP("alert-threshold", "a", config.DefaultAlertThreshold,
		"Redaction count above which an alert is raised")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .phantomscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-archive", false,
		"Do not save audit summaries to the local archive")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildAuditConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging. The secure handler masks any attribute
	// that looks like document content or a credential.
	cfg.Verbose = getVerboseFlag(cmd)
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAudit(ctx, cfg, logger)
}

// buildAuditConfig creates a Config from cobra command flags.
func buildAuditConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.AlertThreshold, err = cmd.Flags().GetInt("alert-threshold")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load custom patterns and overrides from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently continue without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.FileConfig, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.FileConfig.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Flag wins over the config file when set to a non-default value.
	if cmd.Flags().Changed("alert-threshold") {
		cfg.AlertThreshold, err = cmd.Flags().GetInt("alert-threshold")
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	if cfg.JSONReport && cfg.MarkdownReport {
		return nil, errors.New("--json and --markdown are mutually exclusive")
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noArchive, err := cmd.Flags().GetBool("no-archive")
	if err != nil {
		return nil, err
	}

	// Summaries go to the XDG data directory unless archival is disabled.
	cfg.SaveToArchive = !noArchive
	if cfg.SaveToArchive {
		cfg.ArchiveDir = config.XDGDataDir()
	}

	// Positional arguments are the files to audit
	cfg.Targets = args

	return cfg, nil
}

// runAudit executes the audit over all targets.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting audit",
		"total_files", len(cfg.Targets),
		"concurrency", cfg.Concurrency,
		"save_to_archive", cfg.SaveToArchive,
	)

	// Open the archive if saving is enabled
	var store *archive.Archive
	if cfg.SaveToArchive {
		var err error
		store, err = archive.Open(cfg.ArchiveDir, archive.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer func() { _ = store.Close() }()
		logger.Info("archive opened", "dir", cfg.ArchiveDir)
	}

	analyzer, err := buildAnalyzer(cfg, logger)
	if err != nil {
		return err
	}

	auditor := analysis.NewBatchAuditor(analyzer,
		analysis.WithConcurrency(cfg.Concurrency),
		analysis.WithBatchLogger(logger),
	)

	startTime := time.Now()
	reports, err := auditor.AuditFiles(ctx, cfg.Targets)
	if err != nil {
		return fmt.Errorf("audit aborted: %w", err)
	}
	fmt.Printf("Audited %d files in %s\n\n", len(reports), time.Since(startTime).Round(time.Millisecond))

	if err := outputReports(cfg, reports); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	// Save summaries to the archive. Best effort: a broken archive should
	// not hide an otherwise complete report.
	for _, r := range reports {
		if err := saveAuditReport(ctx, store, r, logger); err != nil {
			logger.Error("failed to save audit report", "source", r.Source, "error", err)
		}
	}

	return nil
}

// buildAnalyzer constructs the analyzer, extending the built-in detector
// set with any patterns from the config file.
func buildAnalyzer(cfg *config.Config, logger *slog.Logger) (*analysis.Analyzer, error) {
	matcherOpts := []detector.Option{}
	if cfg.FileConfig != nil {
		rules, err := cfg.FileConfig.Rules()
		if err != nil {
			return nil, fmt.Errorf("invalid custom patterns: %w", err)
		}
		for _, rule := range rules {
			matcherOpts = append(matcherOpts,
				detector.WithCustomPattern(rule.Category, rule.Pattern, rule.Confidence))
		}
	}

	matcher, err := detector.NewMatcher(matcherOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build entity matcher: %w", err)
	}

	return analysis.New(
		analysis.WithMatcher(matcher),
		analysis.WithAlertThreshold(cfg.AlertThreshold),
		analysis.WithLogger(logger),
	)
}

// outputReports writes the audit reports in the requested format.
func outputReports(cfg *config.Config, reports []*model.AuditReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Masked text is safe to share, but audit reports still reveal
		// which documents hold sensitive data. Owner-only permissions.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output, report.WithMaskedText())
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.WriteBatch(reports)
	return err
}

// saveAuditReport saves one audit summary to the archive. If store is nil,
// this function is a no-op.
func saveAuditReport(ctx context.Context, store *archive.Archive, r *model.AuditReport, logger *slog.Logger) error {
	if store == nil {
		return nil
	}
	// Failed reads carry no summary worth archiving.
	if r.ErrorMessage != "" {
		return nil
	}

	record := archive.NewRecord(r.Source, r.Summary)
	if err := store.Insert(ctx, record); err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}

	logger.Info("audit summary archived", "source", r.Source, "id", record.ID)
	return nil
}
