package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/phantomsec/phantomscan/internal/analysis"
	"github.com/phantomsec/phantomscan/internal/archive"
	"github.com/phantomsec/phantomscan/internal/breach"
	"github.com/phantomsec/phantomscan/internal/config"
	"github.com/phantomsec/phantomscan/internal/log"
	"github.com/phantomsec/phantomscan/internal/server"
)

// Environment variables read by the serve command. Flags take precedence.
const (
	envListenAddr = "PHANTOMSCAN_ADDR"
	envArchiveDir = "PHANTOMSCAN_ARCHIVE_DIR"
	envBreachURL  = "PHANTOMSCAN_BREACH_URL"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the audit HTTP server",
		Long: `Serve runs an HTTP server exposing the audit pipeline as a JSON API.

Endpoints:
  POST /api/analyze       Audit submitted content, return masked text
  POST /api/check-breach  K-anonymity breach check plus strength analysis
  GET  /api/history       Recent archived audit runs and statistics
  GET  /api/health        Liveness and module status

The server binds to localhost by default. Settings may also come from a
.env file or the environment (PHANTOMSCAN_ADDR, PHANTOMSCAN_ARCHIVE_DIR,
PHANTOMSCAN_BREACH_URL); flags take precedence.

Examples:
  # Serve on the default address
  phantomscan serve

  # Serve on a custom port without archiving
  phantomscan serve --addr 127.0.0.1:9000 --no-archive`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().String("addr", config.DefaultListenAddr,
		"Listen address in host:port format")
	cmd.Flags().IntP("alert-threshold", "a", config.DefaultAlertThreshold,
		"Redaction count above which an alert is raised")
	cmd.Flags().String("archive-dir", "",
		"Archive directory (default: XDG data directory)")
	cmd.Flags().Bool("no-archive", false,
		"Do not save audit summaries to the archive")
	cmd.Flags().String("breach-url", config.DefaultBreachBaseURL,
		"Base URL of the breach range API")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	// Best effort: a missing .env file is the common case.
	_ = godotenv.Load()

	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.ValidateServe(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analyzer, err := analysis.New(
		analysis.WithAlertThreshold(cfg.AlertThreshold),
		analysis.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to build analyzer: %w", err)
	}

	checker := breach.NewChecker(
		breach.WithBaseURL(cfg.BreachBaseURL),
		breach.WithHTTPClient(&http.Client{Timeout: cfg.BreachTimeout}),
		breach.WithUserAgent(cfg.UserAgent),
		breach.WithLogger(logger),
	)

	opts := []server.Option{
		server.WithListenAddr(cfg.ListenAddr),
		server.WithAnalyzer(analyzer),
		server.WithBreachChecker(checker),
		server.WithMaxRequestBody(cfg.MaxRequestBody),
		server.WithLogger(logger),
	}

	if cfg.SaveToArchive {
		store, err := archive.Open(cfg.ArchiveDir, archive.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer func() { _ = store.Close() }()
		logger.Info("archive opened", "dir", cfg.ArchiveDir)
		opts = append(opts, server.WithArchive(store))
	}

	srv, err := server.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	fmt.Printf("PhantomScan audit server listening on %s\n", cfg.ListenAddr)
	return srv.Run(ctx)
}

// buildServeConfig creates a Config from flags and the environment.
// Precedence: flag > environment > default.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	if addr := os.Getenv(envListenAddr); addr != "" {
		cfg.ListenAddr = addr
	}
	if cmd.Flags().Changed("addr") {
		cfg.ListenAddr, err = cmd.Flags().GetString("addr")
		if err != nil {
			return nil, err
		}
	}

	if url := os.Getenv(envBreachURL); url != "" {
		cfg.BreachBaseURL = url
	}
	if cmd.Flags().Changed("breach-url") {
		cfg.BreachBaseURL, err = cmd.Flags().GetString("breach-url")
		if err != nil {
			return nil, err
		}
	}

	cfg.AlertThreshold, err = cmd.Flags().GetInt("alert-threshold")
	if err != nil {
		return nil, err
	}

	noArchive, err := cmd.Flags().GetBool("no-archive")
	if err != nil {
		return nil, err
	}

	archiveDir, err := cmd.Flags().GetString("archive-dir")
	if err != nil {
		return nil, err
	}
	if archiveDir == "" {
		archiveDir = os.Getenv(envArchiveDir)
	}
	if archiveDir == "" {
		archiveDir = config.XDGDataDir()
	}

	cfg.SaveToArchive = !noArchive
	if cfg.SaveToArchive {
		cfg.ArchiveDir = archiveDir
	}

	return cfg, nil
}
