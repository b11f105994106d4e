package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phantomsec/phantomscan/internal/breach"
	"github.com/phantomsec/phantomscan/internal/config"
	"github.com/phantomsec/phantomscan/internal/log"
	"github.com/phantomsec/phantomscan/internal/password"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a password against the public breach corpus",
		Long: `Check reads a password from standard input and looks it up in the public
breach corpus using a k-anonymity range query.

Only the first 5 characters of the password's SHA-1 digest are sent over
the network. The password itself never leaves the machine, and is never
accepted as a command-line argument because arguments end up in shell
history and process listings.

The check also runs a local strength analysis and, for weak passwords,
suggests stronger alternatives.

Examples:
  # Interactive (type the password, then Enter)
  phantomscan check

  # From a secret manager
  pass show example.com | phantomscan check`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().DurationP("timeout", "t", config.DefaultBreachTimeout,
		"Timeout for the breach range query")
	cmd.Flags().String("base-url", config.DefaultBreachBaseURL,
		"Base URL of the breach range API")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, _ []string) error {
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	baseURL, err := cmd.Flags().GetString("base-url")
	if err != nil {
		return err
	}

	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	pw, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	checker := breach.NewChecker(
		breach.WithBaseURL(baseURL),
		breach.WithHTTPClient(&http.Client{Timeout: timeout}),
		breach.WithUserAgent(config.DefaultUserAgent),
		breach.WithLogger(logger),
	)

	result, err := checker.Check(context.Background(), pw)
	if err != nil {
		return fmt.Errorf("breach check failed: %w", err)
	}

	rec, err := password.Recommend(pw)
	if err != nil {
		return fmt.Errorf("strength analysis failed: %w", err)
	}

	printCheckResult(cmd.OutOrStdout(), result, rec)
	return nil
}

// readPassword reads one line from in. A prompt is written to errOut so it
// does not pollute piped stdout.
func readPassword(in io.Reader, errOut io.Writer) (string, error) {
	fmt.Fprint(errOut, "Password: ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", fmt.Errorf("no password provided")
	}
	return pw, nil
}

// printCheckResult renders the breach result and strength analysis.
func printCheckResult(out io.Writer, result breach.Result, rec *password.Recommendation) {
	fmt.Fprintln(out)
	if result.Breached {
		fmt.Fprintf(out, "BREACHED: seen %d times in the corpus\n", result.OccurrenceCount)
	} else {
		fmt.Fprintln(out, "Not found in the breach corpus")
	}
	fmt.Fprintf(out, "Risk level:     %s\n", result.RiskLevel())
	fmt.Fprintf(out, "Recommendation: %s\n", result.Recommendation())

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Strength:   %s (score %d/4)\n", rec.Strength.Label, rec.Strength.Score)
	fmt.Fprintf(out, "Crack time: %s\n", rec.Strength.CrackTime)

	if len(rec.Suggestions) > 0 {
		fmt.Fprintln(out, "\nSuggestions:")
		for _, s := range rec.Suggestions {
			fmt.Fprintf(out, "  - %s\n", s)
		}
	}

	if len(rec.Alternatives) > 0 {
		fmt.Fprintln(out, "\nAlternative passwords:")
		for _, alt := range rec.Alternatives {
			fmt.Fprintf(out, "  %-12s %s\n", alt.Type+":", alt.Password)
			fmt.Fprintf(out, "  %-12s %s\n", "", alt.Description)
		}
	}
}
