// Package main provides the entry point for the PhantomScan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for PhantomScan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phantomscan",
		Short: "Sensitive-data audit and password breach checking tool",
		Long: `PhantomScan audits documents for sensitive data and checks passwords
against the public breach corpus.

The audit pipeline detects credentials, API keys, bank account numbers,
national IDs, email addresses, and phone numbers, replaces each with a
category mask, and classifies the document by redaction count. Breach
checks use k-anonymity range queries: only the first 5 characters of the
password's SHA-1 digest ever leave the machine.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewSuggestCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
