package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phantomsec/phantomscan/internal/password"
)

// NewSuggestCmd creates the suggest command.
func NewSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Generate strong password suggestions",
		Long: `Suggest generates random passwords and passphrases using a
cryptographically secure source.

Examples:
  # Generate a 16-character random password
  phantomscan suggest

  # Generate a 24-character password without symbols
  phantomscan suggest --length 24 --no-symbols

  # Generate a 5-word passphrase
  phantomscan suggest --passphrase --words 5`,
		Args: cobra.NoArgs,
		RunE: runSuggestCmd,
	}

	cmd.Flags().IntP("length", "l", password.RecommendedLength,
		"Length of the generated password")
	cmd.Flags().Bool("no-symbols", false,
		"Exclude symbols from the generated password")
	cmd.Flags().BoolP("passphrase", "p", false,
		"Generate a word-based passphrase instead of a random password")
	cmd.Flags().IntP("words", "w", 4,
		"Number of words in the passphrase (with --passphrase)")
	cmd.Flags().IntP("count", "N", 1,
		"Number of suggestions to generate")

	return cmd
}

// runSuggestCmd executes the suggest command.
func runSuggestCmd(cmd *cobra.Command, _ []string) error {
	length, err := cmd.Flags().GetInt("length")
	if err != nil {
		return err
	}
	noSymbols, err := cmd.Flags().GetBool("no-symbols")
	if err != nil {
		return err
	}
	passphrase, err := cmd.Flags().GetBool("passphrase")
	if err != nil {
		return err
	}
	words, err := cmd.Flags().GetInt("words")
	if err != nil {
		return err
	}
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return err
	}
	if count < 1 {
		count = 1
	}

	for i := 0; i < count; i++ {
		var suggestion string
		if passphrase {
			suggestion, err = password.GeneratePassphrase(words)
		} else {
			suggestion, err = password.Generate(length, !noSymbols)
		}
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), suggestion)
	}

	return nil
}
