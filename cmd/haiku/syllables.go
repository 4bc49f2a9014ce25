package main

import (
	"fmt"

	haiku "github.com/Joebasaurus/haiku-generator"
	"github.com/spf13/cobra"
)

func newSyllablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "syllables WORD...",
		Short: "Print the estimated syllable count of each word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, word := range args {
				fmt.Fprintf(out, "%s\t%d\n", word, haiku.SyllableCount(word))
			}
			return nil
		},
	}
}
