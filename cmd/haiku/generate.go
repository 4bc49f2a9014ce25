package main

import (
	"fmt"

	haiku "github.com/Joebasaurus/haiku-generator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print one or more haiku",
		Long: `Generate loads the lexicon and prints --count poems separated by blank
lines. A non-zero --seed makes the output reproducible for a given lexicon.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be positive, got %d", count)
			}
			if cmd.Flags().Changed("seed") {
				a.cfg.Seed = seed
			}

			lex, err := haiku.LoadLexicon(a.cfg.Lexicon)
			if err != nil {
				return err
			}
			opts := append(a.cfg.GeneratorOptions(), haiku.WithLogger(a.logger))
			gen := haiku.NewGenerator(lex, opts...)

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				poem, err := gen.Generate(cmd.Context())
				if err != nil {
					return err
				}
				a.logger.Debug("generated", zap.Int("poem", i+1), zap.Int("attempts", poem.Attempts))
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, poem.String())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of poems to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed; 0 picks one at random")
	return cmd
}
