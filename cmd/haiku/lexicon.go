package main

import (
	"fmt"
	"math"
	"strings"

	haiku "github.com/Joebasaurus/haiku-generator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newLexiconCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect and edit the lexicon file",
	}
	cmd.AddCommand(newLexiconListCmd(a))
	cmd.AddCommand(newLexiconAddCmd(a))
	cmd.AddCommand(newLexiconStatsCmd(a))
	return cmd
}

func newLexiconListCmd(a *app) *cobra.Command {
	var (
		tag      string
		min, max int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List words, optionally filtered by tag and syllable range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := haiku.LoadLexicon(a.cfg.Lexicon)
			if err != nil {
				return err
			}

			var want haiku.PartOfSpeech
			if tag != "" {
				pos, ok := haiku.ParsePartOfSpeech(strings.ToUpper(tag))
				if !ok || !pos.Lexical() {
					return fmt.Errorf("unknown part of speech %q", tag)
				}
				want = pos
			}

			out := cmd.OutOrStdout()
			for _, word := range lex.Words() {
				pos, _ := lex.POS(word)
				n := haiku.SyllableCount(word)
				if (want != 0 && pos != want) || n < min || n > max {
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%d\n", word, pos, n)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tag, "pos", "", "only words with this tag")
	cmd.Flags().IntVar(&min, "min", 0, "minimum syllables")
	cmd.Flags().IntVar(&max, "max", math.MaxInt, "maximum syllables")
	return cmd
}

func newLexiconAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add WORD TAG",
		Short: "Add a word to the lexicon file, creating the file if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			word, tag := strings.TrimSpace(args[0]), strings.ToUpper(args[1])
			pos, ok := haiku.ParsePartOfSpeech(tag)
			if !ok || !pos.Lexical() {
				return fmt.Errorf("unknown part of speech %q", args[1])
			}

			lex, err := haiku.LoadLexicon(a.cfg.Lexicon)
			if haiku.IsNotFound(err) {
				lex, err = haiku.NewLexicon(), nil
			}
			if err != nil {
				return err
			}
			if !lex.Add(word, pos) {
				return fmt.Errorf("word %q rejected", word)
			}
			if err := lex.Save(a.cfg.Lexicon); err != nil {
				return err
			}
			a.logger.Info("word added", zap.String("word", word), zap.Stringer("pos", pos), zap.String("lexicon", a.cfg.Lexicon))
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\n", word, pos, haiku.SyllableCount(word))
			return nil
		},
	}
}

func newLexiconStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the number of words per tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := haiku.LoadLexicon(a.cfg.Lexicon)
			if err != nil {
				return err
			}
			counts := lex.Counts()
			out := cmd.OutOrStdout()
			for _, pos := range []haiku.PartOfSpeech{
				haiku.POSNoun, haiku.POSVerb, haiku.POSAdjective,
				haiku.POSAdverb, haiku.POSPreposition, haiku.POSArticle,
			} {
				fmt.Fprintf(out, "%s\t%d\n", pos, counts[pos])
			}
			fmt.Fprintf(out, "TOTAL\t%d\n", lex.Len())
			return nil
		},
	}
}
