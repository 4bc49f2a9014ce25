// Command haiku generates 5-7-5 poems from a part-of-speech lexicon and
// manages that lexicon from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/Joebasaurus/haiku-generator/internal/config"
	"github.com/Joebasaurus/haiku-generator/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state the subcommands share once the root command's
// pre-run has loaded it.
type app struct {
	configPath string
	lexicon    string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "haiku",
		Short: "Generate haiku from a part-of-speech lexicon",
		Long: `haiku walks a weighted grammar graph of part-of-speech slots and
fills it with words from a lexicon file until each line of the poem hits
its syllable target (5, 7, 5).

The lexicon is a text file of "word | TAG" lines, where TAG is one of
NOUN, VERB, ADJECTIVE, ADVERB, PREPOSITION, ARTICLE.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVarP(&a.lexicon, "lexicon", "l", "", "path to the lexicon file (overrides config)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newSyllablesCmd())
	root.AddCommand(newLexiconCmd(a))
	return root
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("lexicon") {
		cfg.Lexicon = a.lexicon
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
