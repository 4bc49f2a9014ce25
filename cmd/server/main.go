// Command server exposes the haiku generator as a JSON REST API.
//
// See package internal/server for the endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	haiku "github.com/Joebasaurus/haiku-generator"
	"github.com/Joebasaurus/haiku-generator/internal/config"
	"github.com/Joebasaurus/haiku-generator/internal/logging"
	"github.com/Joebasaurus/haiku-generator/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type flags struct {
	config   string
	addr     string
	lexicon  string
	logLevel string
	watch    bool
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Serve haiku over HTTP",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.config)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("addr") {
				cfg.Addr = f.addr
			}
			if fs.Changed("lexicon") {
				cfg.Lexicon = f.lexicon
			}
			if fs.Changed("log-level") {
				cfg.LogLevel = f.logLevel
			}
			if fs.Changed("watch") {
				cfg.Watch = f.watch
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "path to a YAML config file")
	fl.StringVar(&f.addr, "addr", "", "listen address (overrides config)")
	fl.StringVarP(&f.lexicon, "lexicon", "l", "", "path to the lexicon file (overrides config)")
	fl.StringVar(&f.logLevel, "log-level", "", "log level (overrides config)")
	fl.BoolVar(&f.watch, "watch", false, "reload the lexicon when its file changes")
	return cmd
}

// serve runs the HTTP server, and the lexicon watcher when enabled, until
// ctx is done or one of them fails.
func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	lex, err := haiku.LoadLexicon(cfg.Lexicon)
	if err != nil {
		return err
	}
	logger.Info("lexicon loaded", zap.String("path", cfg.Lexicon), zap.Int("words", lex.Len()))

	srv := server.New(lex, server.Options{
		LexiconPath: cfg.Lexicon,
		MaxAttempts: cfg.MaxAttempts,
		Jitter:      cfg.Jitter,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", cfg.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	if cfg.Watch {
		g.Go(func() error {
			return haiku.WatchLexicon(ctx, cfg.Lexicon, logger, srv.SetLexicon)
		})
	}
	return g.Wait()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
