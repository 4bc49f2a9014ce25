package haiku

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDebounce batches the burst of events an editor save produces.
const reloadDebounce = 100 * time.Millisecond

// WatchLexicon reloads the lexicon file at path each time it is written or
// recreated and passes every successfully loaded Lexicon to onLoad. Failed
// reloads are logged and the previous lexicon stays in use.
//
// The parent directory is watched rather than the file, so replacing the
// file by rename is seen too. WatchLexicon blocks until ctx is done.
func WatchLexicon(ctx context.Context, path string, logger *zap.Logger, onLoad func(*Lexicon)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	dir := filepath.Dir(target)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching lexicon", zap.String("path", target))

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			reload = time.After(reloadDebounce)

		case <-reload:
			reload = nil
			lex, err := LoadLexicon(target)
			if err != nil {
				logger.Warn("lexicon reload failed", zap.String("path", target), zap.Error(err))
				continue
			}
			logger.Info("lexicon reloaded", zap.String("path", target), zap.Int("words", lex.Len()))
			onLoad(lex)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("lexicon watcher error", zap.Error(err))
		}
	}
}
