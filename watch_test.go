package haiku

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestWatchLexiconReloads(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "dictionary.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat | NOUN\n"), 0o644))

	var (
		mu     sync.Mutex
		loaded *Lexicon
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- WatchLexicon(ctx, path, zaptest.NewLogger(t), func(l *Lexicon) {
			mu.Lock()
			loaded = l
			mu.Unlock()
		})
	}()

	// rewrite until the watcher, which may not be registered yet, sees it
	require.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte("cat | NOUN\nmoon | NOUN\n"), 0o644); err != nil {
			return false
		}
		time.Sleep(2 * reloadDebounce)
		mu.Lock()
		defer mu.Unlock()
		return loaded != nil && loaded.Contains("moon")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("WatchLexicon did not return after cancel")
	}
}

func TestWatchLexiconMissingDir(t *testing.T) {
	err := WatchLexicon(context.Background(), filepath.Join(t.TempDir(), "nope", "dictionary.txt"), nil, func(*Lexicon) {})
	assert.Error(t, err)
}
