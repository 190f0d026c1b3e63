package dncheck

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcherRechecksOnWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "proof.dn")
	require.NoError(t, os.WriteFile(path, []byte(identityProof), 0o644))

	engine, err := NewFromConfig(DefaultConfig())
	require.NoError(t, err)

	results := make(chan FileResult, 4)
	watcher, err := NewWatcher(engine, zap.NewNop(), func(result FileResult) {
		results <- result
	})
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, watcher.Watch(dir))

	// leave the proof unfinished and expect the re-check to notice
	require.NoError(t, os.WriteFile(path, []byte("1;;Supposons a;\n"), 0o644))

	select {
	case result := <-results:
		assert.Equal(t, path, result.Path)
		assert.False(t, result.Verdict.Valid)
	case <-time.After(5 * time.Second):
		t.Fatal("no re-check arrived after the write")
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	engine, err := NewFromConfig(DefaultConfig())
	require.NoError(t, err)

	results := make(chan FileResult, 4)
	watcher, err := NewWatcher(engine, zap.NewNop(), func(result FileResult) {
		results <- result
	})
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, watcher.Watch(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	select {
	case result := <-results:
		t.Fatalf("unexpected re-check for %s", result.Path)
	case <-time.After(500 * time.Millisecond):
		// quiet, as it should be
	}
}

func TestWatcherCloseBeforeWatch(t *testing.T) {
	t.Parallel()
	engine, err := NewFromConfig(DefaultConfig())
	require.NoError(t, err)

	watcher, err := NewWatcher(engine, zap.NewNop(), func(FileResult) {})
	require.NoError(t, err)
	assert.NoError(t, watcher.Close())
}
