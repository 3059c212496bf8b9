package scenariofile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_ReportsWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "watched.toml")
	other := filepath.Join(dir, "other.toml")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0o600))

	w, err := NewWatcher([]string{watched}, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(changed []string) { changes <- changed })
	}()

	require.NoError(t, os.WriteFile(other, []byte("b"), 0o600))
	require.NoError(t, os.WriteFile(watched, []byte("c"), 0o600))

	select {
	case changed := <-changes:
		abs, err := filepath.Abs(watched)
		require.NoError(t, err)
		assert.Equal(t, []string{abs}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher([]string{filepath.Join(t.TempDir(), "nope", "x.toml")}, 0)
	require.Error(t, err)
}
