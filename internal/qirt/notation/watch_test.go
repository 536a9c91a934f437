package notation

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWatchReloads tests that edits to the notation file replace the current table
func TestWatchReloads(t *testing.T) {
	previous := Current()
	t.Cleanup(func() { Replace(previous) })

	dir := t.TempDir()
	path := filepath.Join(dir, "notation.ini")
	require.NoError(t, os.WriteFile(path, Encode(Default()), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var reloaded atomic.Pointer[Table]
	go func() {
		done <- Watch(ctx, path, func(t *Table, err error) {
			if err == nil {
				reloaded.Store(t)
			}
		})
	}()

	// Rewrite until the watcher has been registered and picks the change up
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(arrowsINI), 0o644)
		return reloaded.Load() != nil
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, "u", reloaded.Load().Symbols().Z0)
	assert.Equal(t, "u", Current().Symbols().Z0)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
