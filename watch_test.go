package cellgrid

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid: {name: first}"), 0644))
	// Changes of other files in the directory are ignored.
	other := filepath.Join(dir, "other.yaml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type reload struct {
		layout *Layout
		err    error
	}
	reloads := make(chan reload, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(l *Layout, err error) {
			reloads <- reload{l, err}
		})
	}()

	// The watcher is registered asynchronously, keep saving until it reacts.
	// The saves are spaced wider than reloadDelay so the debounce can fire.
	ticker := time.NewTicker(3 * reloadDelay)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)

	var got reload
wait:
	for i := 0; ; i++ {
		select {
		case got = <-reloads:
			break wait
		case <-ticker.C:
			doc := fmt.Sprintf("grid: {name: second, bounds: {width: %d, height: 10}}", i+1)
			require.NoError(t, os.WriteFile(other, []byte("grid: {name: other}"), 0644))
			require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
		case <-timeout:
			t.Fatal("no reload received")
		}
	}
	require.NoError(t, got.err)
	assert.Equal(t, "second", got.layout.Grid.Name)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "layout.yaml"), func(*Layout, error) {})
	assert.Error(t, err)
}
