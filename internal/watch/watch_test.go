package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	w := &Watcher{dir: dir}

	tests := []struct {
		name string
		ev   fsnotify.Event
		want string
		ok   bool
	}{
		{name: "create json", ev: fsnotify.Event{Name: filepath.Join(dir, "a.json"), Op: fsnotify.Create}, want: "a.json", ok: true},
		{name: "write zst", ev: fsnotify.Event{Name: filepath.Join(dir, "a.json.zst"), Op: fsnotify.Write}, want: "a.json.zst", ok: true},
		{name: "remove", ev: fsnotify.Event{Name: filepath.Join(dir, "a.json"), Op: fsnotify.Remove}},
		{name: "chmod", ev: fsnotify.Event{Name: filepath.Join(dir, "a.json"), Op: fsnotify.Chmod}},
		{name: "not a document", ev: fsnotify.Event{Name: filepath.Join(dir, "a.txt"), Op: fsnotify.Write}},
		{name: "other dir", ev: fsnotify.Event{Name: filepath.Join(dir, "out", "a.json"), Op: fsnotify.Write}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := w.relevant(tt.ev)
			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.want, name)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	seen := make(chan string, 16)

	w, err := New(dir, discardLogger(), func(_ context.Context, name string) {
		seen <- name
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data-1.json"), []byte("{}"), 0o644))

	select {
	case name := <-seen:
		assert.Equal(t, "data-1.json", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for data-1.json")
	}

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	seen := make(chan string, 16)

	w, err := New(dir, discardLogger(), func(_ context.Context, name string) {
		seen <- name
	})
	require.NoError(t, err)

	w.delay = 300 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	path := filepath.Join(dir, "data-2.json")

	f, err := os.Create(path)
	require.NoError(t, err)

	for _, chunk := range []string{`{"message": `, `"Hello", `, `"items": []`, `}`} {
		_, err := f.WriteString(chunk)
		require.NoError(t, err)
	}

	require.NoError(t, f.Close())

	select {
	case name := <-seen:
		assert.Equal(t, "data-2.json", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for data-2.json")
	}

	select {
	case name := <-seen:
		t.Fatalf("unexpected second call for %s", name)
	case <-time.After(3 * w.delay):
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	assert.Empty(t, w.pending)
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), discardLogger(), func(context.Context, string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
