package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joycelim/callheat/internal/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDataDirReloadsOnWrite(t *testing.T) {
	dataDir := t.TempDir()
	logPath := filepath.Join(dataDir, "calls.jsonl")
	line := `{"id":"c1","startedAt":"2024-03-04T01:15:00Z","endedAt":"2024-03-04T01:45:00Z"}` + "\n"
	require.NoError(t, os.WriteFile(logPath, []byte(line), 0644))

	loader, err := analyzer.New(&analyzer.Config{
		DataDir:  dataDir,
		CacheDir: t.TempDir(),
	})
	require.NoError(t, err)

	dataset := NewDataset(loader)
	require.NoError(t, dataset.Reload())
	require.Len(t, dataset.Records(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- WatchDataDir(ctx, dataDir, dataset) }()

	// Give the watcher a moment to register before appending.
	time.Sleep(100 * time.Millisecond)
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"id":"c2","startedAt":"2024-03-05T01:00:00Z","endedAt":"2024-03-05T01:30:00Z"}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return len(dataset.Records()) == 2
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestWatchDataDirIgnoresOtherFiles(t *testing.T) {
	dataDir := t.TempDir()
	logPath := filepath.Join(dataDir, "calls.jsonl")
	line := `{"id":"c1","startedAt":"2024-03-04T01:15:00Z","endedAt":"2024-03-04T01:45:00Z"}` + "\n"
	require.NoError(t, os.WriteFile(logPath, []byte(line), 0644))

	loader, err := analyzer.New(&analyzer.Config{
		DataDir:  dataDir,
		CacheDir: t.TempDir(),
	})
	require.NoError(t, err)

	dataset := NewDataset(loader)
	require.NoError(t, dataset.Reload())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- WatchDataDir(ctx, dataDir, dataset) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "notes.txt"), []byte("hi"), 0644))

	// The debounce window passes with no reload for non-log files.
	time.Sleep(2 * debounceDelay)
	assert.Len(t, dataset.Records(), 1)

	cancel()
	<-done
}

func TestWatchDataDirMissingDir(t *testing.T) {
	err := WatchDataDir(context.Background(), filepath.Join(t.TempDir(), "absent"), nil)
	assert.Error(t, err)
}
