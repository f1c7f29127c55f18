package fs_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidgraph/vidgraph/pkg/vidgraph/storage/fs"
)

func newStore(t *testing.T) (*fs.Store, string) {
	t.Helper()
	baseDir := t.TempDir()
	store, err := fs.New(fs.Config{BaseDir: baseDir})
	require.NoError(t, err)
	return store, baseDir
}

func TestNewRequiresBaseDir(t *testing.T) {
	_, err := fs.New(fs.Config{})
	assert.Error(t, err)
}

func TestNewCreatesBaseDir(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "nested", "blobs")
	_, err := fs.New(fs.Config{BaseDir: baseDir})
	require.NoError(t, err)

	info, err := os.Stat(baseDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestUploadDownloadDelete(t *testing.T) {
	store, baseDir := newStore(t)
	ctx := context.Background()

	info, err := store.Upload(ctx, "videos/a.mp4", strings.NewReader("payload"))
	require.NoError(t, err)
	assert.Equal(t, "file://videos/a.mp4", info.Locator)
	assert.Equal(t, int64(len("payload")), info.Size)

	// The blob lands under the base directory.
	onDisk, err := os.ReadFile(filepath.Join(baseDir, "videos", "a.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(onDisk))

	rc, err := store.Download(ctx, info.Locator)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "payload", string(data))

	require.NoError(t, store.Delete(ctx, info.Locator))
	_, err = store.Download(ctx, info.Locator)
	assert.Error(t, err)
}

func TestLocatorValidation(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		locator string
	}{
		{name: "foreign scheme", locator: "mem://videos/a.mp4"},
		{name: "empty key", locator: "file://"},
		{name: "path traversal", locator: "file://../outside"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Download(ctx, tt.locator)
			assert.Error(t, err)
			assert.Error(t, store.Delete(ctx, tt.locator))
		})
	}
}
