package file_test

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/aretw0/meridian/pkg/adapters/file"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/aretw0/meridian/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_Contract(t *testing.T) {
	ports.RunLayoutCacheContract(t, file.NewCache(t.TempDir()))
}

func TestFileCache_Overwrite(t *testing.T) {
	dir := t.TempDir()
	c := file.NewCache(dir)
	ctx := t.Context()

	require.NoError(t, c.Put(ctx, "k", &domain.Layout{BufferCount: 1}))
	require.NoError(t, c.Put(ctx, "k", &domain.Layout{BufferCount: 2}))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, got.BufferCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestFileCache_ReadersNeverMissDuringOverwrite(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("rename cannot replace an existing file on windows")
	}
	c := file.NewCache(t.TempDir())
	ctx := t.Context()
	require.NoError(t, c.Put(ctx, "k", &domain.Layout{BufferCount: 0}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 50; i++ {
			assert.NoError(t, c.Put(ctx, "k", &domain.Layout{BufferCount: i}))
		}
	}()

	for i := 0; i < 200; i++ {
		_, err := c.Get(ctx, "k")
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestFileCache_RejectsPathKeys(t *testing.T) {
	c := file.NewCache(t.TempDir())
	for _, key := range []string{"", "../escape", "a/b", ".."} {
		assert.Error(t, c.Put(t.Context(), key, &domain.Layout{}), key)
	}
}

func TestFileCache_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".meridian", "layouts"), file.NewCache("").BasePath)
}
