package localfs

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOS_ReadsNativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3"), 0o644))

	fs := New()

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size())
	assert.False(t, info.IsDir())

	f, err := fs.Open(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "ID3", string(data))
}

func TestOS_DirectoryAndMissing(t *testing.T) {
	dir := t.TempDir()
	fs := New()

	info, err := fs.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = fs.Stat(filepath.Join(dir, "missing.mp3"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestOS_Root(t *testing.T) {
	assert.Equal(t, "/", New().Root())

	chrooted, err := New().Chroot(t.TempDir())
	require.NoError(t, err)
	assert.NotEqual(t, "/", chrooted.Root())
}
