package digestcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDigest = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

func statFile(t *testing.T, path string) os.FileInfo {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info
}

func TestOpen_MissingSnapshot(t *testing.T) {
	c := Open(filepath.Join(t.TempDir(), "nope.json.zst"))
	assert.Zero(t, c.Len())
}

func TestOpen_CorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digests.json.zst")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	c := Open(path)
	assert.Zero(t, c.Len())
}

func TestLookup(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "track.mp3")
	require.NoError(t, os.WriteFile(file, []byte("abc"), 0644))

	c := Open(filepath.Join(dir, "digests.json.zst"))
	info := statFile(t, file)

	_, ok := c.Lookup(file, info)
	assert.False(t, ok)

	c.Record(file, info, testDigest)
	got, ok := c.Lookup(file, info)
	require.True(t, ok)
	assert.Equal(t, testDigest, got)
}

func TestLookup_StaleOnContentChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "track.mp3")
	require.NoError(t, os.WriteFile(file, []byte("abc"), 0644))

	c := Open(filepath.Join(dir, "digests.json.zst"))
	c.Record(file, statFile(t, file), testDigest)

	// Size change invalidates.
	require.NoError(t, os.WriteFile(file, []byte("abcdef"), 0644))
	_, ok := c.Lookup(file, statFile(t, file))
	assert.False(t, ok)

	// Same size, new mtime invalidates too.
	c.Record(file, statFile(t, file), testDigest)
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(file, later, later))
	_, ok = c.Lookup(file, statFile(t, file))
	assert.False(t, ok)
}

func TestForget(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "track.mp3")
	require.NoError(t, os.WriteFile(file, []byte("abc"), 0644))
	info := statFile(t, file)

	c := Open(filepath.Join(dir, "digests.json.zst"))
	c.Record(file, info, testDigest)
	c.Forget(file)

	_, ok := c.Lookup(file, info)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestSaveAndReopen(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "cache", "digests.json.zst")

	fileA := filepath.Join(dir, "a.mp3")
	fileB := filepath.Join(dir, "b.mp3")
	require.NoError(t, os.WriteFile(fileA, []byte("aaa"), 0644))
	require.NoError(t, os.WriteFile(fileB, []byte("bbb"), 0644))

	c := Open(snapshot)
	c.Record(fileA, statFile(t, fileA), testDigest)
	c.Record(fileB, statFile(t, fileB), testDigest)
	require.NoError(t, c.Save())

	// Snapshot is compressed on disk, not raw JSON.
	raw, err := os.ReadFile(snapshot)
	require.NoError(t, err)
	assert.NotEqual(t, byte('{'), raw[0])

	reopened := Open(snapshot)
	assert.Equal(t, 2, reopened.Len())
	got, ok := reopened.Lookup(fileA, statFile(t, fileA))
	require.True(t, ok)
	assert.Equal(t, testDigest, got)
}

func TestSave_NoopWhenClean(t *testing.T) {
	snapshot := filepath.Join(t.TempDir(), "digests.json.zst")

	c := Open(snapshot)
	require.NoError(t, c.Save())
	assert.NoFileExists(t, snapshot)
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, "audiohash")
	assert.True(t, filepath.IsAbs(path))
}
