package evidence

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*DiskStore
	failOn  string
	deleted []string
}

func (f *failingStore) Save(ctx context.Context, up Upload) (Stored, error) {
	if up.Filename == f.failOn {
		return Stored{}, errors.New("disk full")
	}
	return f.DiskStore.Save(ctx, up)
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.DiskStore.Delete(ctx, key)
}

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/media")
	require.NoError(t, err)

	s, err := store.Save(context.Background(), Upload{Filename: "photo.jpg", ContentType: "image/jpeg", Body: strings.NewReader("jpegdata")})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(s.URL, "/media/"))
	assert.True(t, strings.HasSuffix(s.Key, "_photo.jpg"))
	assert.Equal(t, "image/jpeg", s.ContentType)

	b, err := os.ReadFile(filepath.Join(dir, s.Key))
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(b))
}

func TestDiskStore_SameNameDoesNotCollide(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/media")
	require.NoError(t, err)

	a, err := store.Save(context.Background(), Upload{Filename: "doc.pdf", Body: strings.NewReader("a")})
	require.NoError(t, err)
	b, err := store.Save(context.Background(), Upload{Filename: "doc.pdf", Body: strings.NewReader("b")})
	require.NoError(t, err)

	assert.NotEqual(t, a.URL, b.URL)
}

func TestDiskStore_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/media")
	require.NoError(t, err)

	s, err := store.Save(context.Background(), Upload{Filename: "../../etc/passwd", Body: strings.NewReader("x")})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(s.Key, "_passwd"))
	_, err = os.Stat(filepath.Join(dir, s.Key))
	assert.NoError(t, err)
}

func TestDiskStore_DeleteMissingFile(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/media")
	require.NoError(t, err)
	assert.NoError(t, store.Delete(context.Background(), "nope"))
}

func TestSaveAll(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/media")
	require.NoError(t, err)

	stored, err := SaveAll(context.Background(), store, []Upload{
		{Filename: "a.txt", Body: bytes.NewBufferString("a")},
		{Filename: "b.txt", Body: bytes.NewBufferString("b")},
	})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestSaveAll_RollsBackOnFailure(t *testing.T) {
	dir := t.TempDir()
	disk, err := NewDiskStore(dir, "/media")
	require.NoError(t, err)
	store := &failingStore{DiskStore: disk, failOn: "bad.mp4"}

	stored, err := SaveAll(context.Background(), store, []Upload{
		{Filename: "good.jpg", Body: bytes.NewBufferString("a")},
		{Filename: "bad.mp4", Body: bytes.NewBufferString("b")},
	})

	assert.Nil(t, stored)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad.mp4"`)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, store.deleted, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExtOf(t *testing.T) {
	assert.Equal(t, ".jpg", extOf("a.jpg"))
	assert.Equal(t, "", extOf("noext"))
	assert.Equal(t, "", extOf(".hidden"))
}
