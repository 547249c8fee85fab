package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moodboard/internal/app/feedback/entity"
	"moodboard/internal/app/feedback/infrastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	return NewLocalStorage(dir, "/uploads", 5*1024*1024, []string{"image/jpeg", "image/png", "image/webp"}), dir
}

func testUpload(name, contentType string, content []byte) *entity.ImageUpload {
	return &entity.ImageUpload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Content:     bytes.NewReader(content),
	}
}

func assertNoFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return
	}
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_RejectsMissingFile(t *testing.T) {
	storage, dir := newTestStorage(t)

	_, err := storage.Save(context.Background(), nil)

	var vErr *infrastructure.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "No file provided", vErr.Reason)
	assertNoFiles(t, dir)
}

func TestSave_RejectsOversizedFile(t *testing.T) {
	storage, dir := newTestStorage(t)

	upload := testUpload("big.jpg", "image/jpeg", []byte("x"))
	upload.Size = 6 * 1024 * 1024 // заявленный размер, контент не читается

	_, err := storage.Save(context.Background(), upload)

	var vErr *infrastructure.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "File size exceeds 5MB limit", vErr.Reason)
	assertNoFiles(t, dir)
}

func TestSave_RejectsDisallowedType(t *testing.T) {
	storage, dir := newTestStorage(t)

	upload := testUpload("anim.gif", "image/gif", []byte("GIF89a"))

	_, err := storage.Save(context.Background(), upload)

	var vErr *infrastructure.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Invalid file type. Only JPG, PNG, and WebP are allowed", vErr.Reason)
	assertNoFiles(t, dir)
}

func TestSave_WritesFileAndReturnsPublicPath(t *testing.T) {
	storage, dir := newTestStorage(t)

	content := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	publicPath, err := storage.Save(context.Background(), testUpload("photo.png", "image/png", content))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicPath, "/uploads/"))
	assert.True(t, strings.HasSuffix(publicPath, ".png"))

	fileName := strings.TrimPrefix(publicPath, "/uploads/")
	written, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestSave_DefaultsExtension(t *testing.T) {
	storage, _ := newTestStorage(t)

	publicPath, err := storage.Save(context.Background(), testUpload("noext", "image/jpeg", []byte("jpeg")))

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(publicPath, ".jpg"))
}

func TestSave_UniqueNames(t *testing.T) {
	storage, _ := newTestStorage(t)

	first, err := storage.Save(context.Background(), testUpload("a.jpg", "image/jpeg", []byte("one")))
	require.NoError(t, err)
	second, err := storage.Save(context.Background(), testUpload("a.jpg", "image/jpeg", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemove(t *testing.T) {
	storage, dir := newTestStorage(t)

	publicPath, err := storage.Save(context.Background(), testUpload("gone.jpg", "image/jpeg", []byte("bye")))
	require.NoError(t, err)

	require.NoError(t, storage.Remove(context.Background(), publicPath))
	assertNoFiles(t, dir)

	// Повторное удаление не ошибка
	assert.NoError(t, storage.Remove(context.Background(), publicPath))
}
