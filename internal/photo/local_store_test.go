package photo

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxWidth int) (Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads", maxWidth, zerolog.Nop())
	require.NoError(t, err)
	return store, dir
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLocalStore_SaveReturnsPublicURL(t *testing.T) {
	store, dir := newTestStore(t, 0)

	url, err := store.Save(context.Background(), "kaju katli.jpg", strings.NewReader("payload"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"), url)
	// Spaces in the original name are sanitised away
	assert.NotContains(t, url, " ")
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestLocalStore_DownscalesWideImages(t *testing.T) {
	store, dir := newTestStore(t, 100)

	url, err := store.Save(context.Background(), "wide.png", bytes.NewReader(pngBytes(t, 400, 200)))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	f, err := os.Open(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	defer f.Close()

	img, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 100, img.Bounds().Dx())
	// Aspect ratio preserved
	assert.Equal(t, 50, img.Bounds().Dy())
	assert.NotEmpty(t, url)
}

func TestLocalStore_KeepsSmallImages(t *testing.T) {
	store, dir := newTestStore(t, 1200)

	original := pngBytes(t, 50, 50)
	_, err := store.Save(context.Background(), "small.png", bytes.NewReader(original))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)

	assert.Equal(t, original, data)
}

func TestLocalStore_NonImageStoredVerbatim(t *testing.T) {
	store, dir := newTestStore(t, 100)

	_, err := store.Save(context.Background(), "notes.txt", strings.NewReader("plain text"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "plain text", string(data))
}

func TestLocalStore_Delete(t *testing.T) {
	store, dir := newTestStore(t, 0)
	ctx := context.Background()

	url, err := store.Save(ctx, "kaju.jpg", strings.NewReader("payload"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, url))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Deleting again is a no-op
	assert.NoError(t, store.Delete(ctx, url))
	// As is deleting nothing
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestLocalStore_DeleteIgnoresPathTraversal(t *testing.T) {
	store, dir := newTestStore(t, 0)

	outside := filepath.Join(filepath.Dir(dir), "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))
	t.Cleanup(func() { os.Remove(outside) })

	// Only the base name is honoured, so this resolves inside the store dir
	require.NoError(t, store.Delete(context.Background(), "/uploads/../outside.txt"))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

func TestStoredName(t *testing.T) {
	name := storedName("my photo (1).jpeg")
	assert.Regexp(t, `^my_photo__1__\d+\.jpeg$`, name)
}
