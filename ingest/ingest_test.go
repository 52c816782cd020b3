package ingest_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/supernova/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is the PNG magic number, enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestIngestor_Files(t *testing.T) {
	t.Parallel()

	t.Run("encodes images with their mime type", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "photo.png", pngHeader)

		atts := ingest.New(nil).Files(path)

		require.Len(t, atts, 1)
		assert.Equal(t, "image/png", atts[0].MimeType)
		decoded, err := base64.StdEncoding.DecodeString(atts[0].Data)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, decoded)
	})

	t.Run("sniffs content when the extension is unknown", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "upload.tmp123", pngHeader)

		atts := ingest.New(nil).Files(path)

		require.Len(t, atts, 1)
		assert.Equal(t, "image/png", atts[0].MimeType)
	})

	t.Run("skips non-images and unreadable paths", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		first := writeFile(t, dir, "a.png", pngHeader)
		writeFile(t, dir, "notes.txt", []byte("plain text"))
		second := writeFile(t, dir, "b.png", pngHeader)

		atts := ingest.New(nil).Files(
			first,
			filepath.Join(dir, "notes.txt"),
			filepath.Join(dir, "missing.png"),
			second,
		)

		require.Len(t, atts, 2, "only the readable images survive")
	})

	t.Run("preserves selection order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		first := writeFile(t, dir, "first.png", pngHeader)
		second := writeFile(t, dir, "second.png", append(pngHeader, 0x01))

		atts := ingest.New(nil).Files(first, second)

		require.Len(t, atts, 2)
		assert.Equal(t, base64.StdEncoding.EncodeToString(pngHeader), atts[0].Data)
		assert.Equal(t, base64.StdEncoding.EncodeToString(append(pngHeader, 0x01)), atts[1].Data)
	})

	t.Run("no paths yields no attachments", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ingest.New(nil).Files())
	})
}
