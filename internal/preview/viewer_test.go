package preview

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFor(t *testing.T) {
	tests := []struct {
		fileName string
		want     Kind
	}{
		{"factura.pdf", KindDocument},
		{"FACTURA.PDF", KindDocument},
		{"recibo.jpg", KindImage},
		{"recibo.png", KindImage},
		{"recibo.heic", KindImage},
		{"recibo", KindImage},
		{"archive.tar.gz", KindImage},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KindFor(tt.fileName), tt.fileName)
	}
}

func TestOpenCreatesAndCloseRemovesTempFile(t *testing.T) {
	v := NewViewer(t.TempDir())

	require.NoError(t, v.Open("recibo.jpg", strings.NewReader("image bytes")))
	require.FileExists(t, v.Path())
	assert.Equal(t, KindImage, v.Kind())
	assert.Equal(t, "recibo.jpg", v.FileName())
	assert.False(t, v.Failed())

	path := v.Path()
	v.Close()
	assert.NoFileExists(t, path)
	assert.Empty(t, v.Path())

	// Idempotent.
	v.Close()
}

func TestOpenReplacesPreviousFileAndResetsControls(t *testing.T) {
	v := NewViewer(t.TempDir())

	require.NoError(t, v.Open("a.jpg", strings.NewReader("a")))
	first := v.Path()
	v.ZoomIn()
	v.ZoomIn()
	v.Rotate()
	require.Equal(t, 1.5, v.Zoom())
	require.Equal(t, 90, v.Rotation())

	require.NoError(t, v.Open("b.jpg", strings.NewReader("b")))
	assert.NoFileExists(t, first, "replaced preview must release its temp file")
	require.FileExists(t, v.Path())
	assert.Equal(t, 1.0, v.Zoom(), "zoom resets for a new file")
	assert.Equal(t, 0, v.Rotation(), "rotation resets for a new file")
}

func TestZoomClamps(t *testing.T) {
	v := NewViewer(t.TempDir())
	require.NoError(t, v.Open("a.jpg", strings.NewReader("a")))
	defer v.Close()

	for i := 0; i < 20; i++ {
		v.ZoomIn()
	}
	assert.Equal(t, MaxZoom, v.Zoom())

	for i := 0; i < 20; i++ {
		v.ZoomOut()
	}
	assert.Equal(t, MinZoom, v.Zoom())
}

func TestRotateWrapsAt360(t *testing.T) {
	v := NewViewer(t.TempDir())
	require.NoError(t, v.Open("a.jpg", strings.NewReader("a")))
	defer v.Close()

	for _, want := range []int{90, 180, 270, 0, 90} {
		v.Rotate()
		assert.Equal(t, want, v.Rotation())
	}
}

func TestDocumentViewIgnoresImageControls(t *testing.T) {
	v := NewViewer(t.TempDir())
	require.NoError(t, v.Open("factura.pdf", strings.NewReader("%PDF-1.4")))
	defer v.Close()

	v.ZoomIn()
	v.Rotate()
	assert.Equal(t, 1.0, v.Zoom())
	assert.Equal(t, 0, v.Rotation())
	assert.Equal(t, KindDocument, v.Kind())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestFailedLoadEntersErrorState(t *testing.T) {
	dir := t.TempDir()
	v := NewViewer(dir)

	err := v.Open("recibo.jpg", failingReader{})
	require.Error(t, err)
	assert.True(t, v.Failed())
	assert.Error(t, v.Err())
	assert.Empty(t, v.Path())

	// No temp file may leak from the failed load.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// A successful re-open clears the error state.
	require.NoError(t, v.Open("recibo.jpg", strings.NewReader("ok")))
	assert.False(t, v.Failed())
	v.Close()
}

func TestSaveToCopiesPreview(t *testing.T) {
	v := NewViewer(t.TempDir())
	require.NoError(t, v.Open("recibo.jpg", strings.NewReader("receipt content")))
	defer v.Close()

	dest := filepath.Join(t.TempDir(), "out.jpg")
	require.NoError(t, v.SaveTo(dest))

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "receipt content", string(content))
}

func TestSaveToWithoutLoadFails(t *testing.T) {
	v := NewViewer(t.TempDir())
	assert.Error(t, v.SaveTo(filepath.Join(t.TempDir(), "out.jpg")))
}
