// Package preview holds the state machine behind receipt and invoice
// previews: document-type inference, zoom and rotation, and the
// lifecycle of the temp file backing the preview. The temp file is a
// scarce resource: acquired when a preview opens, released on close, on
// replacement, and on teardown.
package preview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Kind is the viewer mode inferred from the file name.
type Kind int

// Viewer kinds. Uploaded receipts are assumed to be images unless the
// extension proves otherwise, so unknown extensions default to image.
const (
	KindImage Kind = iota
	KindDocument
)

func (k Kind) String() string {
	if k == KindDocument {
		return "document"
	}
	return "image"
}

// KindFor infers the viewer kind from a file name.
func KindFor(fileName string) Kind {
	if strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return KindDocument
	}
	return KindImage
}

// Zoom limits and step, matching the original viewer controls.
const (
	MinZoom  = 0.5
	MaxZoom  = 3.0
	ZoomStep = 0.25
)

// Viewer is the state of one open preview.
type Viewer struct {
	loadErr  error
	fileName string
	path     string
	tmpDir   string
	zoom     float64
	rotation int
	kind     Kind
	closed   bool
}

// NewViewer creates a viewer that stores its temp files under tmpDir
// (the OS temp dir when empty). No file is open yet.
func NewViewer(tmpDir string) *Viewer {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Viewer{tmpDir: tmpDir, zoom: 1.0}
}

// Open loads a new file into the viewer, releasing whatever was open
// before. Zoom and rotation reset to defaults for the new file. A read
// failure leaves the viewer in a distinct failed state; the caller can
// still offer a direct download as fallback.
func (v *Viewer) Open(fileName string, r io.Reader) error {
	v.release()

	v.fileName = fileName
	v.kind = KindFor(fileName)
	v.zoom = 1.0
	v.rotation = 0
	v.loadErr = nil
	v.closed = false

	path := filepath.Join(v.tmpDir, uuid.NewString()+filepath.Ext(fileName))
	f, err := os.Create(path)
	if err != nil {
		v.loadErr = fmt.Errorf("failed to create preview file: %w", err)
		return v.loadErr
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		v.loadErr = fmt.Errorf("failed to load %s: %w", fileName, err)
		return v.loadErr
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		v.loadErr = fmt.Errorf("failed to finalize preview file: %w", err)
		return v.loadErr
	}

	v.path = path
	return nil
}

// Close releases the temp file. Safe to call repeatedly and on a viewer
// that never loaded.
func (v *Viewer) Close() {
	v.release()
	v.closed = true
}

func (v *Viewer) release() {
	if v.path != "" {
		_ = os.Remove(v.path)
		v.path = ""
	}
}

// Failed reports whether the last Open could not load its resource.
func (v *Viewer) Failed() bool {
	return v.loadErr != nil
}

// Err returns the load error, nil when the preview is healthy.
func (v *Viewer) Err() error {
	return v.loadErr
}

// FileName returns the name of the open file.
func (v *Viewer) FileName() string {
	return v.fileName
}

// Path returns the temp file backing the preview, "" when nothing is
// loaded.
func (v *Viewer) Path() string {
	return v.path
}

// Kind returns the viewer mode for the open file.
func (v *Viewer) Kind() Kind {
	return v.kind
}

// Zoom returns the current zoom factor.
func (v *Viewer) Zoom() float64 {
	return v.zoom
}

// Rotation returns the current rotation in degrees.
func (v *Viewer) Rotation() int {
	return v.rotation
}

// ZoomIn increases zoom one step, clamped. Image view only.
func (v *Viewer) ZoomIn() {
	if v.kind != KindImage {
		return
	}
	v.zoom += ZoomStep
	if v.zoom > MaxZoom {
		v.zoom = MaxZoom
	}
}

// ZoomOut decreases zoom one step, clamped. Image view only.
func (v *Viewer) ZoomOut() {
	if v.kind != KindImage {
		return
	}
	v.zoom -= ZoomStep
	if v.zoom < MinZoom {
		v.zoom = MinZoom
	}
}

// Rotate turns the image 90 degrees clockwise. Image view only.
func (v *Viewer) Rotate() {
	if v.kind != KindImage {
		return
	}
	v.rotation = (v.rotation + 90) % 360
}

// SaveTo copies the loaded file to dest, the direct-download fallback.
func (v *Viewer) SaveTo(dest string) error {
	if v.path == "" {
		return fmt.Errorf("no preview loaded")
	}

	src, err := os.Open(v.path)
	if err != nil {
		return fmt.Errorf("failed to open preview file: %w", err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return out.Close()
}
