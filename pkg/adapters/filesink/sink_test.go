package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/gridshow/pkg/mocks"
	"github.com/user/gridshow/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveLayoutJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	data := []byte(`{"columns": []}`)
	if err := sink.SaveLayoutJSON(data); err != nil {
		t.Fatalf("SaveLayoutJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "layout.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	if err := sink.SaveFrame(3, image.NewRGBA(image.Rect(0, 0, 10, 10))); err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "frames", "frame-0003.png")
	if _, ok := fs.GetFile(expectedPath); !ok {
		t.Errorf("expected frame at %s, got %v", expectedPath, fs.Paths())
	}
}

func TestSink_SaveOverlayFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	if err := sink.SaveOverlayFrame("drag name/1", image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("SaveOverlayFrame failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "overlay", "drag-name-1.png")
	if _, ok := fs.GetFile(expectedPath); !ok {
		t.Errorf("expected overlay frame at %s, got %v", expectedPath, fs.Paths())
	}
}

func TestSink_EncodeError(t *testing.T) {
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	sink := New(testBaseDir, mocks.NewFileSystem(), renderer)

	if err := sink.SaveFrame(0, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected encode error to propagate")
	}
}
