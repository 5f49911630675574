package presskit

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestResizeImageDownscalesWideImages(t *testing.T) {
	src := encodePNG(t, 1600, 900)

	data, w, h, err := ResizeImage(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("ResizeImage failed: %v", err)
	}
	if w != maxImageWidth {
		t.Errorf("width = %d, want %d", w, maxImageWidth)
	}
	if h != 450 {
		t.Errorf("height = %d, want 450 (aspect preserved)", h)
	}
	decoded, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable JPEG: %v", err)
	}
	if decoded.Bounds().Dx() != maxImageWidth {
		t.Errorf("decoded width = %d, want %d", decoded.Bounds().Dx(), maxImageWidth)
	}
}

func TestResizeImageKeepsSmallImages(t *testing.T) {
	src := encodePNG(t, 300, 200)

	_, w, h, err := ResizeImage(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("ResizeImage failed: %v", err)
	}
	if w != 300 || h != 200 {
		t.Errorf("size = %dx%d, want 300x200 unchanged", w, h)
	}
}

func TestResizeImageRejectsGarbage(t *testing.T) {
	if _, _, _, err := ResizeImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPrepareImages(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := filepath.Join(t.TempDir(), "out")

	if err := os.WriteFile(filepath.Join(srcDir, "Hero Shot.png"), encodePNG(t, 1000, 500), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	processed, err := PrepareImages(srcDir, dstDir)
	if err != nil {
		t.Fatalf("PrepareImages failed: %v", err)
	}
	if len(processed) != 1 {
		t.Fatalf("processed %d files, want 1 (non-images skipped)", len(processed))
	}
	if processed[0].Filename != "hero-shot.jpg" {
		t.Errorf("Filename = %q, want hero-shot.jpg", processed[0].Filename)
	}
	if processed[0].Width != 800 {
		t.Errorf("Width = %d, want 800", processed[0].Width)
	}
	if _, err := os.Stat(filepath.Join(dstDir, "hero-shot.jpg")); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}
