package presskit

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
)

// ProcessedImage describes one image written by PrepareImages.
type ProcessedImage struct {
	Source   string
	Filename string
	Width    int
	Height   int
	Size     int
}

// ResizeImage decodes an image from src, downscales it to maxImageWidth if
// wider, and encodes it as JPEG.
func ResizeImage(src io.Reader) ([]byte, int, int, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxImageWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, 0, 0, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), w, h, nil
}

// PrepareImages walks srcDir for png/jpg/gif files and writes web-sized JPEG
// variants into dstDir, named after a slugified version of the source name.
// Existing outputs are overwritten; the operation is idempotent.
func PrepareImages(srcDir, dstDir string) ([]ProcessedImage, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("read images dir: %w", err)
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var processed []ProcessedImage
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case ".png", ".jpg", ".jpeg", ".gif":
		default:
			continue
		}
		src, err := os.Open(filepath.Join(srcDir, name))
		if err != nil {
			return processed, err
		}
		data, w, h, err := ResizeImage(src)
		src.Close()
		if err != nil {
			return processed, fmt.Errorf("%s: %w", name, err)
		}
		outName := slugifyFilename(name) + ".jpg"
		if err := os.WriteFile(filepath.Join(dstDir, outName), data, 0o644); err != nil {
			return processed, fmt.Errorf("write %s: %w", outName, err)
		}
		processed = append(processed, ProcessedImage{
			Source:   name,
			Filename: outName,
			Width:    w,
			Height:   h,
			Size:     len(data),
		})
	}
	return processed, nil
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return Slugify(base)
}
