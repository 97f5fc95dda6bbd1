package display

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// PNGWriter saves preview images into a directory.
type PNGWriter struct {
	outputDir string
	prefix    string
	upscale   int
}

// NewPNGWriter creates a writer. Images are enlarged by upscale (nearest neighbour) when it is above one.
func NewPNGWriter(outputDir, prefix string, upscale int) *PNGWriter {
	return &PNGWriter{
		outputDir: outputDir,
		prefix:    prefix,
		upscale:   max(upscale, 1),
	}
}

// Filename returns the path Write would use for name.
func (w *PNGWriter) Filename(name string) string {
	filename := fmt.Sprintf("%s_%s.png", w.prefix, name)
	if w.prefix == "" {
		filename = name + ".png"
	}
	if w.outputDir != "" {
		filename = filepath.Join(w.outputDir, filename)
	}
	return filename
}

// Write encodes img as PNG and returns the file path.
func (w *PNGWriter) Write(name string, img image.Image) (string, error) {
	if w.outputDir != "" {
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := w.Filename(name)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, Upscale(img, w.upscale)); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

// Upscale enlarges img by an integer factor without smoothing.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
