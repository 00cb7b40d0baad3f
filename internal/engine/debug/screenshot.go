// Package debug provides developer utilities for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes framebuffer captures as timestamped PNG files.
type Screenshots struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshots creates a capture handler writing to outputDir. An empty
// outputDir writes to the working directory.
func NewScreenshots(outputDir, prefix string) *Screenshots {
	return &Screenshots{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Filename returns the path the next capture would be written to.
func (s *Screenshots) Filename(scene string) string {
	timestamp := s.now().Format("2006-01-02_15-04-05.000")
	name := fmt.Sprintf("%s_%s_%s.png", s.prefix, scene, timestamp)
	if s.outputDir != "" {
		name = filepath.Join(s.outputDir, name)
	}
	return name
}

// Save writes bottom-up RGBA pixels (as read back from OpenGL) to a PNG,
// flipping them upright. It returns the file written.
func (s *Screenshots) Save(scene string, pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("empty framebuffer %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}

	filename := s.Filename(scene)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, file.Close()
}
