package session

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"

	"github.com/massung/chip8vm/chip8"
)

var (
	// Background is the color of unlit pixels.
	Background = color.RGBA{R: 143, G: 145, B: 133, A: 255}

	// Foreground is the color of lit pixels.
	Foreground = color.RGBA{R: 17, G: 29, B: 43, A: 255}
)

// Image renders a frame with each pixel scaled to a square of scale.
func Image(fb *chip8.Framebuffer, scale int) *image.Paletted {
	if scale < 1 {
		scale = 1
	}

	img := image.NewPaletted(image.Rect(0, 0, chip8.Width*scale, chip8.Height*scale), color.Palette{Background, Foreground})

	for y := 0; y < chip8.Height*scale; y++ {
		for x := 0; x < chip8.Width*scale; x++ {
			if fb.Pixel(uint(x/scale), uint(y/scale)) {
				img.SetColorIndex(x, y, 1)
			}
		}
	}

	return img
}

// Screenshot saves the display as a BMP in dir and returns its path.
func (s *Session) Screenshot(dir string, scale int) (string, error) {
	name := "chip8"
	if s.Path != "" {
		name = strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.bmp", name, time.Now().Format("20060102-150405.000")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	frame := s.VM.Screen()

	if err := bmp.Encode(f, Image(&frame, scale)); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("screenshot: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	s.Log.WithField("file", path).Info("screenshot saved")
	return path, nil
}
