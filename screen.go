package main

import (
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/massung/chip8vm/chip8"
	"github.com/massung/chip8vm/internal/session"
)

var (
	Screen *sdl.Texture
)

/// InitScreen creates the render target for the CHIP-8 video memory.
///
func InitScreen() error {
	var err error

	// create a render target for the display
	Screen, err = Renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.Width, chip8.Height)
	if err != nil {
		return err
	}

	return RefreshScreen()
}

/// RefreshScreen with the CHIP-8 video memory.
///
func RefreshScreen() error {
	if err := Renderer.SetRenderTarget(Screen); err != nil {
		return err
	}

	// restore the render target
	defer Renderer.SetRenderTarget(nil)

	// the background color for the screen
	bg, fg := session.Background, session.Foreground

	_ = Renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	_ = Renderer.Clear()

	// set the pixel color
	_ = Renderer.SetDrawColor(fg.R, fg.G, fg.B, fg.A)

	frame := Session.VM.Screen()
	w, h := Session.VM.GetResolution()

	// draw all the pixels
	for p := uint(0); p < w*h; p++ {
		x, y := p%w, p/w

		if frame.Pixel(x, y) {
			_ = Renderer.DrawPoint(int32(x), int32(y))
		}
	}

	return nil
}

/// CopyScreen to the render target.
///
func CopyScreen(x, y, w, h int32) {
	vw, vh := Session.VM.GetResolution()

	// source area of the screen target
	src := sdl.Rect{
		W: int32(vw),
		H: int32(vh),
	}

	// stretch the render target to fit
	_ = Renderer.Copy(Screen, &src, &sdl.Rect{X: x, Y: y, W: w, H: h})
}

/// Screenshot saves the display next to the working directory.
///
func Screenshot() {
	dir, err := os.Getwd()
	if err != nil {
		Session.Log.WithError(err).Error("screenshot")
		return
	}

	if _, err := Session.Screenshot(dir, int(Scale)); err != nil {
		Session.Log.WithError(err).Error("screenshot")
	}
}
