package render

import "image/color"

// Global render configuration for colors and the logical canvas.
var (
	Foreground = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF} // #222222
	Background = color.RGBA{R: 0xE8, G: 0xE8, B: 0xE8, A: 0xFF} // #e8e8e8

	// Logical canvas size; scaled to the framebuffer.
	CanvasWidth  = 1280
	CanvasHeight = 720

	// FooterHeight is the band under the drawing that carries the share URL.
	FooterHeight = 120

	DefaultFontSize = 28.0

	DefaultDevice = "/dev/fb0"
)
