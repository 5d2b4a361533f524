package surface

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// Background is the blank surface color; the eraser paints with it.
	Background = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	DefaultColor = color.RGBA{A: 0xFF}
)

var ErrInvalidColor = errors.New("invalid color")

// DefaultPalette is the fixed preset set offered by the UI.
var DefaultPalette = []string{"#000000", "#ff0000", "#00ff00", "#0000ff"}

// ParseColor parses "#rrggbb" or "#rgb" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s != "" && s[0] != '#' {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("%w %q: want #rgb or #rrggbb", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

// FormatColor renders c as "#rrggbb", dropping alpha.
func FormatColor(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func opaque(c color.Color) color.RGBA {
	rgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: 0xFF}
}
