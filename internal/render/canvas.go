package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Canvas is the offscreen logical frame screens draw into. It implements Drawer.
type Canvas struct {
	img   *image.RGBA
	font  *truetype.Font
	faces map[float64]font.Face
}

var _ Drawer = (*Canvas)(nil)

// NewCanvas allocates a width x height frame using the Go regular font for text.
func NewCanvas(width, height int) (*Canvas, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		font:  f,
		faces: map[float64]font.Face{},
	}, nil
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) FillBackground() {
	c.FillRect(c.img.Bounds(), Background)
}

func (c *Canvas) FillRect(rect image.Rectangle, col color.Color) {
	draw.Draw(c.img, rect.Intersect(c.img.Bounds()), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *Canvas) face(size float64) font.Face {
	if size <= 0 {
		size = DefaultFontSize
	}
	if face, ok := c.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(c.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	c.faces[size] = face
	return face
}

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	face := c.face(style.Size)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return TextMetrics{
		Width:      font.MeasureString(face, text).Ceil(),
		Height:     ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
		LineHeight: metrics.Height.Ceil(),
	}
}

// DrawText renders a single line with its top edge at y.
func (c *Canvas) DrawText(text string, x, y int, style TextStyle) TextMetrics {
	m := c.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= m.Width / 2
	case TextAlignRight:
		x -= m.Width
	}
	fg := style.Color
	if fg == nil {
		fg = Foreground
	}
	size := style.Size
	if size <= 0 {
		size = DefaultFontSize
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(c.font)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(c.img.Bounds())
	ctx.SetDst(c.img)
	ctx.SetSrc(image.NewUniform(fg))
	_, _ = ctx.DrawString(text, freetype.Pt(x, y+m.Ascent))
	return m
}

// DrawImageInRect scales img into rect. Fit keeps the aspect ratio and centers
// the result, Fill crops to cover rect, Stretch ignores the aspect ratio.
func (c *Canvas) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() {
		return
	}
	var scaled *image.NRGBA
	switch mode {
	case ScaleModeFill:
		scaled = imaging.Fill(img, rect.Dx(), rect.Dy(), imaging.Center, imaging.Linear)
	case ScaleModeStretch:
		scaled = imaging.Resize(img, rect.Dx(), rect.Dy(), imaging.Linear)
	default:
		scaled = fitInside(img, rect.Dx(), rect.Dy())
	}
	size := scaled.Bounds().Size()
	origin := image.Pt(rect.Min.X+(rect.Dx()-size.X)/2, rect.Min.Y+(rect.Dy()-size.Y)/2)
	draw.Draw(c.img, image.Rectangle{Min: origin, Max: origin.Add(size)}, scaled, scaled.Bounds().Min, draw.Over)
}

// fitInside is imaging.Fit without its refusal to upscale: a small drawing
// surface should still fill the kiosk screen.
func fitInside(img image.Image, maxW, maxH int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return imaging.New(0, 0, color.Transparent)
	}
	w, h := maxW, b.Dy()*maxW/b.Dx()
	if h > maxH {
		w, h = b.Dx()*maxH/b.Dy(), maxH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == b.Dx() && h == b.Dy() {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, w, h, imaging.Linear)
}
