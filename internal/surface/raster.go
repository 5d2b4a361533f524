package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Point is a surface-local position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one committed straight line of a stroke.
type Segment struct {
	From  Point
	To    Point
	Color color.RGBA
	Width float64
}

// Raster is the pixel buffer strokes are composited onto.
type Raster interface {
	Bounds() image.Rectangle
	// StrokeSegment draws seg with round caps and joins.
	StrokeSegment(seg Segment)
	// Fill replaces every pixel with c.
	Fill(c color.Color)
	// Snapshot returns a copy of the current pixels.
	Snapshot() *image.RGBA
}

const (
	// miterLimit only matters for miter joins; round joins ignore it.
	miterLimit = 4
	// maxStrokeWidth keeps every coordinate handed to the dasher well inside
	// the range of fixed.Int26_6.
	maxStrokeWidth = 1 << 16
)

// RGBARaster rasterizes segments into an *image.RGBA using rasterx.
type RGBARaster struct {
	img    *image.RGBA
	dasher *rasterx.Dasher
}

var _ Raster = (*RGBARaster)(nil)

func NewRGBARaster(width, height int, background color.Color) *RGBARaster {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	r := &RGBARaster{img: img, dasher: rasterx.NewDasher(width, height, scanner)}
	r.Fill(background)
	return r
}

func (r *RGBARaster) Bounds() image.Rectangle { return r.img.Bounds() }

func (r *RGBARaster) StrokeSegment(seg Segment) {
	if seg.Width <= 0 || !finite(seg.Width) {
		return
	}
	if seg.Width > maxStrokeWidth {
		seg.Width = maxStrokeWidth
	}
	seg, ok := clipSegment(seg, r.img.Bounds())
	if !ok {
		return
	}
	r.dasher.SetStroke(toFixed(seg.Width), toFixed(miterLimit),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	r.dasher.Start(toFixedPoint(seg.From))
	if seg.From == seg.To {
		// A zero-length line still leaves a round dot, like a canvas lineTo to the same point.
		r.dasher.Line(toFixedPoint(Point{X: seg.To.X + 1.0/64, Y: seg.To.Y}))
	} else {
		r.dasher.Line(toFixedPoint(seg.To))
	}
	r.dasher.Stop(false)
	r.dasher.SetColor(seg.Color)
	r.dasher.Draw()
	r.dasher.Clear()
}

func (r *RGBARaster) Fill(c color.Color) {
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (r *RGBARaster) Snapshot() *image.RGBA {
	out := image.NewRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}

// clipSegment trims seg to bounds grown by the stroke width, so the visible part
// is unchanged while endpoints far off the surface cannot overflow 26.6 fixed point.
// It reports false when nothing of the stroke can reach the surface.
func clipSegment(seg Segment, bounds image.Rectangle) (Segment, bool) {
	from, to := seg.From, seg.To
	if !finite(from.X) || !finite(from.Y) || !finite(to.X) || !finite(to.Y) {
		return seg, false
	}
	minX, minY := float64(bounds.Min.X)-seg.Width, float64(bounds.Min.Y)-seg.Width
	maxX, maxY := float64(bounds.Max.X)+seg.Width, float64(bounds.Max.Y)+seg.Width

	// Liang-Barsky against the grown rectangle.
	dx, dy := to.X-from.X, to.Y-from.Y
	if !finite(dx) || !finite(dy) {
		return seg, false
	}
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, from.X - minX},
		{dx, maxX - from.X},
		{-dy, from.Y - minY},
		{dy, maxY - from.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return seg, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return seg, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return seg, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	if t0 > 0 {
		seg.From = Point{X: from.X + t0*dx, Y: from.Y + t0*dy}
	}
	if t1 < 1 {
		seg.To = Point{X: from.X + t1*dx, Y: from.Y + t1*dy}
	}
	return seg, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func toFixedPoint(p Point) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(p.X), Y: toFixed(p.Y)}
}
