package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	rect = Normalize(rect)
	if 2*paddingPx >= rect.Dx() || 2*paddingPx >= rect.Dy() {
		c := image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
		return image.Rectangle{Min: c, Max: c}
	}
	return image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitRight splits rect into a left part and a right part rightWidthPx wide.
// rightWidthPx is clamped to [0, rect.Dx()].
func SplitRight(rect image.Rectangle, rightWidthPx int) (left image.Rectangle, right image.Rectangle) {
	rect = Normalize(rect)
	rightWidthPx = clamp(rightWidthPx, rect.Dx())
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X-rightWidthPx, rect.Max.Y)
	right = image.Rect(rect.Max.X-rightWidthPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// SplitBottom splits rect into a top part and a bottom part bottomHeightPx tall.
// bottomHeightPx is clamped to [0, rect.Dy()].
func SplitBottom(rect image.Rectangle, bottomHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	bottomHeightPx = clamp(bottomHeightPx, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y-bottomHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Max.Y-bottomHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// FitSquare returns the largest square that fits into rect, centered.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := rect.Dx()
	if rect.Dy() < size {
		size = rect.Dy()
	}
	x := rect.Min.X + (rect.Dx()-size)/2
	y := rect.Min.Y + (rect.Dy()-size)/2
	return image.Rect(x, y, x+size, y+size)
}

func clamp(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
