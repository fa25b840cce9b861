package triface

import "github.com/esimov/triface/utils"

// Rectangle is an axis-aligned, integer-bounded region in pixel space. It
// follows the half-open convention of the standard image package: Min is
// inside the rectangle, Max is not.
type Rectangle struct {
	MinX, MinY, MaxX, MaxY int
}

// Rect is a convenience constructor normalising the corners so MinX<=MaxX
// and MinY<=MaxY regardless of argument order.
func Rect(x0, y0, x1, y1 int) Rectangle {
	return Rectangle{
		MinX: utils.Min(x0, x1), MinY: utils.Min(y0, y1),
		MaxX: utils.Max(x0, x1), MaxY: utils.Max(y0, y1),
	}
}

// Dx returns the width of the rectangle.
func (r Rectangle) Dx() int { return r.MaxX - r.MinX }

// Dy returns the height of the rectangle.
func (r Rectangle) Dy() int { return r.MaxY - r.MinY }

// TopLeft returns the (x, y) pixel coordinate of the top-left corner.
func (r Rectangle) TopLeft() (x, y float64) { return float64(r.MinX), float64(r.MinY) }

// TopRight returns the (x, y) pixel coordinate of the top-right corner.
func (r Rectangle) TopRight() (x, y float64) { return float64(r.MaxX), float64(r.MinY) }

// BottomRight returns the (x, y) pixel coordinate of the bottom-right corner.
func (r Rectangle) BottomRight() (x, y float64) { return float64(r.MaxX), float64(r.MaxY) }

// Contains reports whether the integer pixel (x, y) lies within the
// rectangle's half-open bounds.
func (r Rectangle) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}
