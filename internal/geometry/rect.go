// Package geometry converts page-space rectangles into bitmap crop windows
// and merges annotation regions into a single capture rectangle.
//
// Two coordinate spaces are involved:
//   - CSS-pixel space: coordinates as reported by page layout
//   - bitmap-pixel space: coordinates inside the captured raster, which is
//     CSS space scaled by the device pixel ratio
package geometry

import "math"

// Rect is an axis-aligned rectangle in CSS-pixel space.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Viewport describes the page viewport a region was recorded in.
type Viewport struct {
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	DevicePixelRatio float64 `json:"devicePixelRatio"`
}

// roundJS rounds half toward +Inf, so that -2.5 becomes -2 rather than -3.
// Layout coordinates come from the page in that convention and crop
// origins must agree with it.
func roundJS(v float64) float64 {
	return math.Floor(v + 0.5)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
