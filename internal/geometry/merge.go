package geometry

import "math"

// Fallback box synthesized around a region's anchor point when the region
// carries no explicit bounding box.
const (
	FallbackWidth   = 120
	FallbackHeight  = 80
	FallbackOffsetX = -60
	FallbackOffsetY = -40
)

// MergePadding is added to every side of the merged extent.
const MergePadding = 120

// Point is an anchor position in CSS-pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Region is one annotated area of the page.
type Region struct {
	Anchor   Point     `json:"anchor"`
	Box      *Rect     `json:"box,omitempty"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// ResolvedBox returns the explicit box, or the fallback box centered on the
// anchor.
func (r Region) ResolvedBox() Rect {
	if r.Box != nil {
		return *r.Box
	}
	return Rect{
		X:      r.Anchor.X + FallbackOffsetX,
		Y:      r.Anchor.Y + FallbackOffsetY,
		Width:  FallbackWidth,
		Height: FallbackHeight,
	}
}

// DevicePixelRatio returns the region's DPR, or 1 when unknown.
func (r Region) DevicePixelRatio() float64 {
	if r.Viewport != nil && r.Viewport.DevicePixelRatio > 0 {
		return r.Viewport.DevicePixelRatio
	}
	return DefaultDevicePixelRatio
}

// MergeBounds unions the boxes of all regions, pads the union by
// MergePadding and clamps it to the page origin and to the viewport of the
// first region. It reports false for an empty list or a non-finite extent.
//
// Only the first region's viewport is used for clamping, even when regions
// were recorded under different viewports.
func MergeBounds(regions []Region) (Rect, bool) {
	if len(regions) == 0 {
		return Rect{}, false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, r := range regions {
		box := r.ResolvedBox()
		minX = math.Min(minX, box.X)
		minY = math.Min(minY, box.Y)
		maxX = math.Max(maxX, box.Right())
		maxY = math.Max(maxY, box.Bottom())
	}
	if !isFinite(minX) || !isFinite(minY) || !isFinite(maxX) || !isFinite(maxY) {
		return Rect{}, false
	}

	left := math.Max(0, minX-MergePadding)
	top := math.Max(0, minY-MergePadding)
	right := maxX + MergePadding
	bottom := maxY + MergePadding

	if vp := regions[0].Viewport; vp != nil {
		// A zero dimension means the viewport size was never recorded.
		if vp.Width > 0 {
			right = math.Min(vp.Width, right)
		}
		if vp.Height > 0 {
			bottom = math.Min(vp.Height, bottom)
		}
	}

	return Rect{
		X:      left,
		Y:      top,
		Width:  math.Max(1, right-left),
		Height: math.Max(1, bottom-top),
	}, true
}
