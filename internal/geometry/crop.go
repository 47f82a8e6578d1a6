package geometry

import "math"

// Defaults used when a CropInput leaves a field unset.
const (
	DefaultDevicePixelRatio = 1.0
	DefaultMaxDimension     = 1100
)

// CropInput holds the parameters for ResolveCrop.
type CropInput struct {
	BitmapWidth      int
	BitmapHeight     int
	Rect             Rect
	DevicePixelRatio float64 // <= 0 means DefaultDevicePixelRatio
	MaxDimension     int     // <= 0 means DefaultMaxDimension
}

// CropGeometry is a source window in bitmap pixels plus the size it is
// rendered at.
//
// SX+SafeWidth never exceeds the bitmap width (likewise for height),
// SafeWidth/SafeHeight are at least 1, and OutputWidth/OutputHeight lie
// in [1, MaxDimension].
type CropGeometry struct {
	SX           int `json:"sx"`
	SY           int `json:"sy"`
	SafeWidth    int `json:"safeWidth"`
	SafeHeight   int `json:"safeHeight"`
	OutputWidth  int `json:"outputWidth"`
	OutputHeight int `json:"outputHeight"`
}

// ResolveCrop maps a CSS-pixel rectangle onto a bitmap of the given size.
// It never fails: a rectangle that falls entirely outside the bitmap
// degrades to a 1x1 window and the output is only ever scaled down.
func ResolveCrop(in CropInput) CropGeometry {
	dpr := in.DevicePixelRatio
	if !(dpr > 0) || math.IsInf(dpr, 0) {
		dpr = DefaultDevicePixelRatio
	}
	maxDim := in.MaxDimension
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}

	sx := maxInt(0, toInt(roundJS(in.Rect.X*dpr)))
	sy := maxInt(0, toInt(roundJS(in.Rect.Y*dpr)))
	sw := maxInt(1, toInt(roundJS(in.Rect.Width*dpr)))
	sh := maxInt(1, toInt(roundJS(in.Rect.Height*dpr)))

	// A 1x1 window at an origin past the bitmap edge would still read out
	// of bounds, so the origin is pulled back inside the bitmap as well.
	if in.BitmapWidth > 0 && sx > in.BitmapWidth-1 {
		sx = in.BitmapWidth - 1
	}
	if in.BitmapHeight > 0 && sy > in.BitmapHeight-1 {
		sy = in.BitmapHeight - 1
	}

	safeW := maxInt(1, minInt(sw, in.BitmapWidth-sx))
	safeH := maxInt(1, minInt(sh, in.BitmapHeight-sy))

	outW, outH := FitWithin(safeW, safeH, maxDim)

	return CropGeometry{
		SX:           sx,
		SY:           sy,
		SafeWidth:    safeW,
		SafeHeight:   safeH,
		OutputWidth:  outW,
		OutputHeight: outH,
	}
}

// FitWithin scales w x h down, preserving aspect ratio, so that neither
// side exceeds maxDim. It never scales up. Both results are at least 1.
func FitWithin(w, h, maxDim int) (int, int) {
	scale := 1.0
	if longest := maxInt(w, h); longest > 0 && maxDim > 0 {
		scale = math.Min(1, float64(maxDim)/float64(longest))
	}
	return ScaleSize(w, h, scale)
}

// ScaleSize multiplies both sides by scale and rounds, keeping each side
// at least 1 pixel.
func ScaleSize(w, h int, scale float64) (int, int) {
	return maxInt(1, toInt(roundJS(float64(w)*scale))),
		maxInt(1, toInt(roundJS(float64(h)*scale)))
}

// toInt converts a rounded float to int, mapping NaN to 0 and saturating
// at the int32 range so overflow cannot wrap a clamp.
func toInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
