package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCrop(t *testing.T) {
	tests := []struct {
		desc string
		in   CropInput
		want CropGeometry
	}{
		{
			desc: "scales by device pixel ratio and caps output dimension",
			in: CropInput{
				BitmapWidth: 4000, BitmapHeight: 2400,
				Rect:             Rect{X: 100, Y: 150, Width: 1200, Height: 600},
				DevicePixelRatio: 2,
				MaxDimension:     1100,
			},
			want: CropGeometry{SX: 200, SY: 300, SafeWidth: 2400, SafeHeight: 1200, OutputWidth: 1100, OutputHeight: 550},
		},
		{
			desc: "clamps crop area at the bitmap edge",
			in: CropInput{
				BitmapWidth: 500, BitmapHeight: 400,
				Rect:             Rect{X: 460, Y: 380, Width: 120, Height: 80},
				DevicePixelRatio: 1,
			},
			want: CropGeometry{SX: 460, SY: 380, SafeWidth: 40, SafeHeight: 20, OutputWidth: 40, OutputHeight: 20},
		},
		{
			desc: "defaults dpr and max dimension",
			in: CropInput{
				BitmapWidth: 3000, BitmapHeight: 3000,
				Rect: Rect{X: 10, Y: 20, Width: 2200, Height: 1100},
			},
			want: CropGeometry{SX: 10, SY: 20, SafeWidth: 2200, SafeHeight: 1100, OutputWidth: 1100, OutputHeight: 550},
		},
		{
			desc: "negative origin clamps to zero",
			in: CropInput{
				BitmapWidth: 200, BitmapHeight: 200,
				Rect:             Rect{X: -50, Y: -10, Width: 100, Height: 100},
				DevicePixelRatio: 1,
			},
			want: CropGeometry{SX: 0, SY: 0, SafeWidth: 100, SafeHeight: 100, OutputWidth: 100, OutputHeight: 100},
		},
		{
			desc: "zero sized rect becomes 1x1",
			in: CropInput{
				BitmapWidth: 200, BitmapHeight: 200,
				Rect:             Rect{X: 5, Y: 5},
				DevicePixelRatio: 1.5,
			},
			want: CropGeometry{SX: 8, SY: 8, SafeWidth: 1, SafeHeight: 1, OutputWidth: 1, OutputHeight: 1},
		},
		{
			desc: "fractional dpr rounds half up",
			in: CropInput{
				BitmapWidth: 1000, BitmapHeight: 1000,
				Rect:             Rect{X: 3, Y: 5, Width: 101, Height: 51},
				DevicePixelRatio: 1.5,
			},
			want: CropGeometry{SX: 5, SY: 8, SafeWidth: 152, SafeHeight: 77, OutputWidth: 152, OutputHeight: 77},
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			assert.Equal(t, test.want, ResolveCrop(test.in))
		})
	}
}

func TestResolveCrop_OutsideBitmap(t *testing.T) {
	g := ResolveCrop(CropInput{
		BitmapWidth: 100, BitmapHeight: 100,
		Rect:             Rect{X: 999, Y: 999, Width: 30, Height: 30},
		DevicePixelRatio: 1,
	})

	assert.Equal(t, 1, g.SafeWidth)
	assert.Equal(t, 1, g.SafeHeight)
	assert.Equal(t, 1, g.OutputWidth)
	assert.Equal(t, 1, g.OutputHeight)
	assert.Equal(t, 99, g.SX)
	assert.Equal(t, 99, g.SY)
}

func TestResolveCrop_InvalidDPR(t *testing.T) {
	for _, dpr := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		g := ResolveCrop(CropInput{
			BitmapWidth: 400, BitmapHeight: 400,
			Rect:             Rect{X: 10, Y: 10, Width: 50, Height: 40},
			DevicePixelRatio: dpr,
		})
		assert.Equal(t, CropGeometry{SX: 10, SY: 10, SafeWidth: 50, SafeHeight: 40, OutputWidth: 50, OutputHeight: 40}, g, "dpr=%v", dpr)
	}
}

// Sweeps a grid of inputs and checks the bounds invariants hold for all.
func TestResolveCrop_Invariants(t *testing.T) {
	bitmaps := [][2]int{{1, 1}, {100, 100}, {500, 400}, {4000, 2400}, {1, 3000}}
	rects := []Rect{
		{X: 0, Y: 0, Width: 0, Height: 0},
		{X: -100, Y: -100, Width: 50, Height: 50},
		{X: 10, Y: 10, Width: 5000, Height: 20},
		{X: 3999, Y: 2399, Width: 10, Height: 10},
		{X: 1e6, Y: 1e6, Width: 1e6, Height: 1e6},
		{X: 12.5, Y: 7.25, Width: 333.3, Height: 999.9},
	}
	dprs := []float64{0.5, 1, 1.25, 2, 3}
	maxDims := []int{1, 64, 1100, 1900}

	for _, b := range bitmaps {
		for _, r := range rects {
			for _, dpr := range dprs {
				for _, md := range maxDims {
					g := ResolveCrop(CropInput{
						BitmapWidth: b[0], BitmapHeight: b[1],
						Rect: r, DevicePixelRatio: dpr, MaxDimension: md,
					})
					if g.SX < 0 || g.SY < 0 {
						t.Fatalf("negative origin %+v for bitmap=%v rect=%+v", g, b, r)
					}
					if g.SafeWidth < 1 || g.SafeHeight < 1 {
						t.Fatalf("empty window %+v", g)
					}
					if g.SX+g.SafeWidth > b[0] || g.SY+g.SafeHeight > b[1] {
						t.Fatalf("window %+v exceeds bitmap %v (rect=%+v dpr=%v)", g, b, r, dpr)
					}
					if g.OutputWidth < 1 || g.OutputHeight < 1 || g.OutputWidth > md || g.OutputHeight > md {
						t.Fatalf("output %dx%d outside [1,%d]", g.OutputWidth, g.OutputHeight, md)
					}
				}
			}
		}
	}
}

func TestFitWithin(t *testing.T) {
	w, h := FitWithin(3800, 2000, 1900)
	assert.Equal(t, 1900, w)
	assert.Equal(t, 1000, h)

	w, h = FitWithin(640, 480, 1900)
	assert.Equal(t, 640, w, "never upscales")
	assert.Equal(t, 480, h)

	w, h = FitWithin(10000, 1, 100)
	assert.Equal(t, 100, w)
	assert.Equal(t, 1, h)
}

func TestScaleSize(t *testing.T) {
	w, h := ScaleSize(1100, 550, 0.8)
	assert.Equal(t, 880, w)
	assert.Equal(t, 440, h)

	w, h = ScaleSize(1, 1, 0.82)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}
