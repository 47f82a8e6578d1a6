package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxRegion(x, y, w, h float64, vp *Viewport) Region {
	return Region{
		Anchor:   Point{X: x, Y: y},
		Box:      &Rect{X: x, Y: y, Width: w, Height: h},
		Viewport: vp,
	}
}

func TestMergeBounds_Empty(t *testing.T) {
	_, ok := MergeBounds(nil)
	assert.False(t, ok)

	_, ok = MergeBounds([]Region{})
	assert.False(t, ok)
}

func TestMergeBounds_ClampsToViewport(t *testing.T) {
	vp := &Viewport{Width: 300, Height: 250, DevicePixelRatio: 1}
	got, ok := MergeBounds([]Region{
		boxRegion(20, 30, 50, 50, vp),
		boxRegion(240, 210, 40, 30, vp),
	})

	require.True(t, ok)
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 300, Height: 250}, got)
}

func TestMergeBounds_PadsWithoutViewport(t *testing.T) {
	got, ok := MergeBounds([]Region{
		boxRegion(500, 400, 100, 50, nil),
		boxRegion(700, 600, 20, 20, nil),
	})

	require.True(t, ok)
	assert.Equal(t, Rect{X: 380, Y: 280, Width: 460, Height: 460}, got)
}

func TestMergeBounds_AnchorFallback(t *testing.T) {
	got, ok := MergeBounds([]Region{{Anchor: Point{X: 400, Y: 300}}})

	require.True(t, ok)
	// Fallback box is {340,260,120,80}, then padded by 120 on each side.
	assert.Equal(t, Rect{X: 220, Y: 140, Width: 360, Height: 320}, got)
}

func TestMergeBounds_FirstViewportWins(t *testing.T) {
	got, ok := MergeBounds([]Region{
		boxRegion(100, 100, 10, 10, &Viewport{Width: 400, Height: 300}),
		boxRegion(900, 700, 10, 10, &Viewport{Width: 2000, Height: 2000}),
	})

	require.True(t, ok)
	assert.Equal(t, 400.0, got.Right())
	assert.Equal(t, 300.0, got.Bottom())
}

func TestMergeBounds_ZeroViewportIsIgnored(t *testing.T) {
	got, ok := MergeBounds([]Region{
		boxRegion(200, 200, 10, 10, &Viewport{}),
	})

	require.True(t, ok)
	assert.Equal(t, Rect{X: 80, Y: 80, Width: 250, Height: 250}, got)
}

func TestMergeBounds_CollapsedKeepsMinimumSize(t *testing.T) {
	// Region lies far outside a tiny viewport: right edge clamps below left.
	got, ok := MergeBounds([]Region{
		boxRegion(1000, 1000, 10, 10, &Viewport{Width: 50, Height: 50}),
	})

	require.True(t, ok)
	assert.Equal(t, 1.0, got.Width)
	assert.Equal(t, 1.0, got.Height)
	assert.Equal(t, 880.0, got.X)
}

func TestMergeBounds_NonFinite(t *testing.T) {
	_, ok := MergeBounds([]Region{
		boxRegion(math.NaN(), 10, 10, 10, nil),
	})
	assert.False(t, ok)

	_, ok = MergeBounds([]Region{
		boxRegion(10, 10, math.Inf(1), 10, nil),
	})
	assert.False(t, ok)
}

func TestRegion_DevicePixelRatio(t *testing.T) {
	assert.Equal(t, 1.0, Region{}.DevicePixelRatio())
	assert.Equal(t, 2.0, Region{Viewport: &Viewport{DevicePixelRatio: 2}}.DevicePixelRatio())
}
