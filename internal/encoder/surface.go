package encoder

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
)

// ErrSurfaceUnavailable is returned when an offscreen surface cannot be
// acquired. It points at the environment or configuration, not the input.
var ErrSurfaceUnavailable = errors.New("offscreen surface unavailable")

// DefaultMaxSurfacePixels caps a single surface at 16384x16384.
const DefaultMaxSurfacePixels = 16384 * 16384

// Surface is an offscreen RGBA drawing target. It must be released exactly
// once; Release is safe to call more than once.
type Surface struct {
	*image.NRGBA
	pool     *SurfacePool
	buf      *[]byte
	released atomic.Bool
}

// Release returns the surface's pixel buffer to its pool.
func (s *Surface) Release() {
	if s == nil || !s.released.CompareAndSwap(false, true) {
		return
	}
	s.pool.put(s.buf)
	s.NRGBA = nil
	s.buf = nil
}

// SurfacePool hands out surfaces backed by reusable pixel buffers.
// Safe for concurrent use.
type SurfacePool struct {
	maxPixels int
	bufs      sync.Pool
	live      atomic.Int64
}

// NewSurfacePool creates a pool. maxPixels <= 0 means
// DefaultMaxSurfacePixels.
func NewSurfacePool(maxPixels int) *SurfacePool {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxSurfacePixels
	}
	return &SurfacePool{maxPixels: maxPixels}
}

// Acquire returns a surface of exactly w x h pixels.
func (p *SurfacePool) Acquire(w, h int) (*Surface, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrSurfaceUnavailable, w, h)
	}
	if int64(w)*int64(h) > int64(p.maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d exceeds limit of %d pixels", ErrSurfaceUnavailable, w, h, p.maxPixels)
	}

	n := w * h * 4
	var buf *[]byte
	if v, ok := p.bufs.Get().(*[]byte); ok && cap(*v) >= n {
		buf = v
		*buf = (*buf)[:n]
		clear(*buf)
	} else {
		b := make([]byte, n)
		buf = &b
	}

	p.live.Add(1)
	return &Surface{
		NRGBA: &image.NRGBA{
			Pix:    *buf,
			Stride: w * 4,
			Rect:   image.Rect(0, 0, w, h),
		},
		pool: p,
		buf:  buf,
	}, nil
}

// Live returns the number of acquired surfaces not yet released.
func (p *SurfacePool) Live() int {
	return int(p.live.Load())
}

func (p *SurfacePool) put(buf *[]byte) {
	p.live.Add(-1)
	if buf != nil {
		p.bufs.Put(buf)
	}
}
