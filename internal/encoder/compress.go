package encoder

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/tansawit/notiv-sub000/internal/geometry"
	"github.com/tansawit/notiv-sub000/internal/profile"
)

// Config holds compressor parameters.
type Config struct {
	// MaxSurfacePixels bounds a single offscreen surface (0 = default).
	MaxSurfacePixels int
	// Registry overrides the built-in encoders when set.
	Registry *Registry
	// Scaler overrides the resampling kernel (default Catmull-Rom).
	Scaler draw.Scaler
}

// Compressor turns raw frames into size-bounded payloads using at most two
// render+encode passes. It holds no per-call state and is safe for
// concurrent use.
type Compressor struct {
	registry *Registry
	surfaces *SurfacePool
	scaler   draw.Scaler
}

// NewCompressor creates a compressor.
func NewCompressor(cfg Config) *Compressor {
	c := &Compressor{
		registry: cfg.Registry,
		surfaces: NewSurfacePool(cfg.MaxSurfacePixels),
		scaler:   cfg.Scaler,
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	if c.scaler == nil {
		c.scaler = draw.CatmullRom
	}
	return c
}

// Surfaces exposes the compressor's surface pool.
func (c *Compressor) Surfaces() *SurfacePool {
	return c.surfaces
}

// Registry exposes the compressor's encoders.
func (c *Compressor) Registry() *Registry {
	return c.registry
}

// Full compresses the whole frame, downscaled to fit p.MaxDimension.
func (c *Compressor) Full(raw []byte, p profile.Profile) (*Payload, error) {
	src, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	w, h := geometry.FitWithin(b.Dx(), b.Dy(), p.MaxDimension)
	return c.compress(src, b, w, h, p)
}

// Crop compresses the window of the frame covered by rect, a CSS-pixel
// rectangle on a page rendered at the given device pixel ratio.
func (c *Compressor) Crop(raw []byte, rect geometry.Rect, dpr float64, p profile.Profile) (*Payload, error) {
	src, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	g := geometry.ResolveCrop(geometry.CropInput{
		BitmapWidth:      b.Dx(),
		BitmapHeight:     b.Dy(),
		Rect:             rect,
		DevicePixelRatio: dpr,
		MaxDimension:     p.MaxDimension,
	})
	sr := image.Rect(g.SX, g.SY, g.SX+g.SafeWidth, g.SY+g.SafeHeight).Add(b.Min)

	out, err := c.compress(src, sr, g.OutputWidth, g.OutputHeight, p)
	if err != nil {
		return nil, err
	}
	out.Geometry = &g
	return out, nil
}

// compress renders sr of src into a w x h surface and encodes it. When the
// result is over the profile's budget it renders that surface once more at
// the second-pass scale and returns the second encode whatever its size.
func (c *Compressor) compress(src image.Image, sr image.Rectangle, w, h int, p profile.Profile) (*Payload, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	enc, err := c.registry.Resolve(p.Format)
	if err != nil {
		return nil, err
	}

	first, err := c.surfaces.Acquire(w, h)
	if err != nil {
		return nil, fmt.Errorf("first pass: %w", err)
	}
	defer first.Release()

	c.scaler.Scale(first.NRGBA, first.Bounds(), src, sr, draw.Src, nil)
	data, err := enc.Encode(first.NRGBA, Options{Quality: p.Quality, Lossless: p.Lossless})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc.Format(), err)
	}

	out := newPayload(p, enc, data, w, h)
	if !p.HasBudget() || out.EncodedLen() <= p.ByteBudget {
		return out, nil
	}

	w2, h2 := geometry.ScaleSize(w, h, p.SecondPass.Scale)
	second, err := c.surfaces.Acquire(w2, h2)
	if err != nil {
		return nil, fmt.Errorf("second pass: %w", err)
	}
	defer second.Release()

	c.scaler.Scale(second.NRGBA, second.Bounds(), first.NRGBA, first.Bounds(), draw.Src, nil)
	data, err = enc.Encode(second.NRGBA, Options{Quality: p.SecondPass.Quality, Lossless: p.Lossless})
	if err != nil {
		return nil, fmt.Errorf("encode %s (second pass): %w", enc.Format(), err)
	}

	out = newPayload(p, enc, data, w2, h2)
	out.Passes = 2
	out.OverBudget = out.EncodedLen() > p.ByteBudget
	return out, nil
}

func newPayload(p profile.Profile, enc Encoder, data []byte, w, h int) *Payload {
	return &Payload{
		Profile:   p.Name,
		Format:    enc.Format(),
		MIMEType:  enc.MIMEType(),
		Extension: enc.Extension(),
		Data:      data,
		Width:     w,
		Height:    h,
		Passes:    1,
	}
}
