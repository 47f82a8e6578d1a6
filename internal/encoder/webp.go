package encoder

import (
	"bytes"
	"image"

	"github.com/chai2010/webp"
)

// WebPEncoder encodes images to WebP in-process via libwebp.
// Supports both lossy and lossless output.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() string    { return "webp" }
func (e *WebPEncoder) Extension() string { return "webp" }
func (e *WebPEncoder) MIMEType() string  { return "image/webp" }

func (e *WebPEncoder) Encode(img image.Image, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	err := webp.Encode(&buf, img, &webp.Options{
		Lossless: opts.Lossless,
		Quality:  float32(clampQuality(opts.Quality, 82)),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
