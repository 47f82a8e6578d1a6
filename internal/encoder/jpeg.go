package encoder

import (
	"bytes"
	"image"
	"image/jpeg"
)

// JPEGEncoder encodes images to JPEG using Go's standard library.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpg" }
func (e *JPEGEncoder) MIMEType() string  { return "image/jpeg" }

func (e *JPEGEncoder) Encode(img image.Image, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(128 * 1024) // typical cropped capture is well under this

	err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: clampQuality(opts.Quality, 82)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
