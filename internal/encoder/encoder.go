package encoder

import (
	"image"
)

// Options controls a single encode call.
type Options struct {
	Quality  int  // 1-100, ignored by lossless encoders
	Lossless bool // request lossless output where the format supports both
}

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg", "webp", "png").
	Format() string

	// MIMEType returns the media type used in data URLs.
	MIMEType() string

	// Encode converts the image to bytes.
	Encode(img image.Image, opts Options) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}

func clampQuality(q, fallback int) int {
	if q <= 0 || q > 100 {
		return fallback
	}
	return q
}
