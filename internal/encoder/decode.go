package encoder

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when a raw frame cannot be decoded to a raster.
var ErrDecode = errors.New("decode raw frame")

// Decode turns a raw frame into a raster. The frame may be encoded image
// bytes in any registered format or a base64 data URL wrapping them.
func Decode(raw []byte) (image.Image, error) {
	data, err := unwrapDataURL(raw)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrDecode)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		// Fallback: libwebp handles extended WebP variants x/image does not.
		wimg, werr := webp.Decode(bytes.NewReader(data))
		if werr != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		img = wimg
	}

	if b := img.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: empty raster %dx%d", ErrDecode, b.Dx(), b.Dy())
	}
	return img, nil
}

var dataURLPrefix = []byte("data:")

// unwrapDataURL returns the payload of a "data:<mime>;base64,<data>" URL,
// or raw unchanged when it is not a data URL.
func unwrapDataURL(raw []byte) ([]byte, error) {
	if !bytes.HasPrefix(raw, dataURLPrefix) {
		return raw, nil
	}
	header, body, ok := bytes.Cut(raw, []byte(","))
	if !ok || !bytes.HasSuffix(header, []byte(";base64")) {
		return nil, fmt.Errorf("%w: unsupported data URL", ErrDecode)
	}
	out := make([]byte, base64.StdEncoding.DecodedLen(len(body)))
	n, err := base64.StdEncoding.Decode(out, body)
	if err != nil {
		return nil, fmt.Errorf("%w: data URL: %v", ErrDecode, err)
	}
	return out[:n], nil
}
