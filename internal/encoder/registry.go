package encoder

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned when no encoder is registered for a format.
var ErrUnknownFormat = errors.New("unknown output format")

// Registry holds the encoders available to the compressor.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with the built-in encoders.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{
		&JPEGEncoder{},
		&PNGEncoder{},
		&WebPEncoder{},
	} {
		r.Register(enc)
	}
	return r
}

// Register adds or replaces the encoder for enc.Format().
func (r *Registry) Register(enc Encoder) {
	r.encoders[strings.ToLower(enc.Format())] = enc
}

// Get returns an encoder for the given format, or nil if unknown.
// "jpg" is accepted as an alias for "jpeg".
func (r *Registry) Get(format string) Encoder {
	f := strings.ToLower(format)
	if f == "jpg" {
		f = "jpeg"
	}
	return r.encoders[f]
}

// Resolve is Get with an error for unknown formats.
func (r *Registry) Resolve(format string) (Encoder, error) {
	enc := r.Get(format)
	if enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return enc, nil
}

// Formats returns all registered format names in priority order.
func (r *Registry) Formats() []string {
	var result []string
	for _, f := range []string{"jpeg", "webp", "png"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of registered encoders.
func (r *Registry) String() string {
	avail := r.Formats()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
