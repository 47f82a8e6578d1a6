// Package hostcapture provides raw-frame capture primitives: each returns
// one full-frame encoded image for a target, or fails. Callers treat a call
// as atomic and do not retry it.
package hostcapture

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kbinani/screenshot"
)

// Func adapts a function to the pipeline's frame source interface.
type Func func(ctx context.Context, target string) ([]byte, error)

// CaptureFrame calls f.
func (f Func) CaptureFrame(ctx context.Context, target string) ([]byte, error) {
	return f(ctx, target)
}

// FileSource serves frames stored on disk. The target is a file path,
// resolved against Dir when relative.
type FileSource struct {
	Dir string
}

// CaptureFrame reads the frame file named by target.
func (s FileSource) CaptureFrame(ctx context.Context, target string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := target
	if s.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(s.Dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("capture frame %s: %w", target, err)
	}
	return data, nil
}

// DisplaySource grabs a physical display. The target is the display index;
// an empty target selects display 0.
type DisplaySource struct{}

// CaptureFrame captures the display and returns it PNG-encoded.
func (DisplaySource) CaptureFrame(ctx context.Context, target string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	idx := 0
	if target != "" {
		n, err := strconv.Atoi(target)
		if err != nil {
			return nil, fmt.Errorf("invalid display index %q: %w", target, err)
		}
		idx = n
	}
	if active := screenshot.NumActiveDisplays(); idx < 0 || idx >= active {
		return nil, fmt.Errorf("display %d not available (%d active)", idx, active)
	}

	img, err := screenshot.CaptureDisplay(idx)
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", idx, err)
	}

	var buf bytes.Buffer
	enc := &png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode display %d: %w", idx, err)
	}
	return buf.Bytes(), nil
}

// Displays describes the active displays as "index: WxH+X+Y" lines.
func Displays() []string {
	n := screenshot.NumActiveDisplays()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		out = append(out, fmt.Sprintf("%d: %dx%d+%d+%d", i, b.Dx(), b.Dy(), b.Min.X, b.Min.Y))
	}
	return out
}
