package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/tansawit/notiv-sub000/internal/encoder"
	"github.com/tansawit/notiv-sub000/internal/geometry"
	"github.com/tansawit/notiv-sub000/internal/profile"
)

// Source is the host's raw-frame primitive: it returns one full-frame
// encoded image for a window/context target, or fails. The pipeline calls
// it exactly once per operation and never retries.
type Source interface {
	CaptureFrame(ctx context.Context, target string) ([]byte, error)
}

// Config holds pipeline parameters.
type Config struct {
	// Profiles overrides built-in profiles, keyed by profile.Key.
	Profiles map[string]profile.Profile
	// MaxSurfacePixels bounds a single offscreen surface (0 = default).
	MaxSurfacePixels int
	// Preparer, when set, is notified around grouped and annotation
	// captures so the page can show highlights while the frame is taken.
	Preparer Preparer
	Verbose  bool
	// Log receives verbose output (default os.Stderr).
	Log io.Writer
}

// Pipeline obtains raw frames from a Source and compresses them.
type Pipeline struct {
	cfg        Config
	source     Source
	compressor *encoder.Compressor
}

// ElementCapture is the pair of payloads produced for a single element.
type ElementCapture struct {
	Full    *encoder.Payload // whole viewport, for page context
	Cropped *encoder.Payload // the element itself
}

// New creates a configured pipeline.
func New(src Source, cfg Config) *Pipeline {
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	return &Pipeline{
		cfg:    cfg,
		source: src,
		compressor: encoder.NewCompressor(encoder.Config{
			MaxSurfacePixels: cfg.MaxSurfacePixels,
		}),
	}
}

// Compressor exposes the pipeline's compressor.
func (p *Pipeline) Compressor() *encoder.Compressor {
	return p.compressor
}

// Profile returns the effective profile for a kind and target.
func (p *Pipeline) Profile(kind profile.Kind, target profile.Target) profile.Profile {
	if prof, ok := p.cfg.Profiles[profile.Key(kind, target)]; ok {
		return prof
	}
	return profile.For(kind, target)
}

// CaptureElement takes one frame and produces the full-frame and cropped
// payloads from it concurrently, both with default profiles. The two
// encodes share only the raw bytes; their completion order is unspecified.
func (p *Pipeline) CaptureElement(ctx context.Context, target string, box geometry.Rect, dpr float64) (ElementCapture, error) {
	raw, err := p.frame(ctx, target)
	if err != nil {
		return ElementCapture{}, err
	}

	fullProf := p.Profile(profile.KindFull, profile.TargetDefault)
	cropProf := p.Profile(profile.KindCrop, profile.TargetDefault)

	var (
		out ElementCapture
		g   errgroup.Group
	)
	g.Go(func() error {
		full, err := p.compressor.Full(raw, fullProf)
		if err != nil {
			return fmt.Errorf("full frame: %w", err)
		}
		out.Full = full
		return nil
	})
	g.Go(func() error {
		cropped, err := p.compressor.Crop(raw, box, dpr, cropProf)
		if err != nil {
			return fmt.Errorf("crop: %w", err)
		}
		out.Cropped = cropped
		return nil
	})
	if err := g.Wait(); err != nil {
		return ElementCapture{}, err
	}

	p.logPayload(target, out.Full)
	p.logPayload(target, out.Cropped)
	return out, nil
}

// CaptureVisible takes one frame and compresses all of it.
func (p *Pipeline) CaptureVisible(ctx context.Context, target string, kind profile.Target) (*encoder.Payload, error) {
	raw, err := p.frame(ctx, target)
	if err != nil {
		return nil, err
	}
	out, err := p.compressor.Full(raw, p.Profile(profile.KindFull, kind))
	if err != nil {
		return nil, fmt.Errorf("full frame: %w", err)
	}
	p.logPayload(target, out)
	return out, nil
}

// CaptureRegion takes one frame and compresses the window covered by box.
func (p *Pipeline) CaptureRegion(ctx context.Context, target string, box geometry.Rect, dpr float64, kind profile.Target) (*encoder.Payload, error) {
	raw, err := p.frame(ctx, target)
	if err != nil {
		return nil, err
	}
	out, err := p.compressor.Crop(raw, box, dpr, p.Profile(profile.KindCrop, kind))
	if err != nil {
		return nil, fmt.Errorf("crop: %w", err)
	}
	p.logPayload(target, out)
	return out, nil
}

// frame requests a raw frame. Source errors are returned as is.
func (p *Pipeline) frame(ctx context.Context, target string) ([]byte, error) {
	raw, err := p.source.CaptureFrame(ctx, target)
	if err != nil {
		p.logf("capture %s failed: %v", target, err)
		return nil, err
	}
	p.logf("captured %s (%d bytes)", target, len(raw))
	return raw, nil
}

func (p *Pipeline) logPayload(target string, out *encoder.Payload) {
	if out == nil {
		return
	}
	p.logf("%s: %s %dx%d %d bytes, %d pass(es)%s",
		target, out.Profile, out.Width, out.Height, out.Size(), out.Passes, overBudgetNote(out))
}

func overBudgetNote(out *encoder.Payload) string {
	if out.OverBudget {
		return ", over budget"
	}
	return ""
}

// logf prints a message only when Verbose is set.
func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(p.cfg.Log, "[notiv] "+format+"\n", args...)
	}
}
