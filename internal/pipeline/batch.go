package pipeline

import (
	"context"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/tansawit/notiv-sub000/internal/encoder"
	"github.com/tansawit/notiv-sub000/internal/geometry"
	"github.com/tansawit/notiv-sub000/internal/hasher"
	"github.com/tansawit/notiv-sub000/internal/manifest"
	"github.com/tansawit/notiv-sub000/internal/profile"
)

// BatchConfig holds the parameters for a batch run over stored frames.
type BatchConfig struct {
	InputDir  string
	OutputDir string
	Workers   int
	Target    profile.Target
	// Region, when set, crops every frame to this CSS-pixel rectangle
	// instead of compressing the full frame.
	Region *geometry.Rect
	DPR    float64
}

// frameResult holds the result of processing a single frame.
type frameResult struct {
	key     string
	capture manifest.Capture
	err     error
}

// Batch compresses every frame under cfg.InputDir and writes the payloads
// to cfg.OutputDir with content-addressed names. The pipeline's source must
// resolve frame paths relative to InputDir (see hostcapture.FileSource).
// Frames that fail are reported; the run fails only if all of them do.
func (p *Pipeline) Batch(ctx context.Context, cfg BatchConfig) (*manifest.Report, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	frames, err := ScanFrames(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames found in %s", cfg.InputDir)
	}
	p.logf("found %d frames", len(frames))

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	results := make([]frameResult, len(frames))
	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Workers)

	for i, f := range frames {
		wg.Add(1)
		go func(idx int, f Frame) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			p.logf("processing: %s", f.Key)
			results[idx] = p.processFrame(ctx, f, cfg)
		}(i, f)
	}
	wg.Wait()

	r := manifest.New(string(cfg.Target))
	r.RunInfo = &manifest.RunInfo{
		Workers:          cfg.Workers,
		MaxSurfacePixels: p.cfg.MaxSurfacePixels,
	}

	var failed int
	for _, res := range results {
		if res.err != nil {
			failed++
			fmt.Fprintf(p.cfg.Log, "[notiv] error: %s: %v\n", res.key, res.err)
			continue
		}
		r.Captures[res.key] = res.capture
	}
	if failed == len(frames) {
		return nil, fmt.Errorf("all %d frames failed to process", failed)
	}
	if failed > 0 {
		fmt.Fprintf(p.cfg.Log, "[notiv] warning: %d of %d frames had errors\n", failed, len(frames))
	}

	r.Stats.Failed = failed
	r.ComputeStats()
	return r, nil
}

// processFrame captures, compresses and writes a single frame.
func (p *Pipeline) processFrame(ctx context.Context, f Frame, cfg BatchConfig) frameResult {
	res := frameResult{key: f.Key}

	var (
		out  *encoder.Payload
		kind = profile.KindFull
		err  error
	)
	if cfg.Region != nil {
		kind = profile.KindCrop
		out, err = p.CaptureRegion(ctx, f.RelPath, *cfg.Region, cfg.DPR, cfg.Target)
	} else {
		out, err = p.CaptureVisible(ctx, f.RelPath, cfg.Target)
	}
	if err != nil {
		res.err = err
		return res
	}

	hash := hasher.ContentHash(out.Data, hasher.DefaultHexLen)
	relPath := path.Join(path.Dir(f.Key), hasher.FileName(f.Key, out.Width, out.Height, hash, out.Extension))

	outPath := filepath.Join(cfg.OutputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		res.err = fmt.Errorf("create dir for %s: %w", relPath, err)
		return res
	}
	if err := os.WriteFile(outPath, out.Data, 0o644); err != nil {
		res.err = fmt.Errorf("write %s: %w", relPath, err)
		return res
	}

	res.capture = manifest.Capture{
		Source:     sourceInfo(f),
		Kind:       string(kind),
		Profile:    out.Profile,
		Format:     out.Format,
		Width:      out.Width,
		Height:     out.Height,
		Size:       int64(out.Size()),
		Passes:     out.Passes,
		OverBudget: out.OverBudget,
		Hash:       hash,
		Path:       relPath,
		Geometry:   out.Geometry,
	}
	return res
}

// sourceInfo reads the frame's dimensions from its header only. Data URL
// frames are left without dimensions.
func sourceInfo(f Frame) manifest.SourceInfo {
	info := manifest.SourceInfo{Format: f.Format, Size: f.Size}
	if f.Format == "dataurl" {
		return info
	}
	file, err := os.Open(f.AbsPath)
	if err != nil {
		return info
	}
	defer file.Close()
	if cfg, _, err := image.DecodeConfig(file); err == nil {
		info.Width, info.Height = cfg.Width, cfg.Height
	}
	return info
}
