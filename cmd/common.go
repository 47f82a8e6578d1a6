package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/tansawit/notiv-sub000/internal/encoder"
	"github.com/tansawit/notiv-sub000/internal/geometry"
	"github.com/tansawit/notiv-sub000/internal/hasher"
	"github.com/tansawit/notiv-sub000/internal/hostcapture"
	"github.com/tansawit/notiv-sub000/internal/pipeline"
	"github.com/tansawit/notiv-sub000/internal/profile"
)

// newPipeline builds a pipeline from the loaded config.
func newPipeline(src pipeline.Source, prep pipeline.Preparer) *pipeline.Pipeline {
	return pipeline.New(src, pipeline.Config{
		Profiles:         appConfig.Profiles(),
		MaxSurfacePixels: appConfig.MaxSurfacePixels,
		Preparer:         prep,
		Verbose:          verbose,
	})
}

// resolveTarget parses a --target flag, falling back to the config.
func resolveTarget(s string) (profile.Target, error) {
	if s == "" {
		return appConfig.DefaultTarget(), nil
	}
	return profile.ParseTarget(s)
}

// parseRect converts an x,y,width,height flag value.
func parseRect(vals []float64) (geometry.Rect, error) {
	if len(vals) != 4 {
		return geometry.Rect{}, fmt.Errorf("rect needs 4 values x,y,width,height, got %d", len(vals))
	}
	return geometry.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// readYAML decodes a YAML or JSON file into v.
func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// payloadWriter stores payloads under a directory with content-addressed
// names, or prints them as data URLs.
type payloadWriter struct {
	dir     string
	dataURL bool
}

func (w payloadWriter) write(name string, out *encoder.Payload) error {
	if w.dataURL {
		fmt.Println(out.DataURL())
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	hash := hasher.ContentHash(out.Data, hasher.DefaultHexLen)
	path := filepath.Join(w.dir, hasher.FileName(name, out.Width, out.Height, hash, out.Extension))
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	note := ""
	if out.Passes > 1 {
		note = "  (second pass)"
	}
	if out.OverBudget {
		note = "  (over budget)"
	}
	fmt.Printf("  %-14s %4dx%-4d %8s  %s%s\n", out.Profile, out.Width, out.Height,
		formatBytes(int64(out.Size())), path, note)
	return nil
}

// logPreparer reports the highlights and markers a page would draw before
// the frame is taken. Stored frames and displays cannot be decorated.
type logPreparer struct{}

func (logPreparer) Prepare(_ context.Context, target string, req pipeline.PrepareRequest) error {
	logVerbose("prepare %s: %d highlight(s), %d marker(s)", target, len(req.Highlights), len(req.Markers))
	for _, m := range req.Markers {
		logVerbose("  marker %d at (%.0f,%.0f) %s", m.Index, m.Anchor.X, m.Anchor.Y, m.Text)
	}
	return nil
}

func (logPreparer) Restore(_ context.Context, target string) error {
	logVerbose("restore %s", target)
	return nil
}

// frameSource returns the source and target selected by --frame/--display.
func frameSource(frame, display string) (pipeline.Source, string, error) {
	switch {
	case frame != "" && display != "":
		return nil, "", fmt.Errorf("--frame and --display are mutually exclusive")
	case frame != "":
		return hostcapture.FileSource{}, frame, nil
	default:
		return hostcapture.DisplaySource{}, display, nil
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
