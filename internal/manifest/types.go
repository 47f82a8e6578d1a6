package manifest

import "github.com/tansawit/notiv-sub000/internal/geometry"

// Report is the record of a capture run.
type Report struct {
	Version     int                `json:"version"`
	GeneratedAt string             `json:"generated_at"`
	RunID       string             `json:"run_id"`
	Target      string             `json:"target"` // default | clipboard
	BasePath    string             `json:"base_path"`
	RunInfo     *RunInfo           `json:"run_info,omitempty"`
	Captures    map[string]Capture `json:"captures"`
	Stats       Stats              `json:"stats"`
}

// RunInfo captures run-time parameters for diagnostics.
type RunInfo struct {
	Workers          int `json:"workers"`
	MaxSurfacePixels int `json:"max_surface_pixels,omitempty"`
}

// Capture describes one raw frame and the payload produced from it.
type Capture struct {
	Source     SourceInfo             `json:"source"`
	Kind       string                 `json:"kind"`    // full | crop
	Profile    string                 `json:"profile"` // e.g. "crop/default"
	Format     string                 `json:"format"`  // "jpeg", "png", "webp"
	Width      int                    `json:"width"`
	Height     int                    `json:"height"`
	Size       int64                  `json:"size"`   // bytes on disk
	Passes     int                    `json:"passes"` // 1, or 2 when the budget retry ran
	OverBudget bool                   `json:"over_budget,omitempty"`
	Hash       string                 `json:"hash"` // first 16 hex chars of xxhash64
	Path       string                 `json:"path"` // relative to base_path
	Geometry   *geometry.CropGeometry `json:"geometry,omitempty"`
}

// SourceInfo holds metadata about the raw frame.
type SourceInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalCaptures    int   `json:"total_captures"`
	SecondPasses     int   `json:"second_passes"`
	OverBudget       int   `json:"over_budget"`
	Failed           int   `json:"failed,omitempty"`
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1

// FileName is the report's name inside an output directory.
const FileName = "notiv.report.json"
