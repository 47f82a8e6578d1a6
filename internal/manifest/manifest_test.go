package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/tansawit/notiv-sub000/internal/geometry"
)

func sampleReport(t *testing.T, dir string) *Report {
	t.Helper()
	payload := []byte("jpeg-bytes")
	if err := os.WriteFile(filepath.Join(dir, "shot.1100x550.abcd1234.jpg"), payload, 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}

	r := New("default")
	r.RunInfo = &RunInfo{Workers: 4}
	r.Captures["shot"] = Capture{
		Source:  SourceInfo{Width: 4000, Height: 2400, Format: "png", Size: 900000},
		Kind:    "crop",
		Profile: "crop/default",
		Format:  "jpeg",
		Width:   1100,
		Height:  550,
		Size:    int64(len(payload)),
		Passes:  2,
		Hash:    "abcd1234abcd1234",
		Path:    "shot.1100x550.abcd1234.jpg",
		Geometry: &geometry.CropGeometry{
			SX: 200, SY: 300, SafeWidth: 2400, SafeHeight: 1200, OutputWidth: 1100, OutputHeight: 550,
		},
	}
	return r
}

func TestReportRoundtrip(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t, dir)

	path := filepath.Join(dir, FileName)
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Read back through the directory form.
	r2, err := ReadJSON(dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if r2.Version != SupportedVersion {
		t.Errorf("version: got %d, want %d", r2.Version, SupportedVersion)
	}
	if r2.RunID == "" || r2.RunID != r.RunID {
		t.Errorf("run_id: got %q, want %q", r2.RunID, r.RunID)
	}
	if r2.Target != "default" {
		t.Errorf("target: got %q", r2.Target)
	}
	if r2.RunInfo == nil || r2.RunInfo.Workers != 4 {
		t.Error("run_info not parsed correctly")
	}

	c, ok := r2.Captures["shot"]
	if !ok {
		t.Fatal("capture shot missing")
	}
	if c.Geometry == nil || c.Geometry.SafeWidth != 2400 {
		t.Errorf("geometry: got %+v", c.Geometry)
	}
	if r2.Stats.TotalCaptures != 1 {
		t.Errorf("total_captures: got %d", r2.Stats.TotalCaptures)
	}
	if r2.Stats.SecondPasses != 1 {
		t.Errorf("second_passes: got %d", r2.Stats.SecondPasses)
	}
	if r2.Stats.TotalInputBytes != 900000 {
		t.Errorf("total_input_bytes: got %d", r2.Stats.TotalInputBytes)
	}
}

func TestNewReportsHaveDistinctRunIDs(t *testing.T) {
	a, b := New("default"), New("default")
	if a.RunID == b.RunID {
		t.Errorf("run ids collide: %q", a.RunID)
	}
}

func TestReportIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"generated_at": "2025-01-01T00:00:00Z",
		"run_id": "0f8fad5b-d9cb-469f-a165-70867728950e",
		"target": "clipboard",
		"future_field": "should be ignored",
		"run_info": { "workers": 8, "new_flag": true },
		"captures": {},
		"stats": { "total_captures": 0, "new_stat": 42 }
	}`

	var r Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if r.RunInfo == nil || r.RunInfo.Workers != 8 {
		t.Error("run_info not parsed correctly")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t, dir)
	r.ComputeStats()

	if errs := r.Validate(dir); len(errs) != 0 {
		t.Fatalf("valid report reported errors: %v", errs)
	}

	c := r.Captures["shot"]
	c.Size = 1
	c.Passes = 3
	c.Geometry.SX = 3000
	r.Captures["shot"] = c
	r.Captures["missing"] = Capture{Format: "png", Width: 1, Height: 1, Passes: 1, Hash: "x", Path: "nope.png"}

	errs := r.Validate(dir)
	// size mismatch, pass count, crop window, missing file, stats mismatch
	if len(errs) != 5 {
		t.Errorf("got %d errors, want 5: %v", len(errs), errs)
	}
}
