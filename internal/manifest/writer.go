package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pborman/uuid"
)

// New creates an empty report with a fresh run id.
func New(target string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		RunID:       uuid.New(),
		Target:      target,
		BasePath:    "./",
		Captures:    make(map[string]Capture),
	}
}

// ComputeStats recalculates aggregate statistics from captures. Failed is
// left as set by the caller.
func (r *Report) ComputeStats() {
	s := Stats{Failed: r.Stats.Failed}
	s.TotalCaptures = len(r.Captures)
	for _, c := range r.Captures {
		s.TotalInputBytes += c.Source.Size
		s.TotalOutputBytes += c.Size
		if c.Passes > 1 {
			s.SecondPasses++
		}
		if c.OverBudget {
			s.OverBudget++
		}
	}
	r.Stats = s
}

// WriteJSON serializes the report to a JSON file with stable ordering.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report. path may be the report file or the directory
// containing it.
func ReadJSON(path string) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
