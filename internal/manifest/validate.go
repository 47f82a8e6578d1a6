package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Validate checks the report's internal consistency and that every
// referenced payload exists under baseDir with the recorded size.
// It returns one message per problem found.
func (r *Report) Validate(baseDir string) []string {
	var errs []string

	if r.Version != SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}
	if r.RunID == "" {
		errs = append(errs, "missing run_id")
	}

	keys := make([]string, 0, len(r.Captures))
	for k := range r.Captures {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	seenPaths := map[string]string{}
	for _, key := range keys {
		c := r.Captures[key]

		if c.Format == "" {
			errs = append(errs, fmt.Sprintf("capture %q: empty format", key))
		}
		if c.Width <= 0 || c.Height <= 0 {
			errs = append(errs, fmt.Sprintf("capture %q: invalid dimensions %dx%d", key, c.Width, c.Height))
		}
		if c.Passes != 1 && c.Passes != 2 {
			errs = append(errs, fmt.Sprintf("capture %q: invalid pass count %d", key, c.Passes))
		}
		if g := c.Geometry; g != nil && c.Source.Width > 0 && c.Source.Height > 0 {
			if g.SX+g.SafeWidth > c.Source.Width || g.SY+g.SafeHeight > c.Source.Height {
				errs = append(errs, fmt.Sprintf("capture %q: crop window exceeds source %dx%d",
					key, c.Source.Width, c.Source.Height))
			}
		}
		if c.Hash == "" {
			errs = append(errs, fmt.Sprintf("capture %q: missing hash", key))
		}
		if c.Path == "" {
			errs = append(errs, fmt.Sprintf("capture %q: missing path", key))
			continue
		}

		if other, ok := seenPaths[c.Path]; ok {
			errs = append(errs, fmt.Sprintf("capture %q: duplicate path %q (also %q)", key, c.Path, other))
		}
		seenPaths[c.Path] = key

		info, err := os.Stat(filepath.Join(baseDir, c.Path))
		if err != nil {
			errs = append(errs, fmt.Sprintf("capture %q: file not found: %s", key, c.Path))
		} else if c.Size > 0 && info.Size() != c.Size {
			errs = append(errs, fmt.Sprintf("capture %q: size mismatch: report=%d, disk=%d",
				key, c.Size, info.Size()))
		}
	}

	if r.Stats.TotalCaptures != len(r.Captures) {
		errs = append(errs, fmt.Sprintf("stats.total_captures mismatch: %d != %d",
			r.Stats.TotalCaptures, len(r.Captures)))
	}

	return errs
}
