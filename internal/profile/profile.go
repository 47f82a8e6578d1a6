package profile

import (
	"fmt"
	"sort"
	"strings"
)

// Kind is the shape of the output: the whole frame or a cropped window.
type Kind string

const (
	KindFull Kind = "full"
	KindCrop Kind = "crop"
)

// Target is the destination the payload is produced for.
type Target string

const (
	// TargetDefault is for network upload: lossy and byte budgeted.
	TargetDefault Target = "default"
	// TargetClipboard is for pasting: lossless, larger, no budget.
	TargetClipboard Target = "clipboard"
)

// SecondPass configures the single retry run when the first encode is
// over budget.
type SecondPass struct {
	Scale   float64 `json:"scale"`   // applied to the first pass dimensions
	Quality int     `json:"quality"` // encoding quality 1-100
}

// Profile defines how a captured raster is compressed.
type Profile struct {
	Name         string     `json:"name"`
	MaxDimension int        `json:"maxDimension"`
	Format       string     `json:"format"`   // encoder format name: jpeg, png, webp
	Lossless     bool       `json:"lossless"` // only meaningful for webp
	Quality      int        `json:"quality"`  // encoding quality 1-100, ignored when lossless
	ByteBudget   int        `json:"byteBudget,omitempty"`
	SecondPass   SecondPass `json:"secondPass"`
}

// Built-in profiles.
var profiles = map[string]Profile{
	"full/default": {
		Name:         "full/default",
		MaxDimension: 1900,
		Format:       "jpeg",
		Quality:      80,
		ByteBudget:   420000,
		SecondPass:   SecondPass{Scale: 0.82, Quality: 70},
	},
	"crop/default": {
		Name:         "crop/default",
		MaxDimension: 1100,
		Format:       "jpeg",
		Quality:      82,
		ByteBudget:   260000,
		SecondPass:   SecondPass{Scale: 0.8, Quality: 72},
	},
	"full/clipboard": {
		Name:         "full/clipboard",
		MaxDimension: 2560,
		Format:       "png",
		Lossless:     true,
	},
	"crop/clipboard": {
		Name:         "crop/clipboard",
		MaxDimension: 2200,
		Format:       "png",
		Lossless:     true,
	},
}

// Key builds the profile name for a kind and target, e.g. "crop/default".
func Key(kind Kind, target Target) string {
	return string(kind) + "/" + string(target)
}

// For returns the built-in profile for a kind and target. Unknown targets
// fall back to TargetDefault.
func For(kind Kind, target Target) Profile {
	if p, ok := profiles[Key(kind, target)]; ok {
		return p
	}
	return profiles[Key(kind, TargetDefault)]
}

// Get returns a built-in profile by name.
func Get(name string) (Profile, bool) {
	p, ok := profiles[strings.ToLower(name)]
	return p, ok
}

// Names lists the built-in profile names in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseTarget converts a selector string into a Target.
func ParseTarget(s string) (Target, error) {
	switch Target(strings.ToLower(strings.TrimSpace(s))) {
	case "", TargetDefault:
		return TargetDefault, nil
	case TargetClipboard:
		return TargetClipboard, nil
	}
	return "", fmt.Errorf("unknown output target %q (want default or clipboard)", s)
}

// HasBudget reports whether the profile may run a second pass.
func (p Profile) HasBudget() bool {
	return p.ByteBudget > 0
}

// Validate checks that a profile can be used for encoding.
func (p Profile) Validate() error {
	if p.MaxDimension < 1 {
		return fmt.Errorf("profile %s: maxDimension must be positive", p.Name)
	}
	if p.Format == "" {
		return fmt.Errorf("profile %s: format is required", p.Name)
	}
	if !p.Lossless && (p.Quality < 1 || p.Quality > 100) {
		return fmt.Errorf("profile %s: quality must be between 1 and 100", p.Name)
	}
	if p.ByteBudget < 0 {
		return fmt.Errorf("profile %s: byteBudget must not be negative", p.Name)
	}
	if p.HasBudget() {
		if p.SecondPass.Scale <= 0 || p.SecondPass.Scale > 1 {
			return fmt.Errorf("profile %s: secondPass.scale must be in (0, 1]", p.Name)
		}
		if p.SecondPass.Quality < 1 || p.SecondPass.Quality > 100 {
			return fmt.Errorf("profile %s: secondPass.quality must be between 1 and 100", p.Name)
		}
	}
	return nil
}
