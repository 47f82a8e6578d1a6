package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tansawit/notiv-sub000/internal/manifest"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics for a batch output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	r, err := manifest.ReadJSON(args[0])
	if err != nil {
		return err
	}
	printStats(r)
	return nil
}

func printStats(r *manifest.Report) {
	fmt.Println()
	fmt.Printf("  Report version:   %d\n", r.Version)
	fmt.Printf("  Run:              %s\n", r.RunID)
	fmt.Printf("  Generated:        %s\n", r.GeneratedAt)
	fmt.Printf("  Target:           %s\n", r.Target)
	if r.RunInfo != nil {
		fmt.Printf("  Workers:          %d\n", r.RunInfo.Workers)
	}
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Total captures:   %d\n", s.TotalCaptures)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Compression:      %.1f%% of original\n", ratio)
	}
	fmt.Printf("  Second passes:    %d\n", s.SecondPasses)
	fmt.Printf("  Over budget:      %d\n", s.OverBudget)
	if s.Failed > 0 {
		fmt.Printf("  Failed frames:    %d\n", s.Failed)
	}
	fmt.Println()

	// Per-profile breakdown.
	type profileStat struct {
		count int
		bytes int64
	}
	profileStats := map[string]profileStat{}
	for _, c := range r.Captures {
		ps := profileStats[c.Profile]
		ps.count++
		ps.bytes += c.Size
		profileStats[c.Profile] = ps
	}
	var names []string
	for n := range profileStats {
		names = append(names, n)
	}
	sort.Strings(names)
	fmt.Println("  Profile breakdown:")
	for _, n := range names {
		ps := profileStats[n]
		fmt.Printf("    %-16s %4d files  %s\n", n, ps.count, formatBytes(ps.bytes))
	}
	fmt.Println()

	// Output size breakdown, by the longer edge.
	edgeStats := map[int]int{}
	for _, c := range r.Captures {
		edgeStats[max(c.Width, c.Height)]++
	}
	var edges []int
	for e := range edgeStats {
		edges = append(edges, e)
	}
	sort.Ints(edges)
	fmt.Println("  Longest edge breakdown:")
	for _, e := range edges {
		fmt.Printf("    %5dpx  %4d captures\n", e, edgeStats[e])
	}

	// Warnings.
	var warnings []string
	for key, c := range r.Captures {
		if c.OverBudget {
			warnings = append(warnings, fmt.Sprintf("capture %q is over its byte budget (%s)", key, formatBytes(c.Size)))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
