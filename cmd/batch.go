package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tansawit/notiv-sub000/internal/geometry"
	"github.com/tansawit/notiv-sub000/internal/hostcapture"
	"github.com/tansawit/notiv-sub000/internal/manifest"
	"github.com/tansawit/notiv-sub000/internal/pipeline"
)

var (
	batchOutDir  string
	batchWorkers int
	batchTarget  string
	batchRect    []float64
	batchDPR     float64
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Compress every stored frame in a directory and write a report",
	Long: `Scans the input directory for stored frames (png, jpg, jpeg, webp, gif,
bmp, tiff, dataurl), compresses each one with the profile for the chosen
target and writes a report file.

With --rect every frame is cropped to the same CSS-pixel rectangle.
Output filenames are content-addressed: <key>.<w>x<h>.<hash>.ext`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "", "output directory (default from config)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = config, then NumCPU)")
	batchCmd.Flags().StringVarP(&batchTarget, "target", "t", "", "output target: default or clipboard")
	batchCmd.Flags().Float64SliceVarP(&batchRect, "rect", "r", nil, "crop every frame to x,y,width,height")
	batchCmd.Flags().Float64Var(&batchDPR, "dpr", geometry.DefaultDevicePixelRatio, "device pixel ratio for --rect")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	outDir := batchOutDir
	if outDir == "" {
		outDir = appConfig.OutputDir
	}
	absOutput, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	target, err := resolveTarget(batchTarget)
	if err != nil {
		return err
	}
	workers := batchWorkers
	if workers <= 0 {
		workers = appConfig.Workers
	}

	cfg := pipeline.BatchConfig{
		InputDir:  absInput,
		OutputDir: absOutput,
		Workers:   workers,
		Target:    target,
		DPR:       batchDPR,
	}
	if batchRect != nil {
		rect, err := parseRect(batchRect)
		if err != nil {
			return err
		}
		cfg.Region = &rect
	}

	logVerbose("input:  %s", absInput)
	logVerbose("output: %s", absOutput)
	logVerbose("target: %s", target)

	p := newPipeline(hostcapture.FileSource{Dir: absInput}, nil)
	r, err := p.Batch(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	reportPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(r, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printBatchReport(r, time.Since(start))
	return nil
}

func printBatchReport(r *manifest.Report, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║              notiv batch complete                ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := r.Stats
	ratio := float64(0)
	if stats.TotalInputBytes > 0 {
		ratio = float64(stats.TotalOutputBytes) / float64(stats.TotalInputBytes) * 100
	}

	fmt.Printf("  Captures:    %d\n", stats.TotalCaptures)
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	fmt.Printf("  Ratio:       %.1f%% of original\n", ratio)
	if stats.SecondPasses > 0 {
		fmt.Printf("  Retried:     %d (over budget after retry: %d)\n", stats.SecondPasses, stats.OverBudget)
	}
	if stats.Failed > 0 {
		fmt.Printf("  Failed:      %d\n", stats.Failed)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if r.RunInfo != nil {
		fmt.Printf("  Workers:     %d\n", r.RunInfo.Workers)
	}
	fmt.Println()

	// Top 10 heaviest captures.
	if len(r.Captures) > 0 {
		type captureSize struct {
			key        string
			inputSize  int64
			outputSize int64
		}
		var items []captureSize
		for key, c := range r.Captures {
			items = append(items, captureSize{key, c.Source.Size, c.Size})
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].inputSize > items[j].inputSize
		})
		n := min(len(items), 10)
		fmt.Printf("  Top %d heaviest (frame → payload):\n", n)
		for _, it := range items[:n] {
			saved := float64(0)
			if it.inputSize > 0 {
				saved = (1 - float64(it.outputSize)/float64(it.inputSize)) * 100
			}
			fmt.Printf("    %-40s %8s → %8s  (−%.0f%%)\n",
				truncKey(it.key, 40),
				formatBytes(it.inputSize),
				formatBytes(it.outputSize),
				saved,
			)
		}
		fmt.Println()
	}

	fmt.Printf("  Formats:     %s\n", strings.Join(detectOutputFormats(r), ", "))
	fmt.Println()

	data, _ := json.Marshal(r)
	fmt.Printf("  Report:      %s (%s)\n", manifest.FileName, formatBytes(int64(len(data))))
	fmt.Println()
}

func detectOutputFormats(r *manifest.Report) []string {
	set := map[string]bool{}
	for _, c := range r.Captures {
		set[c.Format] = true
	}
	var out []string
	for _, f := range []string{"jpeg", "webp", "png"} {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}
