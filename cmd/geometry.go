package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tansawit/notiv-sub000/internal/geometry"
	"github.com/tansawit/notiv-sub000/internal/profile"
)

var (
	geomRect    []float64
	geomDPR     float64
	geomMax     int
	geomRegions string
)

var geometryCmd = &cobra.Command{
	Use:   "geometry <bitmap_width> <bitmap_height>",
	Short: "Resolve the crop window for a rectangle without capturing",
	Long: `Maps a CSS-pixel rectangle onto a bitmap of the given size and prints
the clamped source window and output size as JSON.

--max defaults to the crop profile of the configured target.`,
	Args: cobra.ExactArgs(2),
	RunE: runGeometry,
}

var mergeCmd = &cobra.Command{
	Use:   "merge <regions_file>",
	Short: "Print the padded union of a list of regions",
	Long: `Reads regions (YAML or JSON) and prints the bounding rectangle a grouped
capture would use, padded by 120 CSS pixels and clamped to the first
region's viewport.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	geometryCmd.Flags().Float64SliceVarP(&geomRect, "rect", "r", nil, "x,y,width,height in CSS pixels")
	geometryCmd.Flags().Float64Var(&geomDPR, "dpr", geometry.DefaultDevicePixelRatio, "device pixel ratio")
	geometryCmd.Flags().IntVar(&geomMax, "max", 0, "maximum output dimension (0 = crop profile)")
	_ = geometryCmd.MarkFlagRequired("rect")
	rootCmd.AddCommand(geometryCmd, mergeCmd)
}

func runGeometry(_ *cobra.Command, args []string) error {
	w, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bitmap width: %w", err)
	}
	h, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bitmap height: %w", err)
	}
	rect, err := parseRect(geomRect)
	if err != nil {
		return err
	}

	maxDim := geomMax
	if maxDim <= 0 {
		key := profile.Key(profile.KindCrop, appConfig.DefaultTarget())
		maxDim = appConfig.Profiles()[key].MaxDimension
	}
	logVerbose("bitmap %dx%d, dpr %g, max %d", w, h, geomDPR, maxDim)

	g := geometry.ResolveCrop(geometry.CropInput{
		BitmapWidth:      w,
		BitmapHeight:     h,
		Rect:             rect,
		DevicePixelRatio: geomDPR,
		MaxDimension:     maxDim,
	})
	return printJSON(g)
}

func runMerge(_ *cobra.Command, args []string) error {
	var regions []geometry.Region
	if err := readYAML(args[0], &regions); err != nil {
		return err
	}
	rect, ok := geometry.MergeBounds(regions)
	if !ok {
		return fmt.Errorf("no bounds for %d region(s)", len(regions))
	}
	logVerbose("merged %d regions", len(regions))
	return printJSON(rect)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
