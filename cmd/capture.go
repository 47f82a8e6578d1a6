package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tansawit/notiv-sub000/internal/geometry"
	"github.com/tansawit/notiv-sub000/internal/hostcapture"
	"github.com/tansawit/notiv-sub000/internal/pipeline"
)

var (
	captureFrame   string
	captureDisplay string
	captureTarget  string
	captureOutDir  string
	captureDataURL bool
	captureRect    []float64
	captureDPR     float64
	captureNotes   string
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a frame and compress it",
	Long: `Takes one frame from a stored image (--frame) or a display (--display)
and compresses it with the profile for the chosen target.

Payloads are written to the output directory as <name>.<w>x<h>.<hash>.ext,
or printed as data URLs with --data-url.`,
}

var captureVisibleCmd = &cobra.Command{
	Use:   "visible",
	Short: "Compress the whole frame",
	Args:  cobra.NoArgs,
	RunE:  runCaptureVisible,
}

var captureRegionCmd = &cobra.Command{
	Use:   "region",
	Short: "Compress a CSS-pixel rectangle of the frame",
	Args:  cobra.NoArgs,
	RunE:  runCaptureRegion,
}

var captureElementCmd = &cobra.Command{
	Use:   "element",
	Short: "Produce the full frame and the element crop from one frame",
	Args:  cobra.NoArgs,
	RunE:  runCaptureElement,
}

var captureGroupedCmd = &cobra.Command{
	Use:   "grouped",
	Short: "Capture several notes in one image",
	Long: `Reads a list of notes (YAML or JSON) and captures the padded union of
their regions, clamped to the first note's viewport. Notes without a box
use a 120x80 box centered on their anchor.`,
	Args: cobra.NoArgs,
	RunE: runCaptureGrouped,
}

var captureDisplaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List active displays",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		for _, d := range hostcapture.Displays() {
			fmt.Println("  " + d)
		}
	},
}

func init() {
	pf := captureCmd.PersistentFlags()
	pf.StringVarP(&captureFrame, "frame", "f", "", "stored frame file (image or data URL)")
	pf.StringVarP(&captureDisplay, "display", "d", "", "display index (default 0)")
	pf.StringVarP(&captureTarget, "target", "t", "", "output target: default or clipboard")
	pf.StringVarP(&captureOutDir, "out", "o", "", "output directory (default from config)")
	pf.BoolVar(&captureDataURL, "data-url", false, "print data URLs instead of writing files")

	for _, c := range []*cobra.Command{captureRegionCmd, captureElementCmd} {
		c.Flags().Float64SliceVarP(&captureRect, "rect", "r", nil, "x,y,width,height in CSS pixels")
		c.Flags().Float64Var(&captureDPR, "dpr", geometry.DefaultDevicePixelRatio, "device pixel ratio")
		_ = c.MarkFlagRequired("rect")
	}
	captureGroupedCmd.Flags().StringVarP(&captureNotes, "notes", "n", "", "notes file (YAML or JSON)")
	_ = captureGroupedCmd.MarkFlagRequired("notes")

	captureCmd.AddCommand(captureVisibleCmd, captureRegionCmd, captureElementCmd, captureGroupedCmd, captureDisplaysCmd)
	rootCmd.AddCommand(captureCmd)
}

func captureSetup() (*pipeline.Pipeline, string, payloadWriter, error) {
	src, target, err := frameSource(captureFrame, captureDisplay)
	if err != nil {
		return nil, "", payloadWriter{}, err
	}
	dir := captureOutDir
	if dir == "" {
		dir = appConfig.OutputDir
	}
	return newPipeline(src, logPreparer{}), target, payloadWriter{dir: dir, dataURL: captureDataURL}, nil
}

func runCaptureVisible(cmd *cobra.Command, _ []string) error {
	target, err := resolveTarget(captureTarget)
	if err != nil {
		return err
	}
	p, frame, w, err := captureSetup()
	if err != nil {
		return err
	}
	out, err := p.CaptureVisible(cmd.Context(), frame, target)
	if err != nil {
		return fmt.Errorf("capture visible: %w", err)
	}
	return w.write("visible", out)
}

func runCaptureRegion(cmd *cobra.Command, _ []string) error {
	target, err := resolveTarget(captureTarget)
	if err != nil {
		return err
	}
	rect, err := parseRect(captureRect)
	if err != nil {
		return err
	}
	p, frame, w, err := captureSetup()
	if err != nil {
		return err
	}
	out, err := p.CaptureRegion(cmd.Context(), frame, rect, captureDPR, target)
	if err != nil {
		return fmt.Errorf("capture region: %w", err)
	}
	logVerbose("crop window: %+v", *out.Geometry)
	return w.write("region", out)
}

func runCaptureElement(cmd *cobra.Command, _ []string) error {
	rect, err := parseRect(captureRect)
	if err != nil {
		return err
	}
	p, frame, w, err := captureSetup()
	if err != nil {
		return err
	}
	out, err := p.CaptureElement(cmd.Context(), frame, rect, captureDPR)
	if err != nil {
		return fmt.Errorf("capture element: %w", err)
	}
	if err := w.write("element-full", out.Full); err != nil {
		return err
	}
	return w.write("element", out.Cropped)
}

func runCaptureGrouped(cmd *cobra.Command, _ []string) error {
	target, err := resolveTarget(captureTarget)
	if err != nil {
		return err
	}
	var notes []pipeline.Note
	if err := readYAML(captureNotes, &notes); err != nil {
		return err
	}
	p, frame, w, err := captureSetup()
	if err != nil {
		return err
	}
	out, err := p.CaptureGrouped(cmd.Context(), frame, notes, target)
	if err != nil {
		return fmt.Errorf("capture grouped: %w", err)
	}
	return w.write("grouped", out)
}
