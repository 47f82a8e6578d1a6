package pipeline

import (
	"context"
	"errors"

	"github.com/tansawit/notiv-sub000/internal/encoder"
	"github.com/tansawit/notiv-sub000/internal/geometry"
	"github.com/tansawit/notiv-sub000/internal/profile"
)

// ErrNoRegions is returned when a grouped capture is asked for no notes.
var ErrNoRegions = errors.New("no regions to capture")

// Note is an annotated region together with what is drawn for it while
// the frame is taken.
type Note struct {
	Region  geometry.Region `json:"region"`
	Comment string          `json:"comment,omitempty"`
	Color   string          `json:"color,omitempty"`
}

// Highlight is a box outlined on the page during capture.
type Highlight struct {
	Box   geometry.Rect `json:"box"`
	Color string        `json:"color,omitempty"`
}

// Marker is a numbered pin drawn at a note's anchor during capture.
type Marker struct {
	Anchor geometry.Point `json:"anchor"`
	Index  int            `json:"index"`
	Text   string         `json:"text,omitempty"`
	Color  string         `json:"color,omitempty"`
}

// PrepareRequest describes what the page should draw before a frame is
// taken.
type PrepareRequest struct {
	Highlights []Highlight `json:"highlights"`
	Markers    []Marker    `json:"markers"`
}

// Preparer decorates the page around a capture. Both calls are best
// effort: failures are logged and never fail the capture.
type Preparer interface {
	Prepare(ctx context.Context, target string, req PrepareRequest) error
	Restore(ctx context.Context, target string) error
}

// BuildPrepareRequest draws a highlight for every note with an explicit
// box and a marker, numbered from 1, for every note.
func BuildPrepareRequest(notes []Note) PrepareRequest {
	req := PrepareRequest{
		Highlights: []Highlight{},
		Markers:    make([]Marker, 0, len(notes)),
	}
	for i, n := range notes {
		if n.Region.Box != nil {
			req.Highlights = append(req.Highlights, Highlight{Box: *n.Region.Box, Color: n.Color})
		}
		req.Markers = append(req.Markers, Marker{
			Anchor: n.Region.Anchor,
			Index:  i + 1,
			Text:   n.Comment,
			Color:  n.Color,
		})
	}
	return req
}

// CaptureGrouped captures all notes in one image. The notes' regions are
// merged into one rectangle which is captured with the first note's device
// pixel ratio; when no rectangle results the whole viewport is captured.
func (p *Pipeline) CaptureGrouped(ctx context.Context, target string, notes []Note, kind profile.Target) (*encoder.Payload, error) {
	if len(notes) == 0 {
		return nil, ErrNoRegions
	}

	regions := make([]geometry.Region, len(notes))
	for i, n := range notes {
		regions[i] = n.Region
	}

	var out *encoder.Payload
	err := p.withPreparation(ctx, target, BuildPrepareRequest(notes), func() error {
		var err error
		if box, ok := geometry.MergeBounds(regions); ok {
			p.logf("grouped %d notes into %.0fx%.0f at (%.0f,%.0f)", len(notes), box.Width, box.Height, box.X, box.Y)
			out, err = p.CaptureRegion(ctx, target, box, regions[0].DevicePixelRatio(), kind)
		} else {
			p.logf("grouped bounds unavailable, capturing visible viewport")
			out, err = p.CaptureVisible(ctx, target, kind)
		}
		return err
	})
	return out, err
}

// CaptureAnnotation captures a single note: its element crop plus the
// full viewport for context. A note without a box is cropped to a 1x1
// window at the page origin.
func (p *Pipeline) CaptureAnnotation(ctx context.Context, target string, note Note) (ElementCapture, error) {
	box := geometry.Rect{Width: 1, Height: 1}
	if note.Region.Box != nil {
		box = *note.Region.Box
	}

	var out ElementCapture
	err := p.withPreparation(ctx, target, BuildPrepareRequest([]Note{note}), func() error {
		var err error
		out, err = p.CaptureElement(ctx, target, box, note.Region.DevicePixelRatio())
		return err
	})
	return out, err
}

// withPreparation runs capture between Prepare and Restore. Restore runs
// on every exit path.
func (p *Pipeline) withPreparation(ctx context.Context, target string, req PrepareRequest, capture func() error) error {
	if p.cfg.Preparer == nil {
		return capture()
	}
	if err := p.cfg.Preparer.Prepare(ctx, target, req); err != nil {
		p.logf("prepare %s: %v (continuing)", target, err)
	}
	defer func() {
		if err := p.cfg.Preparer.Restore(ctx, target); err != nil {
			p.logf("restore %s: %v", target, err)
		}
	}()
	return capture()
}
