package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tansawit/notiv-sub000/internal/encoder"
	"github.com/tansawit/notiv-sub000/internal/geometry"
	"github.com/tansawit/notiv-sub000/internal/hostcapture"
	"github.com/tansawit/notiv-sub000/internal/pipeline"
	"github.com/tansawit/notiv-sub000/internal/profile"
)

func TestParseRect(t *testing.T) {
	r, err := parseRect([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}, r)

	_, err = parseRect([]float64{1, 2})
	assert.Error(t, err)
}

func TestFrameSource(t *testing.T) {
	src, target, err := frameSource("shot.png", "")
	require.NoError(t, err)
	assert.IsType(t, hostcapture.FileSource{}, src)
	assert.Equal(t, "shot.png", target)

	src, target, err = frameSource("", "1")
	require.NoError(t, err)
	assert.IsType(t, hostcapture.DisplaySource{}, src)
	assert.Equal(t, "1", target)

	_, _, err = frameSource("shot.png", "1")
	assert.Error(t, err)
}

func TestResolveTarget(t *testing.T) {
	got, err := resolveTarget("clipboard")
	require.NoError(t, err)
	assert.Equal(t, profile.TargetClipboard, got)

	got, err = resolveTarget("")
	require.NoError(t, err)
	assert.Equal(t, appConfig.DefaultTarget(), got)

	_, err = resolveTarget("printer")
	assert.Error(t, err)
}

func TestReadYAML_Notes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- region:
    anchor: {x: 100, y: 200}
    box: {x: 80, y: 180, width: 40, height: 40}
    viewport: {width: 1280, height: 800, devicePixelRatio: 2}
  comment: button misaligned
- region:
    anchor: {x: 400, y: 50}
`), 0o644))

	var notes []pipeline.Note
	require.NoError(t, readYAML(path, &notes))
	require.Len(t, notes, 2)
	require.NotNil(t, notes[0].Region.Box)
	assert.Equal(t, 40.0, notes[0].Region.Box.Width)
	assert.Equal(t, 2.0, notes[0].Region.DevicePixelRatio())
	assert.Equal(t, "button misaligned", notes[0].Comment)
	assert.Nil(t, notes[1].Region.Box)
}

func TestPayloadWriter(t *testing.T) {
	dir := t.TempDir()
	w := payloadWriter{dir: dir}
	out := &encoder.Payload{
		Profile:   "crop/default",
		Format:    "jpeg",
		MIMEType:  "image/jpeg",
		Extension: "jpg",
		Data:      []byte("not really a jpeg"),
		Width:     10,
		Height:    20,
		Passes:    1,
	}
	require.NoError(t, w.write("region", out))

	matches, err := filepath.Glob(filepath.Join(dir, "region.10x20.*.jpg"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, out.Data, data)
}
