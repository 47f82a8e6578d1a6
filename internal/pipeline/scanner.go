package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Frame is a raw frame stored on disk, as produced by a host capture.
type Frame struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the scanned directory, slash separated.
	RelPath string
	// Key names the capture in reports (RelPath without extension).
	Key string
	// Format is the frame's container: png, jpeg, webp, bmp, tiff or dataurl.
	Format string
	// Size is the file size in bytes.
	Size int64
}

// frameFormats maps recognized extensions to frame formats. ".dataurl"
// files hold a base64 data URL as returned by browser capture APIs.
var frameFormats = map[string]string{
	".png":     "png",
	".jpg":     "jpeg",
	".jpeg":    "jpeg",
	".webp":    "webp",
	".bmp":     "bmp",
	".tif":     "tiff",
	".tiff":    "tiff",
	".dataurl": "dataurl",
}

// ScanFrames walks dir and returns every raw frame under it, sorted by
// RelPath. Hidden directories are skipped.
func ScanFrames(dir string) ([]Frame, error) {
	var frames []Frame

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		format, ok := frameFormats[ext]
		if !ok {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)
		frames = append(frames, Frame{
			AbsPath: abs,
			RelPath: rel,
			Key:     strings.TrimSuffix(rel, filepath.Ext(rel)),
			Format:  format,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(frames, func(i, j int) bool { return frames[i].RelPath < frames[j].RelPath })
	return frames, nil
}
