//go:build ignore

// gen_fixtures writes stored frames for the batch smoke test: two page
// screenshots, a noisy retina frame large enough to trigger the second
// pass, and a frame saved as a data URL.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	must(os.MkdirAll(filepath.Join(dir, "session"), 0o755))

	// Page screenshots at DPR 1.
	for i := 1; i <= 2; i++ {
		name := fmt.Sprintf("page-%d.png", i)
		must(os.WriteFile(filepath.Join(dir, "session", name), encodePNG(page(1280, 800, uint8(i*70))), 0o644))
	}

	// Retina frame full of noise; compresses poorly.
	must(os.WriteFile(filepath.Join(dir, "retina.jpg"), encodeJPEG(noise(2560, 1600)), 0o644))

	// Frame as handed over by a browser extension.
	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(page(640, 400, 200)))
	must(os.WriteFile(filepath.Join(dir, "popup.dataurl"), []byte(url), 0o644))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 4 frames in %s\n", dir)
}

// page draws a toolbar, a content column and a highlighted button.
func page(w, h int, tint uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 245, G: 245, B: 240, A: 255}
			switch {
			case y < 56:
				c = color.NRGBA{R: tint, G: 40, B: 90, A: 255}
			case x > w/4 && x < w*3/4:
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
				if (y/24)%2 == 0 && x < w*2/3 {
					c = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
				}
			}
			if x >= w/2-80 && x < w/2+80 && y >= h-120 && y < h-80 {
				c = color.NRGBA{R: 30, G: 120, B: tint, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func noise(w, h int) *image.NRGBA {
	rng := rand.New(rand.NewSource(7))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rng.Read(img.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	must(png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(img image.Image) []byte {
	var buf bytes.Buffer
	must(jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))
	return buf.Bytes()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
