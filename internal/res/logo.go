package res

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// logoRasterSize is the pixel edge SVG logos are rasterized into.
const logoRasterSize = 256

// LoadLogo loads the school logo from path as embeddable raster bytes.
// SVG logos are rasterized to PNG; raster logos pass through unchanged.
// When the primary file cannot be loaded or decoded, one sibling with the
// alternate extension is probed before giving up. A missing logo returns
// nil: the report simply renders without one.
func (l *Loader) LoadLogo(path string) []byte {
	for _, candidate := range logoCandidates(path) {
		if data, ok := l.tryLogo(candidate); ok {
			return data
		}
	}
	return nil
}

// logoCandidates returns the primary path plus one alternate-format
// sibling: .svg for raster requests, .png for vector ones.
func logoCandidates(path string) []string {
	ext := strings.ToLower(filepath.Ext(path))
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	if ext == ".svg" {
		return []string{path, stem + ".png"}
	}
	return []string{path, stem + ".svg"}
}

func (l *Loader) tryLogo(path string) ([]byte, bool) {
	res, err := l.Load(path)
	if err != nil {
		return nil, false
	}

	if isSVG(res) {
		data, err := rasterizeSVG(res.Data, logoRasterSize)
		if err != nil {
			return nil, false
		}
		return data, true
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(res.Data)); err != nil {
		return nil, false
	}
	return res.Data, true
}

func isSVG(res *Resource) bool {
	if strings.Contains(res.MimeType, "svg") {
		return true
	}
	head := bytes.TrimSpace(res.Data)
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// rasterizeSVG renders vector data into a PNG whose longest edge is size
// pixels, keeping the vector's own aspect ratio.
func rasterizeSVG(data []byte, size int) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	w, h := size, size
	if icon.ViewBox.W > 0 && icon.ViewBox.H > 0 {
		if icon.ViewBox.W >= icon.ViewBox.H {
			h = int(float64(size) * icon.ViewBox.H / icon.ViewBox.W)
		} else {
			w = int(float64(size) * icon.ViewBox.W / icon.ViewBox.H)
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode rasterized svg: %w", err)
	}
	return buf.Bytes(), nil
}
