package layout

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/mariocj89/chf-activity-report/internal/imaging"
)

// DrawImage embeds encoded image bytes at the left margin, scaled to
// maxWidth with the source aspect ratio preserved. When maxHeight is
// positive and the scaled height exceeds it, the height is clamped and
// the width re-derived from the same ratio. The reserved footprint is the
// draw height plus a fixed gap. A decode failure is fatal to the caller.
func (e *Engine) DrawImage(data []byte, maxWidth, maxHeight float64) error {
	if err := e.active(); err != nil {
		return err
	}

	embed, typ, pxW, pxH, err := imaging.Embeddable(data)
	if err != nil {
		return err
	}
	if pxW == 0 || pxH == 0 {
		return fmt.Errorf("layout: image has no pixels")
	}

	drawW, drawH := fitImage(float64(pxW), float64(pxH), maxWidth, maxHeight)

	e.EnsureSpace(drawH + imageGap)
	name := e.registerImage(embed, typ)
	e.pdf.ImageOptions(name, e.cfg.Margins.Left, e.toY(e.cursor), drawW, drawH,
		false, fpdf.ImageOptions{ImageType: typ}, 0, "")
	e.cursor -= drawH + imageGap
	return e.pdfErr()
}

// DrawOverlayImage places an image inside the box (x, y, maxW, maxH)
// without moving the cursor, shrinking it to fit while preserving its
// aspect ratio. x and y are measured from the page's top-left corner.
// Used for page furniture such as the corner logo.
func (e *Engine) DrawOverlayImage(data []byte, x, y, maxW, maxH float64) error {
	if err := e.active(); err != nil {
		return err
	}

	embed, typ, pxW, pxH, err := imaging.Embeddable(data)
	if err != nil {
		return err
	}
	if pxW == 0 || pxH == 0 {
		return fmt.Errorf("layout: image has no pixels")
	}

	drawW, drawH := fitImage(float64(pxW), float64(pxH), maxW, maxH)
	name := e.registerImage(embed, typ)
	e.pdf.ImageOptions(name, x, y, drawW, drawH,
		false, fpdf.ImageOptions{ImageType: typ}, 0, "")
	return e.pdfErr()
}

// DrawImageGrid lays images out in rows of columns cells separated by gap
// points. Every cell shares one width, derived from the content width,
// and one height, derived from the configured cell aspect ratio, so rows
// stay rectangular regardless of each image's own ratio. Pagination is
// row-atomic: a row never splits across pages, though the grid as a whole
// may continue on the next page. A short final row leaves its unused
// slots empty.
func (e *Engine) DrawImageGrid(images [][]byte, columns int, gap float64) error {
	if err := e.active(); err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	if columns < 1 {
		columns = 1
	}

	// Decode everything up front so a bad image aborts before anything
	// is placed.
	names := make([]string, len(images))
	types := make([]string, len(images))
	for i, img := range images {
		embed, typ, _, _, err := imaging.Embeddable(img)
		if err != nil {
			return fmt.Errorf("grid image %d: %w", i+1, err)
		}
		names[i] = e.registerImage(embed, typ)
		types[i] = typ
	}

	cellW := gridCellWidth(e.ContentWidth(), columns, gap)
	cellH := cellW / e.cfg.GridAspect
	rows := gridRowCount(len(images), columns)

	for row := 0; row < rows; row++ {
		e.EnsureSpace(cellH)
		top := e.toY(e.cursor)

		x := e.cfg.Margins.Left
		for col := 0; col < columns; col++ {
			i := row*columns + col
			if i >= len(images) {
				break
			}
			e.pdf.ImageOptions(names[i], x, top, cellW, cellH,
				false, fpdf.ImageOptions{ImageType: types[i]}, 0, "")
			x += cellW + gap
		}

		e.cursor -= cellH
		if row < rows-1 {
			if e.cursor-gap < e.cfg.Margins.Bottom {
				e.cursor = e.cfg.Margins.Bottom
			} else {
				e.cursor -= gap
			}
		}
	}
	return e.pdfErr()
}

// fitImage computes the draw size for a pxW x pxH source: scale to
// maxWidth first, then clamp to maxHeight re-deriving the width, so the
// ratio survives both constraints.
func fitImage(pxW, pxH, maxWidth, maxHeight float64) (w, h float64) {
	w = maxWidth
	h = w * pxH / pxW
	if maxHeight > 0 && h > maxHeight {
		h = maxHeight
		w = h * pxW / pxH
	}
	return w, h
}

// gridCellWidth returns the uniform cell width for a column count: the
// content width minus the interior gaps, split evenly.
func gridCellWidth(contentWidth float64, columns int, gap float64) float64 {
	return (contentWidth - gap*float64(columns-1)) / float64(columns)
}

// gridRowCount returns how many rows a count of images occupies.
func gridRowCount(images, columns int) int {
	return (images + columns - 1) / columns
}

// registerImage hands image bytes to the writer under a fresh name.
// Names are per-document; the sequence restarts with each engine.
func (e *Engine) registerImage(data []byte, typ string) string {
	e.imageSeq++
	name := fmt.Sprintf("img-%d", e.imageSeq)
	e.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: typ}, bytes.NewReader(data))
	return name
}
