package layout

import (
	"sync"

	"codeberg.org/go-pdf/fpdf"
)

// A single hidden document instance serves every width measurement, so
// measured widths always come from the same font tables the renderer
// draws with.
var (
	measureOnce sync.Once
	measurePDF  *fpdf.Fpdf
	measureMu   sync.Mutex
)

func initMeasurePDF() {
	measurePDF = fpdf.New("P", "pt", "", "")
	measurePDF.SetFont(fontFamily, "", baseFontSize)
}

// measureTextWidth returns the rendered width of text in points under the
// given style.
func measureTextWidth(text string, st TextStyle) float64 {
	if text == "" || st.Size <= 0 {
		return 0
	}

	measureOnce.Do(initMeasurePDF)

	measureMu.Lock()
	defer measureMu.Unlock()

	measurePDF.SetFont(fontFamily, st.fontStyle(), st.Size)
	return measurePDF.GetStringWidth(text)
}
