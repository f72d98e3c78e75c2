package layout

import (
	"fmt"
	"strconv"
)

// PercentEntry is one labeled percentage in the distribution table.
type PercentEntry struct {
	Label   string
	Percent float64
}

// Distribution table geometry.
const (
	tableRowHeight = 36.0
	tableColumnGap = 24.0
	tableBarHeight = 7.0
	tableBarDrop   = 3.0
)

// Bar colors: a light track under a filled value bar.
var (
	tableTrackColor = [3]int{229, 231, 235}
	tableBarColor   = [3]int{47, 84, 150}
)

// DrawDistributionTable renders label/percent pairs in two columns, each
// entry as a "Label: N%" line over a bar filled proportionally to the
// percentage. Zero-percent entries are skipped before pairing, so they
// occupy no cell at all. A new row starts after every two drawn entries,
// and each row passes through the overflow check individually.
func (e *Engine) DrawDistributionTable(entries []PercentEntry) error {
	if err := e.active(); err != nil {
		return err
	}

	drawn := nonZeroEntries(entries)
	if len(drawn) == 0 {
		return nil
	}

	colW := (e.ContentWidth() - tableColumnGap) / 2
	for i := 0; i < len(drawn); i += 2 {
		e.EnsureSpace(tableRowHeight)
		top := e.cursor

		e.drawPercentCell(drawn[i], e.cfg.Margins.Left, colW)
		if i+1 < len(drawn) {
			e.cursor = top
			e.drawPercentCell(drawn[i+1], e.cfg.Margins.Left+tableColumnGap+colW, colW)
		}

		e.cursor = top - tableRowHeight
	}
	return nil
}

// drawPercentCell draws one labeled bar at x. The caller owns row height
// accounting; the cell only moves the cursor past its own label line.
func (e *Engine) drawPercentCell(entry PercentEntry, x, width float64) {
	st := TextStyle{Size: baseFontSize}
	e.drawTextLine(fmt.Sprintf("%s: %s%%", entry.Label, formatPercent(entry.Percent)), x, width, st)

	barW := width * entry.Percent / 100
	if barW > width {
		barW = width
	}
	y := e.toY(e.cursor) + tableBarDrop

	e.pdf.SetFillColor(tableTrackColor[0], tableTrackColor[1], tableTrackColor[2])
	e.pdf.Rect(x, y, width, tableBarHeight, "F")
	e.pdf.SetFillColor(tableBarColor[0], tableBarColor[1], tableBarColor[2])
	e.pdf.Rect(x, y, barW, tableBarHeight, "F")
}

// nonZeroEntries drops zero-percent entries before pairing.
func nonZeroEntries(entries []PercentEntry) []PercentEntry {
	out := make([]PercentEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Percent != 0 {
			out = append(out, entry)
		}
	}
	return out
}

// formatPercent prints a percentage without trailing zeros: "40", "12.5".
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
