package layout

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
)

// Margins represents page margins
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins is the inset used when a config does not set its own.
var DefaultMargins = Margins{Top: 54, Right: 54, Bottom: 54, Left: 54}

// ContentWidth returns the usable width between the side margins.
func (m Margins) ContentWidth(page PageSize) float64 {
	return page.Width - m.Left - m.Right
}

// ContentHeight returns the usable height between the vertical margins.
func (m Margins) ContentHeight(page PageSize) float64 {
	return page.Height - m.Top - m.Bottom
}
