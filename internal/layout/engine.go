// Package layout implements a single-pass document layout engine: a
// running vertical cursor over fixed-size pages, one pagination primitive,
// and the draw operations the report renderer sequences. Content is placed
// strictly top to bottom; nothing is revisited once drawn.
package layout

import (
	"bytes"
	"errors"
	"fmt"

	"codeberg.org/go-pdf/fpdf"
)

// DefaultOrphanLines is the minimum number of lines of a wrapped block
// that must fit in the remaining page space before the block may start
// there instead of on a fresh page.
const DefaultOrphanLines = 2

// defaultGridAspect is the width to height ratio shared by all image grid
// cells.
const defaultGridAspect = 4.0 / 3.0

// imageGap is the vertical gap reserved under every standalone image.
const imageGap = 10.0

// fieldIndent is the left inset of wrapped field values relative to their
// label.
const fieldIndent = 18.0

// ruleSpace is the total vertical room a horizontal rule consumes.
const ruleSpace = 12.0

// Config carries the fixed page geometry and layout policy for one engine.
// Zero-valued fields fall back to usable defaults.
type Config struct {
	Page    PageSize
	Margins Margins

	// OrphanLines overrides DefaultOrphanLines when positive.
	OrphanLines int

	// GridAspect overrides the grid cell ratio when positive.
	GridAspect float64

	// Debug outlines placed line boxes.
	Debug bool
}

type state int

const (
	stateEmpty state = iota
	stateActive
	stateFinalized
)

var (
	errNotStarted     = errors.New("layout: document not started")
	errAlreadyStarted = errors.New("layout: document already started")
	errFinalized      = errors.New("layout: document already finalized")
)

// Meta mirrors the document information dictionary.
type Meta struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
}

// Engine owns the cursor, the page sequence and the underlying document
// writer. An engine belongs to exactly one generation call chain and is
// not safe for concurrent use.
type Engine struct {
	cfg Config
	pdf *fpdf.Fpdf

	state state

	// cursor is the current vertical position measured upward from the
	// page bottom. While a document is active it stays within
	// [Margins.Bottom, Page.Height-Margins.Top].
	cursor float64

	pages    int
	imageSeq int
}

// NewEngine returns an engine in its initial empty state.
func NewEngine(cfg Config) *Engine {
	if cfg.Page.Width <= 0 || cfg.Page.Height <= 0 {
		cfg.Page = PageSizeLetter
	}
	if cfg.Margins == (Margins{}) {
		cfg.Margins = DefaultMargins
	}
	if cfg.OrphanLines <= 0 {
		cfg.OrphanLines = DefaultOrphanLines
	}
	if cfg.GridAspect <= 0 {
		cfg.GridAspect = defaultGridAspect
	}
	return &Engine{cfg: cfg}
}

// StartDocument creates the document writer and the first page and resets
// the cursor to the top margin. It is valid exactly once per engine.
func (e *Engine) StartDocument() error {
	switch e.state {
	case stateActive:
		return errAlreadyStarted
	case stateFinalized:
		return errFinalized
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: e.cfg.Page.Width, Ht: e.cfg.Page.Height},
	})
	// Pagination is the engine's job; the writer must never break pages
	// on its own.
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(fontFamily, "", baseFontSize)

	e.pdf = pdf
	e.state = stateActive
	e.newPage()
	return e.pdfErr()
}

// SetMeta applies the document information entries. Valid only between
// StartDocument and Finalize.
func (e *Engine) SetMeta(m Meta) error {
	if err := e.active(); err != nil {
		return err
	}
	e.pdf.SetTitle(m.Title, true)
	e.pdf.SetAuthor(m.Author, true)
	e.pdf.SetSubject(m.Subject, true)
	e.pdf.SetKeywords(m.Keywords, true)
	e.pdf.SetCreator(m.Creator, true)
	return nil
}

// active reports whether draw operations are currently legal.
func (e *Engine) active() error {
	switch e.state {
	case stateEmpty:
		return errNotStarted
	case stateFinalized:
		return errFinalized
	}
	return nil
}

// newPage appends a page and resets the cursor to the top margin. Pages
// are append-only; the newest page is always the current one.
func (e *Engine) newPage() {
	e.pdf.AddPage()
	e.pages++
	e.cursor = e.cfg.Page.Height - e.cfg.Margins.Top
}

// NewPage unconditionally starts a fresh page.
func (e *Engine) NewPage() error {
	if err := e.active(); err != nil {
		return err
	}
	e.newPage()
	return nil
}

// EnsureSpace is the single pagination primitive: when fewer than height
// points remain above the bottom margin it starts a new page, and it
// reports whether that break happened. Every draw operation funnels its
// space demand through here.
func (e *Engine) EnsureSpace(height float64) bool {
	if e.active() != nil {
		return false
	}
	if e.cursor-height < e.cfg.Margins.Bottom {
		e.newPage()
		return true
	}
	return false
}

// Cursor returns the current vertical offset measured from the page bottom.
func (e *Engine) Cursor() float64 { return e.cursor }

// PageCount returns the number of pages created so far.
func (e *Engine) PageCount() int { return e.pages }

// Page returns the configured page size.
func (e *Engine) Page() PageSize { return e.cfg.Page }

// ContentWidth returns the usable width between the side margins.
func (e *Engine) ContentWidth() float64 {
	return e.cfg.Margins.ContentWidth(e.cfg.Page)
}

// RemainingHeight returns the drawable space left above the bottom margin.
func (e *Engine) RemainingHeight() float64 {
	return e.cursor - e.cfg.Margins.Bottom
}

// LeftX returns the x position of the left content edge.
func (e *Engine) LeftX() float64 { return e.cfg.Margins.Left }

// toY converts a bottom-based cursor offset into the writer's top-based
// coordinate space.
func (e *Engine) toY(cursor float64) float64 {
	return e.cfg.Page.Height - cursor
}

// drawTextLine places one already-wrapped line at x and advances the
// cursor by the style's line height. maxWidth only participates in
// alignment; callers guarantee the line fits.
func (e *Engine) drawTextLine(text string, x, maxWidth float64, st TextStyle) {
	lineH := st.lineHeight()
	top := e.toY(e.cursor)
	e.cursor -= lineH

	r, g, b := st.rgb()
	e.pdf.SetTextColor(r, g, b)
	e.pdf.SetFont(fontFamily, st.fontStyle(), st.Size)

	startX := x
	if maxWidth > 0 && st.Align != AlignLeft {
		textWidth := e.pdf.GetStringWidth(text)
		switch st.Align {
		case AlignCenter:
			startX = x + (maxWidth-textWidth)/2
		case AlignRight:
			startX = x + maxWidth - textWidth
		}
		if startX < x {
			startX = x
		}
	}

	// Distribute leading evenly above and below the glyph box.
	ascent := ascentRatio * st.Size
	descent := descentRatio * st.Size
	leading := lineH - (ascent + descent)
	if leading < 0 {
		leading = 0
	}
	e.pdf.Text(startX, top+ascent+leading/2, text)

	if e.cfg.Debug {
		e.pdf.SetDrawColor(220, 120, 120)
		e.pdf.SetLineWidth(0.3)
		w := maxWidth
		if w <= 0 {
			w = e.pdf.GetStringWidth(text)
		}
		e.pdf.Rect(x, top, w, lineH, "D")
	}
}

// DrawHeading draws bold heading text at the left margin with the level's
// fixed spacing above and below. The full consumed height is reserved in
// one piece so a heading never splits from its own spacing.
func (e *Engine) DrawHeading(text string, level int) error {
	if err := e.active(); err != nil {
		return err
	}

	hs := headingStyleFor(level)
	e.EnsureSpace(hs.spaceAbove + hs.size + hs.spaceBelow)

	e.cursor -= hs.spaceAbove
	e.drawTextLine(text, e.cfg.Margins.Left, e.ContentWidth(), TextStyle{
		Size:        hs.size,
		Bold:        true,
		Color:       hs.color,
		LineSpacing: 1,
	})
	e.cursor -= hs.spaceBelow
	return nil
}

// DrawWrappedText wraps text to maxWidth and draws it line by line
// starting at x. When the whole block cannot finish in the remaining
// space and fewer than the orphan threshold of lines would fit, the
// block starts on a fresh page instead of stranding a line or two at the
// page bottom. Long blocks still straddle pages after that. Returns the
// total height consumed, independent of page breaks.
func (e *Engine) DrawWrappedText(text string, x, maxWidth float64, st TextStyle) (float64, error) {
	if err := e.active(); err != nil {
		return 0, err
	}
	if st.Size <= 0 {
		st.Size = baseFontSize
	}

	lines := wrapText(text, maxWidth, st)
	if len(lines) == 0 {
		return 0, nil
	}

	lineH := st.lineHeight()
	if blockH := float64(len(lines)) * lineH; blockH > e.RemainingHeight() {
		if int(e.RemainingHeight()/lineH) < e.cfg.OrphanLines {
			e.newPage()
		}
	}

	consumed := 0.0
	for _, line := range lines {
		e.EnsureSpace(lineH)
		e.drawTextLine(line, x, maxWidth, st)
		consumed += lineH
	}
	return consumed, nil
}

// DrawField draws a bold "label: " prefix with the value in regular
// weight on the same baseline when the value fits the rest of the line.
// A value too wide for that continues on its own indented, wrapped lines
// under the label.
func (e *Engine) DrawField(label, value string) error {
	if err := e.active(); err != nil {
		return err
	}

	labelStyle := TextStyle{Size: baseFontSize, Bold: true}
	valueStyle := TextStyle{Size: baseFontSize}

	e.EnsureSpace(labelStyle.lineHeight())

	x := e.cfg.Margins.Left
	prefix := label + ": "
	prefixWidth := measureTextWidth(prefix, labelStyle)
	remaining := e.ContentWidth() - prefixWidth

	if measureTextWidth(value, valueStyle) <= remaining {
		before := e.cursor
		e.drawTextLine(prefix, x, 0, labelStyle)
		// Rewind so the value shares the label's baseline.
		e.cursor = before
		e.drawTextLine(value, x+prefixWidth, 0, valueStyle)
		return nil
	}

	e.drawTextLine(prefix, x, 0, labelStyle)
	_, err := e.DrawWrappedText(value, x+fieldIndent, e.ContentWidth()-fieldIndent, valueStyle)
	return err
}

// DrawRule draws a horizontal rule across the content width, centered in
// its reserved vertical space.
func (e *Engine) DrawRule() error {
	if err := e.active(); err != nil {
		return err
	}

	e.EnsureSpace(ruleSpace)
	e.cursor -= ruleSpace / 2
	y := e.toY(e.cursor)
	e.pdf.SetDrawColor(160, 160, 160)
	e.pdf.SetLineWidth(0.75)
	e.pdf.Line(e.cfg.Margins.Left, y, e.cfg.Page.Width-e.cfg.Margins.Right, y)
	e.cursor -= ruleSpace / 2
	return nil
}

// AddSpace moves the cursor down by n points without drawing. The cursor
// stops at the bottom margin rather than crossing it; AddSpace alone
// never breaks a page.
func (e *Engine) AddSpace(n float64) error {
	if err := e.active(); err != nil {
		return err
	}
	if n <= 0 {
		return nil
	}
	if e.cursor-n < e.cfg.Margins.Bottom {
		e.cursor = e.cfg.Margins.Bottom
		return nil
	}
	e.cursor -= n
	return nil
}

// Finalize serializes the document and moves the engine to its terminal
// state. No operation is valid on the engine afterwards.
func (e *Engine) Finalize() ([]byte, error) {
	if err := e.active(); err != nil {
		return nil, err
	}
	e.state = stateFinalized

	var buf bytes.Buffer
	if err := e.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfErr surfaces the writer's sticky error, if any.
func (e *Engine) pdfErr() error {
	if e.pdf.Err() {
		return fmt.Errorf("layout: %w", e.pdf.Error())
	}
	return nil
}
