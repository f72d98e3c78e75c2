package layout

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"strings"
	"testing"
)

const tolerance = 0.0001

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

// newStartedEngine returns an active engine on Letter pages with the
// default margins.
func newStartedEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(Config{})
	if err := e.StartDocument(); err != nil {
		t.Fatalf("StartDocument failed: %v", err)
	}
	return e
}

// checkCursor fails the test when the cursor has left the band between
// the bottom margin and the top margin offset.
func checkCursor(t *testing.T, e *Engine) {
	t.Helper()
	low := e.cfg.Margins.Bottom
	high := e.cfg.Page.Height - e.cfg.Margins.Top
	if e.cursor < low-tolerance || e.cursor > high+tolerance {
		t.Fatalf("cursor %.4f outside [%.4f, %.4f]", e.cursor, low, high)
	}
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("failed to encode test jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestStartDocumentResetsCursor(t *testing.T) {
	e := newStartedEngine(t)

	if e.PageCount() != 1 {
		t.Errorf("expected 1 page, got %d", e.PageCount())
	}
	want := PageSizeLetter.Height - DefaultMargins.Top
	if !floatEqual(e.Cursor(), want) {
		t.Errorf("expected cursor %.2f, got %.2f", want, e.Cursor())
	}
}

func TestStartDocumentTwiceFails(t *testing.T) {
	e := newStartedEngine(t)
	if err := e.StartDocument(); err == nil {
		t.Error("expected error starting an active document")
	}
}

func TestOperationsBeforeStartFail(t *testing.T) {
	e := NewEngine(Config{})

	if err := e.DrawHeading("Heading", 1); err == nil {
		t.Error("expected DrawHeading to fail before start")
	}
	if _, err := e.DrawWrappedText("text", 54, 200, TextStyle{Size: 11}); err == nil {
		t.Error("expected DrawWrappedText to fail before start")
	}
	if err := e.DrawField("Label", "value"); err == nil {
		t.Error("expected DrawField to fail before start")
	}
	if err := e.NewPage(); err == nil {
		t.Error("expected NewPage to fail before start")
	}
	if _, err := e.Finalize(); err == nil {
		t.Error("expected Finalize to fail before start")
	}
	if e.EnsureSpace(100) {
		t.Error("EnsureSpace must not break pages before start")
	}
}

func TestOperationsAfterFinalizeFail(t *testing.T) {
	e := newStartedEngine(t)
	if _, err := e.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if err := e.DrawHeading("Heading", 1); err == nil {
		t.Error("expected DrawHeading to fail after finalize")
	}
	if err := e.AddSpace(10); err == nil {
		t.Error("expected AddSpace to fail after finalize")
	}
	if _, err := e.Finalize(); err == nil {
		t.Error("expected second Finalize to fail")
	}
	if e.EnsureSpace(100) {
		t.Error("EnsureSpace must not break pages after finalize")
	}
}

func TestFinalizeProducesPDF(t *testing.T) {
	e := newStartedEngine(t)
	if err := e.DrawHeading("Annual Report", 1); err != nil {
		t.Fatalf("DrawHeading failed: %v", err)
	}

	out, err := e.Finalize()
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("expected output to start with %PDF- header")
	}
}

func TestEnsureSpace(t *testing.T) {
	tests := []struct {
		name      string
		preSpace  float64
		height    float64
		wantBreak bool
	}{
		{name: "plenty of room", preSpace: 0, height: 100, wantBreak: false},
		{name: "exact fit", preSpace: 0, height: 684, wantBreak: false},
		{name: "one point over", preSpace: 0, height: 685, wantBreak: true},
		{name: "near bottom", preSpace: 660, height: 100, wantBreak: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newStartedEngine(t)
			if tt.preSpace > 0 {
				if err := e.AddSpace(tt.preSpace); err != nil {
					t.Fatalf("AddSpace failed: %v", err)
				}
			}
			broke := e.EnsureSpace(tt.height)
			if broke != tt.wantBreak {
				t.Errorf("expected break=%v, got %v", tt.wantBreak, broke)
			}
			if tt.wantBreak {
				if e.PageCount() != 2 {
					t.Errorf("expected 2 pages after break, got %d", e.PageCount())
				}
				want := PageSizeLetter.Height - DefaultMargins.Top
				if !floatEqual(e.Cursor(), want) {
					t.Errorf("expected cursor reset to %.2f, got %.2f", want, e.Cursor())
				}
			} else if e.PageCount() != 1 {
				t.Errorf("expected 1 page, got %d", e.PageCount())
			}
			checkCursor(t, e)
		})
	}
}

func TestHeadingConsumesFixedHeight(t *testing.T) {
	for level, hs := range map[int]headingStyle{1: headingStyles[0], 2: headingStyles[1]} {
		e := newStartedEngine(t)
		before := e.Cursor()
		if err := e.DrawHeading("Section", level); err != nil {
			t.Fatalf("DrawHeading(%d) failed: %v", level, err)
		}
		got := before - e.Cursor()
		want := hs.spaceAbove + hs.size + hs.spaceBelow
		if !floatEqual(got, want) {
			t.Errorf("level %d: expected %.2f consumed, got %.2f", level, want, got)
		}
		checkCursor(t, e)
	}
}

func TestDeepHeadingLevelClamps(t *testing.T) {
	e := newStartedEngine(t)
	before := e.Cursor()
	if err := e.DrawHeading("Deep", 5); err != nil {
		t.Fatalf("DrawHeading failed: %v", err)
	}
	want := headingStyles[1].spaceAbove + headingStyles[1].size + headingStyles[1].spaceBelow
	if !floatEqual(before-e.Cursor(), want) {
		t.Errorf("expected deep level to consume %.2f, got %.2f", want, before-e.Cursor())
	}
}

func TestAddSpaceClampsAtBottomMargin(t *testing.T) {
	e := newStartedEngine(t)
	if err := e.AddSpace(10000); err != nil {
		t.Fatalf("AddSpace failed: %v", err)
	}
	if !floatEqual(e.Cursor(), DefaultMargins.Bottom) {
		t.Errorf("expected cursor clamped to %.2f, got %.2f", DefaultMargins.Bottom, e.Cursor())
	}
	if e.PageCount() != 1 {
		t.Errorf("AddSpace must not break pages, got %d pages", e.PageCount())
	}
}

func TestDrawRuleConsumesFixedSpace(t *testing.T) {
	e := newStartedEngine(t)
	before := e.Cursor()
	if err := e.DrawRule(); err != nil {
		t.Fatalf("DrawRule failed: %v", err)
	}
	if !floatEqual(before-e.Cursor(), ruleSpace) {
		t.Errorf("expected rule to consume %.2f, got %.2f", ruleSpace, before-e.Cursor())
	}
}

func TestDrawWrappedTextReturnsConsumedHeight(t *testing.T) {
	e := newStartedEngine(t)
	st := TextStyle{Size: 11}

	text := strings.Repeat("alpha beta gamma delta epsilon ", 8)
	consumed, err := e.DrawWrappedText(text, e.LeftX(), 200, st)
	if err != nil {
		t.Fatalf("DrawWrappedText failed: %v", err)
	}

	lines := wrapText(text, 200, st)
	want := float64(len(lines)) * st.lineHeight()
	if !floatEqual(consumed, want) {
		t.Errorf("expected %.2f consumed for %d lines, got %.2f", want, len(lines), consumed)
	}
	checkCursor(t, e)
}

func TestDrawWrappedTextEmpty(t *testing.T) {
	e := newStartedEngine(t)
	before := e.Cursor()
	consumed, err := e.DrawWrappedText("   ", e.LeftX(), 200, TextStyle{Size: 11})
	if err != nil {
		t.Fatalf("DrawWrappedText failed: %v", err)
	}
	if consumed != 0 {
		t.Errorf("expected 0 consumed for blank text, got %.2f", consumed)
	}
	if !floatEqual(e.Cursor(), before) {
		t.Error("blank text must not move the cursor")
	}
}

func TestDrawWrappedTextOrphanAvoidance(t *testing.T) {
	e := newStartedEngine(t)
	st := TextStyle{Size: 11}
	lineH := st.lineHeight()

	// Leave room for exactly one line, below the two-line threshold.
	if err := e.AddSpace(e.RemainingHeight() - lineH - 2); err != nil {
		t.Fatalf("AddSpace failed: %v", err)
	}

	text := "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen"
	lines := wrapText(text, 150, st)
	if len(lines) < 3 {
		t.Fatalf("test text too short, wrapped to %d lines", len(lines))
	}

	consumed, err := e.DrawWrappedText(text, e.LeftX(), 150, st)
	if err != nil {
		t.Fatalf("DrawWrappedText failed: %v", err)
	}

	if e.PageCount() != 2 {
		t.Fatalf("expected orphan avoidance to force a page break, got %d pages", e.PageCount())
	}
	// The entire block must sit on the fresh page.
	wantCursor := PageSizeLetter.Height - DefaultMargins.Top - float64(len(lines))*lineH
	if !floatEqual(e.Cursor(), wantCursor) {
		t.Errorf("expected cursor %.2f on page 2, got %.2f", wantCursor, e.Cursor())
	}
	if !floatEqual(consumed, float64(len(lines))*lineH) {
		t.Errorf("expected consumed %.2f, got %.2f", float64(len(lines))*lineH, consumed)
	}
}

func TestDrawWrappedTextStraddlesPages(t *testing.T) {
	e := newStartedEngine(t)
	st := TextStyle{Size: 11}
	lineH := st.lineHeight()

	// Leave room for exactly three lines, at or above the threshold.
	if err := e.AddSpace(e.RemainingHeight() - 3*lineH - 2); err != nil {
		t.Fatalf("AddSpace failed: %v", err)
	}

	words := make([]string, 0, 60)
	for i := 0; i < 60; i++ {
		words = append(words, "word")
	}
	text := strings.Join(words, " ")
	lines := wrapText(text, 150, st)
	if len(lines) <= 3 {
		t.Fatalf("test text too short, wrapped to %d lines", len(lines))
	}

	if _, err := e.DrawWrappedText(text, e.LeftX(), 150, st); err != nil {
		t.Fatalf("DrawWrappedText failed: %v", err)
	}

	if e.PageCount() != 2 {
		t.Fatalf("expected block to straddle onto page 2, got %d pages", e.PageCount())
	}
	wantCursor := PageSizeLetter.Height - DefaultMargins.Top - float64(len(lines)-3)*lineH
	if !floatEqual(e.Cursor(), wantCursor) {
		t.Errorf("expected cursor %.2f after straddle, got %.2f", wantCursor, e.Cursor())
	}
}

func TestDrawFieldSingleLine(t *testing.T) {
	e := newStartedEngine(t)
	before := e.Cursor()
	if err := e.DrawField("Instructor", "Maria Gonzalez"); err != nil {
		t.Fatalf("DrawField failed: %v", err)
	}
	want := TextStyle{Size: baseFontSize, Bold: true}.lineHeight()
	if !floatEqual(before-e.Cursor(), want) {
		t.Errorf("expected one line height %.2f consumed, got %.2f", want, before-e.Cursor())
	}
}

func TestDrawFieldWrapsLongValue(t *testing.T) {
	e := newStartedEngine(t)
	value := strings.Repeat("a very long value that cannot share the label line ", 4)

	before := e.Cursor()
	if err := e.DrawField("Notes", value); err != nil {
		t.Fatalf("DrawField failed: %v", err)
	}

	labelH := TextStyle{Size: baseFontSize, Bold: true}.lineHeight()
	valueStyle := TextStyle{Size: baseFontSize}
	valueLines := wrapText(value, e.ContentWidth()-fieldIndent, valueStyle)
	want := labelH + float64(len(valueLines))*valueStyle.lineHeight()
	if !floatEqual(before-e.Cursor(), want) {
		t.Errorf("expected %.2f consumed, got %.2f", want, before-e.Cursor())
	}
}

func TestPageCountMatchesContentHeight(t *testing.T) {
	e := newStartedEngine(t)
	st := TextStyle{Size: 11}
	lineH := st.lineHeight()

	const blocks = 100
	for i := 0; i < blocks; i++ {
		if _, err := e.DrawWrappedText("single line entry", e.LeftX(), e.ContentWidth(), st); err != nil {
			t.Fatalf("DrawWrappedText failed: %v", err)
		}
		checkCursor(t, e)
	}

	avail := PageSizeLetter.Height - DefaultMargins.Top - DefaultMargins.Bottom
	perPage := math.Floor(avail / lineH)
	want := int(math.Ceil(blocks / perPage))
	if e.PageCount() != want {
		t.Errorf("expected %d pages for %d lines, got %d", want, blocks, e.PageCount())
	}
}

func TestPageCountMonotonic(t *testing.T) {
	e := newStartedEngine(t)
	last := e.PageCount()

	ops := []func() error{
		func() error { return e.DrawHeading("Overview", 1) },
		func() error { _, err := e.DrawWrappedText(strings.Repeat("words and more words ", 40), e.LeftX(), 180, TextStyle{Size: 11}); return err },
		func() error { return e.DrawField("Year", "2025-2026") },
		func() error { return e.DrawRule() },
		func() error { return e.AddSpace(600) },
		func() error { _, err := e.DrawWrappedText(strings.Repeat("tail content ", 60), e.LeftX(), 180, TextStyle{Size: 11}); return err },
		func() error { return e.NewPage() },
	}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d failed: %v", i, err)
		}
		if e.PageCount() < last {
			t.Fatalf("page count decreased from %d to %d", last, e.PageCount())
		}
		last = e.PageCount()
		checkCursor(t, e)
	}
}
