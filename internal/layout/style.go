package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// The engine renders everything in one core font family; weight is the only
// axis the report design uses.
const (
	fontFamily   = "Helvetica"
	baseFontSize = 11.0
)

// Approximate font metrics used for baseline placement.
const (
	ascentRatio  = 0.80
	descentRatio = 0.20
)

const defaultLineSpacing = 1.4

// Alignment selects horizontal placement of a text line inside its width.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// TextStyle describes how one drawable unit of text is rendered. Styles are
// attached per draw call and never persisted as document state.
type TextStyle struct {
	Size float64
	Bold bool

	// Color is "#RRGGBB", "#RGB" or "rgb(r,g,b)"; empty means black.
	Color string

	// LineSpacing multiplies Size into the line advance; 0 means the
	// default spacing.
	LineSpacing float64

	Align Alignment
}

func (s TextStyle) fontStyle() string {
	if s.Bold {
		return "B"
	}
	return ""
}

func (s TextStyle) lineHeight() float64 {
	spacing := s.LineSpacing
	if spacing <= 0 {
		spacing = defaultLineSpacing
	}
	return s.Size * spacing
}

func (s TextStyle) rgb() (int, int, int) {
	if s.Color == "" {
		return 0, 0, 0
	}
	c := parseColor(s.Color)
	return c[0], c[1], c[2]
}

// headingStyle carries the fixed constants for one heading level.
type headingStyle struct {
	size       float64
	spaceAbove float64
	spaceBelow float64
	color      string
}

// Exactly two heading levels; deeper requests clamp to the second.
var headingStyles = [2]headingStyle{
	{size: 18, spaceAbove: 14, spaceBelow: 8, color: "#1f3a5f"},
	{size: 13, spaceAbove: 10, spaceBelow: 6, color: "#1f3a5f"},
}

func headingStyleFor(level int) headingStyle {
	if level <= 1 {
		return headingStyles[0]
	}
	return headingStyles[1]
}

func parseColor(value string) [3]int {
	if strings.HasPrefix(value, "#") {
		if r, g, b, ok := parseHexColor(value); ok {
			return [3]int{r, g, b}
		}
	}

	var r, g, b int
	if _, err := fmt.Sscanf(value, "rgb(%d,%d,%d)", &r, &g, &b); err == nil {
		return [3]int{r, g, b}
	}
	if _, err := fmt.Sscanf(value, "rgb(%d, %d, %d)", &r, &g, &b); err == nil {
		return [3]int{r, g, b}
	}

	return [3]int{0, 0, 0}
}

// parseHexColor parses #RRGGBB or #RGB into r,g,b
func parseHexColor(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 6:
		if rv, err := strconv.ParseUint(s[0:2], 16, 8); err == nil {
			if gv, err := strconv.ParseUint(s[2:4], 16, 8); err == nil {
				if bv, err := strconv.ParseUint(s[4:6], 16, 8); err == nil {
					return int(rv), int(gv), int(bv), true
				}
			}
		}
	case 3:
		r := string([]byte{s[0], s[0]})
		g := string([]byte{s[1], s[1]})
		b := string([]byte{s[2], s[2]})
		if rv, err := strconv.ParseUint(r, 16, 8); err == nil {
			if gv, err := strconv.ParseUint(g, 16, 8); err == nil {
				if bv, err := strconv.ParseUint(b, 16, 8); err == nil {
					return int(rv), int(gv), int(bv), true
				}
			}
		}
	}
	return 0, 0, 0, false
}
