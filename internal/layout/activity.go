package layout

import (
	"strconv"
	"strings"

	"github.com/mariocj89/chf-activity-report/pkg/report"
)

// DefaultGridGap is the spacing between image grid cells in points.
const DefaultGridGap = 8.0

// sectionGap separates an activity's sections vertically.
const sectionGap = 6.0

// paragraphGap separates wrapped paragraphs inside one free-text section.
const paragraphGap = 3.0

// GridColumns picks the photo grid column count: a single column for up
// to two photos, two columns from three on.
func GridColumns(photoCount int) int {
	if photoCount <= 2 {
		return 1
	}
	return 2
}

// DrawActivity renders one activity block: title heading, the common and
// kind-specific fields, the two free-text sections and the photo grid.
// Every activity starts on a fresh page regardless of remaining space, so
// two activities never share a page.
func (e *Engine) DrawActivity(a *report.Activity) error {
	if err := e.active(); err != nil {
		return err
	}
	e.newPage()

	if err := e.DrawHeading(a.Title, 1); err != nil {
		return err
	}

	for _, f := range activityFields(a) {
		if f.value == "" {
			continue
		}
		if err := e.DrawField(f.label, f.value); err != nil {
			return err
		}
	}

	for _, sec := range []struct{ title, body string }{
		{"Description", a.Description},
		{"Reflection", a.Reflection},
	} {
		if strings.TrimSpace(sec.body) == "" {
			continue
		}
		e.AddSpace(sectionGap)
		if err := e.DrawHeading(sec.title, 2); err != nil {
			return err
		}
		if err := e.drawParagraphs(sec.body, e.cfg.Margins.Left, e.ContentWidth(), TextStyle{Size: baseFontSize}); err != nil {
			return err
		}
	}

	if len(a.Photos) > 0 {
		e.AddSpace(sectionGap)
		if err := e.DrawHeading("Photos", 2); err != nil {
			return err
		}
		if err := e.DrawImageGrid(a.Photos, GridColumns(len(a.Photos)), DefaultGridGap); err != nil {
			return err
		}
	}
	return nil
}

// drawParagraphs draws each non-empty line of body as its own wrapped
// block, preserving the author's paragraph breaks.
func (e *Engine) drawParagraphs(body string, x, maxWidth float64, st TextStyle) error {
	first := true
	for _, para := range strings.Split(body, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if !first {
			e.AddSpace(paragraphGap)
		}
		first = false
		if _, err := e.DrawWrappedText(para, x, maxWidth, st); err != nil {
			return err
		}
	}
	return nil
}

type fieldValue struct {
	label string
	value string
}

// activityFields flattens the common and kind-specific fields in render
// order. Unset optional fields produce empty values the caller drops.
func activityFields(a *report.Activity) []fieldValue {
	fields := []fieldValue{
		{"Type", kindLabel(a.Kind)},
		{"Date", a.Date},
		{"Location", a.Location},
	}
	if a.Participants > 0 {
		fields = append(fields, fieldValue{"Participants", strconv.Itoa(a.Participants)})
	}

	switch a.Kind {
	case report.KindWorkshop:
		fields = append(fields, fieldValue{"Facilitator", a.Facilitator})
		if a.DurationHours > 0 {
			fields = append(fields, fieldValue{"Duration", formatHours(a.DurationHours)})
		}
	case report.KindExcursion:
		fields = append(fields,
			fieldValue{"Destination", a.Destination},
			fieldValue{"Transport", a.Transport})
	case report.KindPerformance:
		fields = append(fields, fieldValue{"Venue", a.Venue})
		if a.AudienceSize > 0 {
			fields = append(fields, fieldValue{"Audience", strconv.Itoa(a.AudienceSize)})
		}
	}
	return fields
}

func kindLabel(k report.ActivityKind) string {
	switch k {
	case report.KindWorkshop:
		return "Workshop"
	case report.KindExcursion:
		return "Excursion"
	case report.KindPerformance:
		return "Performance"
	}
	return "Other"
}

func formatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if s == "1" {
		return "1 hour"
	}
	return s + " hours"
}
