package report

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	unsafeChars    = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	underscoreRuns = regexp.MustCompile(`_{2,}`)
)

// SanitizeToken replaces every character outside [A-Za-z0-9-_] with an
// underscore and collapses runs of underscores into one. Applying it to an
// already-sanitized string returns the string unchanged.
func SanitizeToken(s string) string {
	s = unsafeChars.ReplaceAllString(s, "_")
	return underscoreRuns.ReplaceAllString(s, "_")
}

// Surname returns the last whitespace-separated token of a full name, or
// the empty string when the name has no tokens.
func Surname(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Filename derives the output file name from the school year and the
// instructor's surname, e.g. Cultural_Activities_Report_2025-2026_Smith.pdf.
func (r *Report) Filename() string {
	return fmt.Sprintf("Cultural_Activities_Report_%s_%s.pdf",
		SanitizeToken(r.SchoolYear), SanitizeToken(Surname(r.Instructor)))
}
