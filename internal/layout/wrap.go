package layout

import "strings"

// wrapText splits text into lines whose measured width stays within
// maxWidth. Splitting is greedy on whitespace: words accumulate onto the
// current line while the joined line still measures within the limit. A
// single word wider than maxWidth is emitted on a line of its own rather
// than broken mid-word.
func wrapText(text string, maxWidth float64, st TextStyle) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, len(words)/8+1)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measureTextWidth(candidate, st) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
