package extract

import (
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// NormalizeWhitespace collapses runs of spaces and caps consecutive blank
// lines at two.
func NormalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = spaceRun.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = blankLineRun.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// WordCount splits on whitespace and discards empty tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
