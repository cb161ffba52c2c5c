package text

import (
	"regexp"
	"strings"
)

var (
	horizontalSpaceRun = regexp.MustCompile(`[ \t]+`)
	excessLineBreaks   = regexp.MustCompile(`\n{3,}`)
)

// Normalize canonicalizes reconstructed text: runs of spaces and tabs become
// a single space, three or more line breaks become two, every line is
// trimmed and so is the whole string. Normalize is idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = horizontalSpaceRun.ReplaceAllString(s, " ")
	s = excessLineBreaks.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")

	// Lines emptied by trimming can form a new run of breaks.
	s = excessLineBreaks.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
