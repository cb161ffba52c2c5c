package text

import "strings"

const (
	// LineBreakThreshold is the vertical distance, in document units, above
	// which two fragments are treated as being on different lines.
	LineBreakThreshold = 5.0

	// GapThreshold is the horizontal distance between the trailing edge of
	// one fragment and the origin of the next above which a column or tab
	// gap is assumed and a space is emitted.
	GapThreshold = 20.0
)

// Options controls how fragments are joined by Reconstruct.
type Options struct {
	// PreserveFormatting inserts line breaks and gap spaces based on the
	// positional deltas between fragments.
	PreserveFormatting bool

	// CombineTextItems inserts a space between two fragments on the same
	// line when neither side of the boundary is already whitespace.
	CombineTextItems bool
}

// Reconstruct joins one page's fragments, in stream order, into readable
// text. Blank fragments are skipped entirely and do not move the position
// tracking. The result is passed through Normalize.
func Reconstruct(fragments []TextFragment, opts Options) string {
	if len(fragments) == 0 {
		return ""
	}

	var sb strings.Builder
	var lastX, lastY float64
	started := false

	for _, frag := range fragments {
		if frag.IsBlank() {
			continue
		}

		if started {
			verticalDist := abs(frag.Y - lastY)
			lineBreak := false

			if opts.PreserveFormatting {
				if verticalDist > LineBreakThreshold {
					sb.WriteByte('\n')
					lineBreak = true
				} else if frag.X-lastX > GapThreshold {
					sb.WriteByte(' ')
				}
			}

			if opts.CombineTextItems && !lineBreak && verticalDist <= LineBreakThreshold &&
				!endsWithSpace(sb.String()) && !startsWithSpace(frag.Text) {
				sb.WriteByte(' ')
			}
		}

		sb.WriteString(frag.Text)
		lastY = frag.Y
		lastX = frag.End()
		started = true
	}

	return Normalize(sb.String())
}
