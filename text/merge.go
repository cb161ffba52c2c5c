package text

import "strings"

// MergeGlyphs folds glyph-level fragments into show-text runs.
//
// Some content stream interpreters emit one fragment per glyph. Feeding
// those straight into Reconstruct with CombineTextItems enabled would put a
// space between every character, so consecutive glyphs that share a
// baseline and a font, and that sit closer than half a space width, are
// merged. Explicit space glyphs are kept inside the run, the same way they
// appear inside a Tj string. Glyphs with a negative width advance towards
// smaller X and merge into runs that do the same; such runs keep their
// negative width.
func MergeGlyphs(glyphs []TextFragment) []TextFragment {
	if len(glyphs) == 0 {
		return nil
	}

	runs := make([]TextFragment, 0, len(glyphs)/4+1)
	var current TextFragment
	var sb strings.Builder
	open := false

	flush := func() {
		if !open {
			return
		}
		current.Text = sb.String()
		runs = append(runs, current)
		sb.Reset()
		open = false
	}

	for _, g := range glyphs {
		if g.Text == "" {
			continue
		}

		if open && continuesRun(current, g) {
			sb.WriteString(g.Text)
			if end := g.End(); (end-current.End())*current.advance() > 0 {
				current.Width = end - current.X
			}
			if g.Height > current.Height {
				current.Height = g.Height
			}
			continue
		}

		flush()
		current = g
		sb.WriteString(g.Text)
		open = true
	}
	flush()

	return runs
}

// continuesRun reports whether glyph g belongs to the run ending in run.
func continuesRun(run, g TextFragment) bool {
	if run.FontName != g.FontName || run.FontSize != g.FontSize {
		return false
	}

	// Same baseline
	if abs(g.Y-run.Y) > sameLineTolerance(run) {
		return false
	}

	// Same advance direction
	if run.Width != 0 && g.Width != 0 && run.advance() != g.advance() {
		return false
	}

	gap := (g.X - run.End()) * run.advance()

	// Backwards steps are new runs (overprinting, reordered streams)
	if gap < -spaceWidth(run.FontSize)*0.5 {
		return false
	}

	return gap < spaceWidth(run.FontSize)*0.5
}

// sameLineTolerance is half the run height, with a small floor for fonts
// that report no size.
func sameLineTolerance(run TextFragment) float64 {
	h := run.Height
	if h <= 0 {
		h = run.FontSize
	}
	if h <= 0 {
		return 0.5
	}
	return h * 0.5
}

// spaceWidth returns the expected width of a space character for a font
// size. Without font metrics a space is estimated as 25% of the size.
func spaceWidth(fontSize float64) float64 {
	if fontSize <= 0 {
		return 1.0
	}
	return fontSize * 0.25
}
