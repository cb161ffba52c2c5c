// Package text turns positioned PDF text fragments into readable text.
//
// # Fragments
//
// A [TextFragment] is one run of text with its baseline origin (X, Y) and
// rendered width in document space. Fragments are consumed in the order the
// content stream produced them, which is not necessarily reading order.
//
// Interpreters that report one fragment per glyph can be folded into runs
// first with [MergeGlyphs].
//
// # Reconstruction
//
// [Reconstruct] makes a single pass over a page's fragments:
//
//	page := text.Reconstruct(fragments, text.Options{
//	    PreserveFormatting: true,
//	    CombineTextItems:   true,
//	})
//
//   - a vertical move of more than [LineBreakThreshold] starts a new line
//   - otherwise a horizontal gap of more than [GapThreshold] becomes a space
//   - with CombineTextItems, neighbours on the same line are separated by a
//     space unless one of them already provides it
//
// Whitespace-only fragments are ignored and do not affect position tracking.
//
// # Normalization
//
// [Normalize] collapses horizontal whitespace, limits blank lines to one,
// trims each line and the whole string. It is idempotent.
//
// # Text Direction
//
// [DetectDirection] classifies a string as LTR, RTL or Neutral from the
// Unicode properties of its characters.
package text
