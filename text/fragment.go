package text

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextFragment is a positioned run of text as produced by a PDF content
// stream interpreter, in document space.
type TextFragment struct {
	Text     string
	X, Y     float64 // baseline origin
	Width    float64
	Height   float64
	FontName string
	FontSize float64
}

// End returns the trailing edge of the fragment (X + Width).
func (f TextFragment) End() float64 {
	return f.X + f.Width
}

// IsBlank reports whether the fragment carries only whitespace.
func (f TextFragment) IsBlank() bool {
	return strings.TrimSpace(f.Text) == ""
}

// Valid reports whether the fragment can take part in reconstruction:
// non-empty text and finite coordinates. A negative width is allowed; text
// drawn under a mirrored or rotated matrix advances towards smaller X.
func (f TextFragment) Valid() bool {
	if f.Text == "" {
		return false
	}
	for _, v := range [...]float64{f.X, f.Y, f.Width} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Forward returns the fragment covering the same horizontal span with a
// non-negative width.
func (f TextFragment) Forward() TextFragment {
	if f.Width < 0 {
		f.X += f.Width
		f.Width = -f.Width
	}
	return f
}

// advance is +1 for fragments that advance towards larger X and -1 for
// those that advance towards smaller X.
func (f TextFragment) advance() float64 {
	if f.Width < 0 {
		return -1
	}
	return 1
}

func startsWithSpace(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

func endsWithSpace(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

// abs returns the absolute value of a float64
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
