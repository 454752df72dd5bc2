package text

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Unit selects what counts as one character when measuring and slicing text
type Unit int

const (
	// CodePoints counts Unicode scalar values. A code point is never split.
	CodePoints Unit = iota
	// Graphemes counts user-perceived characters (extended grapheme clusters),
	// so a flag or a family emoji is one character and is never split.
	Graphemes
)

// String returns the flag-friendly name of the unit
func (u Unit) String() string {
	switch u {
	case Graphemes:
		return "graphemes"
	default:
		return "codepoints"
	}
}

// ParseUnit maps a name produced by String back to a Unit
func ParseUnit(name string) (Unit, bool) {
	switch name {
	case "codepoints", "runes", "":
		return CodePoints, true
	case "graphemes":
		return Graphemes, true
	}
	return CodePoints, false
}

// Len measures s in the unit
func (u Unit) Len(s string) int {
	if u == Graphemes {
		return uniseg.GraphemeClusterCount(s)
	}
	return utf8.RuneCountInString(s)
}

// Split breaks s into its atomic pieces in the unit. Joining the result
// reproduces s exactly.
func (u Unit) Split(s string) []string {
	if s == "" {
		return nil
	}

	if u == Graphemes {
		pieces := make([]string, 0, len(s))
		gr := uniseg.NewGraphemes(s)
		for gr.Next() {
			pieces = append(pieces, gr.Str())
		}
		return pieces
	}

	pieces := make([]string, 0, utf8.RuneCountInString(s))
	for len(s) > 0 {
		_, size := utf8.DecodeRuneInString(s)
		pieces = append(pieces, s[:size])
		s = s[size:]
	}
	return pieces
}
