package text

import "unicode"

// Direction represents text direction
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// DetectDirection reports the direction of the first strong character in s.
// Text with no strong character is left-to-right.
func DetectDirection(s string) Direction {
	for _, r := range s {
		if isRTLRune(r) {
			return RightToLeft
		}
		if unicode.IsLetter(r) {
			return LeftToRight
		}
	}
	return LeftToRight
}

// IsRTL checks if a string starts with right-to-left text
func IsRTL(s string) bool {
	return DetectDirection(s) == RightToLeft
}

// isRTLRune covers Hebrew, Arabic, Syriac, Thaana, NKo and the Arabic
// presentation forms.
func isRTLRune(r rune) bool {
	switch {
	case r >= 0x0590 && r <= 0x07FF:
		return unicode.IsLetter(r)
	case r >= 0xFB1D && r <= 0xFDFF:
		return true
	case r >= 0xFE70 && r <= 0xFEFF:
		return r != 0xFEFF
	}
	return false
}
