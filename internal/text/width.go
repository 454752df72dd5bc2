package text

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// DisplayWidth returns the number of monospace columns s occupies on its
// widest line. East Asian wide characters and emoji count as two.
func DisplayWidth(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		if w := runewidth.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}

// Normalize prepares pasted text for pagination: Windows and old Mac line
// endings become \n and the text is put in Unicode NFC so that composed and
// decomposed spellings of the same character measure the same.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return norm.NFC.String(s)
}
