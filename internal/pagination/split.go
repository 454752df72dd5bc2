package pagination

import (
	"regexp"
	"strings"
	"unicode"
)

// level is one step of the fallback cascade
type level struct {
	name  string
	split func(string) []string
	// sep joins two units of this level on the same page
	sep string
}

// levels is ordered from the coarsest boundary to the finest
var levels = []level{
	{name: "paragraph", split: splitParagraphs, sep: "\n\n"},
	{name: "sentence", split: splitSentences},
	{name: "clause", split: splitClauses},
}

// paragraphBreak matches one or more blank lines
var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// splitParagraphs returns the trimmed, non-empty paragraphs of s
func splitParagraphs(s string) []string {
	var paragraphs []string
	for _, para := range paragraphBreak.Split(s, -1) {
		if para = strings.TrimSpace(para); para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}

func splitSentences(s string) []string {
	return splitRetaining(s, isSentenceEnd)
}

func splitClauses(s string) []string {
	return splitRetaining(s, isClauseEnd)
}

// isSentenceEnd matches Latin and CJK terminal punctuation and line breaks
func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '\n', '。', '！', '？':
		return true
	}
	return false
}

// isClauseEnd matches commas, enumeration commas, semicolons, colons and any
// whitespace
func isClauseEnd(r rune) bool {
	switch r {
	case ',', ';', ':', '，', '、', '；', '：':
		return true
	}
	return unicode.IsSpace(r)
}

// splitRetaining cuts s after every run of delimiter runes. Each unit keeps
// the delimiters that end it, so joining the units reproduces s.
func splitRetaining(s string, isDelim func(rune) bool) []string {
	var units []string
	start := 0
	inDelim := false

	for i, r := range s {
		if isDelim(r) {
			inDelim = true
			continue
		}
		if inDelim {
			units = append(units, s[start:i])
			start = i
			inDelim = false
		}
	}
	if start < len(s) {
		units = append(units, s[start:])
	}

	return units
}
