package text

import (
	"strings"
	"testing"
)

func TestUnitLen(t *testing.T) {
	family := "\U0001F468\u200d\U0001F469\u200d\U0001F467\u200d\U0001F466"
	tests := []struct {
		name string
		unit Unit
		in   string
		want int
	}{
		{"ascii code points", CodePoints, "hello", 5},
		{"cjk code points", CodePoints, "你好世界", 4},
		{"family code points", CodePoints, family, 7},
		{"family graphemes", Graphemes, family, 1},
		{"flags graphemes", Graphemes, "\U0001F1EF\U0001F1F5\U0001F1FA\U0001F1F8", 2},
		{"combining graphemes", Graphemes, "e\u0301", 1},
		{"combining code points", CodePoints, "e\u0301", 2},
		{"empty", Graphemes, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.unit.Len(tt.in); got != tt.want {
				t.Errorf("Len(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnitSplitRoundTrips(t *testing.T) {
	inputs := []string{
		"plain ascii",
		"混合 text with 中文，and emoji \U0001F600!",
		"\U0001F468\u200d\U0001F469\u200d\U0001F467 family",
		"bad \xff byte",
	}
	for _, unit := range []Unit{CodePoints, Graphemes} {
		for _, in := range inputs {
			pieces := unit.Split(in)
			if got := strings.Join(pieces, ""); got != in {
				t.Errorf("%s: Split(%q) joined = %q", unit, in, got)
			}
			if unit == CodePoints && len(pieces) != unit.Len(in) {
				t.Errorf("%s: Split(%q) gave %d pieces, Len says %d", unit, in, len(pieces), unit.Len(in))
			}
		}
	}

	if pieces := Graphemes.Split("\U0001F1EF\U0001F1F5\U0001F1FA\U0001F1F8"); len(pieces) != 2 {
		t.Fatalf("expected two flag clusters, got %q", pieces)
	}
	if pieces := CodePoints.Split(""); pieces != nil {
		t.Fatalf("expected nil for empty input, got %q", pieces)
	}
}

func TestParseUnit(t *testing.T) {
	for _, u := range []Unit{CodePoints, Graphemes} {
		got, ok := ParseUnit(u.String())
		if !ok || got != u {
			t.Errorf("ParseUnit(%q) = %v, %v", u.String(), got, ok)
		}
	}
	if _, ok := ParseUnit("bytes"); ok {
		t.Error("ParseUnit accepted an unknown unit")
	}
}

func TestDisplayWidth(t *testing.T) {
	if got := DisplayWidth("你好"); got != 4 {
		t.Errorf("DisplayWidth(你好) = %d, want 4", got)
	}
	if got := DisplayWidth("ab\nabcd\nabc"); got != 4 {
		t.Errorf("DisplayWidth of multi-line text = %d, want 4", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("cafe\u0301"); got != "caf\u00e9" {
		t.Errorf("Normalize did not compose: %q", got)
	}
	if got := Normalize("a\r\nb\rc"); got != "a\nb\nc" {
		t.Errorf("Normalize line endings = %q", got)
	}
}

func TestIsRTL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"hello", false},
		{"שלום עולם", true},
		{"مرحبا", true},
		{"123 שלום", true},
		{"abc שלום", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsRTL(tt.in); got != tt.want {
			t.Errorf("IsRTL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
