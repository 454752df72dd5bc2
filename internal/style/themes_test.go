package style

import "testing"

func TestBuiltinThemesParse(t *testing.T) {
	all := Themes()
	if len(all) != 9 {
		t.Fatalf("expected 9 themes, got %d", len(all))
	}
	for _, theme := range all {
		if _, err := theme.Palette(); err != nil {
			t.Errorf("theme %s: %v", theme.ID, err)
		}
		if theme.TitleFontSize <= 0 {
			t.Errorf("theme %s has no title size", theme.ID)
		}
	}
	if all[0].ID != DefaultTheme {
		t.Errorf("first theme is %s, want %s", all[0].ID, DefaultTheme)
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup(ThemeGeek)
	if !ok || s.FontFamilyBody != "JetBrains Mono" {
		t.Fatalf("Lookup(geek) = %+v, %v", s, ok)
	}

	s.AccentColor = "#000000"
	if again, _ := Lookup(ThemeGeek); again.AccentColor == "#000000" {
		t.Fatal("Lookup returned a shared value")
	}

	if _, ok := Lookup("nope"); ok {
		t.Fatal("Lookup found an unknown theme")
	}
}

func TestPalette(t *testing.T) {
	s, _ := Lookup(ThemeMinimal)
	p, err := s.Palette()
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b := RGB(p.Background); r != 255 || g != 255 || b != 255 {
		t.Errorf("background = %d,%d,%d, want white", r, g, b)
	}

	if r, g, b := RGB(p.Tint(1)); r != 255 || g != 255 || b != 255 {
		t.Errorf("full tint = %d,%d,%d, want background", r, g, b)
	}
	if r, g, b := RGB(p.Tint(0)); r != 229 || g != 229 || b != 229 {
		t.Errorf("zero tint = %d,%d,%d, want accent", r, g, b)
	}

	s.TextColor = "not-a-color"
	if _, err := s.Palette(); err == nil {
		t.Error("expected an error for an invalid color")
	}
}
