package style

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ThemeType identifies a built-in theme
type ThemeType string

const (
	ThemeShockwave ThemeType = "shockwave"
	ThemeDiffused  ThemeType = "diffused"
	ThemeSticker   ThemeType = "sticker"
	ThemeHanddrawn ThemeType = "handdrawn"
	ThemeCinematic ThemeType = "cinematic"
	ThemeTech      ThemeType = "tech"
	ThemeMinimal   ThemeType = "minimal"
	ThemeMemo      ThemeType = "memo"
	ThemeGeek      ThemeType = "geek"
)

// DefaultTheme is used by new decks
const DefaultTheme = ThemeShockwave

// StyleConfig is the active look of a deck. It starts as a copy of a theme
// and may be tweaked per deck.
type StyleConfig struct {
	ID              ThemeType `json:"id"`
	Name            string    `json:"name"`
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
	AccentColor     string    `json:"accentColor"`
	FontFamilyHead  string    `json:"fontFamilyHead"`
	FontFamilyBody  string    `json:"fontFamilyBody"`
	// TitleFontSize is in CSS pixels
	TitleFontSize float64 `json:"titleFontSize"`
	// BackgroundImage is a path, URL or data URL
	BackgroundImage string `json:"backgroundImage,omitempty"`
	// OverlayOpacity darkens the background image, 0 to 1
	OverlayOpacity float64 `json:"overlayOpacity,omitempty"`
}

var themeOrder = []ThemeType{
	ThemeShockwave, ThemeDiffused, ThemeSticker, ThemeHanddrawn, ThemeCinematic,
	ThemeTech, ThemeMinimal, ThemeMemo, ThemeGeek,
}

var themes = map[ThemeType]StyleConfig{
	ThemeShockwave: {ID: ThemeShockwave, Name: "⚡ 冲击波", BackgroundColor: "#eff6ff", TextColor: "#000000", AccentColor: "#d9f99d", FontFamilyHead: "Inter", FontFamilyBody: "Inter", TitleFontSize: 56},
	ThemeDiffused:  {ID: ThemeDiffused, Name: "🌈 弥散光", BackgroundColor: "#faf5ff", TextColor: "#4c1d95", AccentColor: "#c084fc", FontFamilyHead: "Playfair Display", FontFamilyBody: "Inter", TitleFontSize: 56},
	ThemeSticker:   {ID: ThemeSticker, Name: "🍭 贴纸风", BackgroundColor: "#fff1f2", TextColor: "#be123c", AccentColor: "#f43f5e", FontFamilyHead: "Inter", FontFamilyBody: "Inter", TitleFontSize: 52},
	ThemeHanddrawn: {ID: ThemeHanddrawn, Name: "✏️ 手账感", BackgroundColor: "#fef3c7", TextColor: "#78350f", AccentColor: "#fbbf24", FontFamilyHead: "Playfair Display", FontFamilyBody: "Inter", TitleFontSize: 48},
	ThemeCinematic: {ID: ThemeCinematic, Name: "🎬 电影感", BackgroundColor: "#18181b", TextColor: "#f4f4f5", AccentColor: "#71717a", FontFamilyHead: "Inter", FontFamilyBody: "Inter", TitleFontSize: 56},
	ThemeTech:      {ID: ThemeTech, Name: "🔵 科技蓝", BackgroundColor: "#172554", TextColor: "#dbeafe", AccentColor: "#3b82f6", FontFamilyHead: "JetBrains Mono", FontFamilyBody: "Inter", TitleFontSize: 48},
	ThemeMinimal:   {ID: ThemeMinimal, Name: "⚪ 极简白", BackgroundColor: "#ffffff", TextColor: "#171717", AccentColor: "#e5e5e5", FontFamilyHead: "Inter", FontFamilyBody: "Inter", TitleFontSize: 56},
	ThemeMemo:      {ID: ThemeMemo, Name: "🟡 备忘录", BackgroundColor: "#fef9c3", TextColor: "#422006", AccentColor: "#eab308", FontFamilyHead: "Inter", FontFamilyBody: "Inter", TitleFontSize: 48},
	ThemeGeek:      {ID: ThemeGeek, Name: "🟢 极客黑", BackgroundColor: "#09090b", TextColor: "#4ade80", AccentColor: "#22c55e", FontFamilyHead: "JetBrains Mono", FontFamilyBody: "JetBrains Mono", TitleFontSize: 48},
}

// Lookup returns a copy of the built-in theme with the given id
func Lookup(id ThemeType) (StyleConfig, bool) {
	s, ok := themes[id]
	return s, ok
}

// Themes returns the built-in themes in display order
func Themes() []StyleConfig {
	out := make([]StyleConfig, 0, len(themeOrder))
	for _, id := range themeOrder {
		out = append(out, themes[id])
	}
	return out
}

// Palette holds the parsed colours of a StyleConfig
type Palette struct {
	Background colorful.Color
	Text       colorful.Color
	Accent     colorful.Color
}

// Palette parses the hex colours of the style
func (s StyleConfig) Palette() (Palette, error) {
	var p Palette
	var err error

	if p.Background, err = colorful.Hex(s.BackgroundColor); err != nil {
		return Palette{}, fmt.Errorf("invalid background color %q: %w", s.BackgroundColor, err)
	}
	if p.Text, err = colorful.Hex(s.TextColor); err != nil {
		return Palette{}, fmt.Errorf("invalid text color %q: %w", s.TextColor, err)
	}
	if p.Accent, err = colorful.Hex(s.AccentColor); err != nil {
		return Palette{}, fmt.Errorf("invalid accent color %q: %w", s.AccentColor, err)
	}

	return p, nil
}

// Tint blends the accent toward the background; 0 is the pure accent and 1
// the pure background.
func (p Palette) Tint(amount float64) colorful.Color {
	return p.Accent.BlendLab(p.Background, amount).Clamped()
}

// RGB returns c as 0-255 components, the form the PDF renderer expects
func RGB(c colorful.Color) (int, int, int) {
	r, g, b := c.RGB255()
	return int(r), int(g), int(b)
}
