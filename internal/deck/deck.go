// Package deck holds the slide deck model and the operations that turn long
// text into several slides.
package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rednotepro/rednote/internal/style"
)

// ErrSlideIndex is returned when a slide index is out of range
var ErrSlideIndex = errors.New("slide index out of range")

// Slide is one card of the deck
type Slide struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
	// Highlight is a quote or emphasis shown below the body
	Highlight string `json:"highlight,omitempty"`
}

// Meta is shown on every slide
type Meta struct {
	Author string `json:"author"`
	Handle string `json:"handle"`
	Date   string `json:"date"`
	Topic  string `json:"topic"`
}

// Deck is an ordered set of slides sharing one style
type Deck struct {
	Meta    Meta              `json:"meta"`
	ThemeID style.ThemeType   `json:"themeId"`
	Style   style.StyleConfig `json:"styleConfig"`
	Slides  []Slide           `json:"slides"`
}

// New creates an empty deck using the default theme
func New() *Deck {
	s, _ := style.Lookup(style.DefaultTheme)
	return &Deck{
		ThemeID: style.DefaultTheme,
		Style:   s,
		Slides:  []Slide{},
	}
}

// Default returns the sample deck a new session starts with
func Default() *Deck {
	d := New()
	d.Meta = Meta{
		Author: "阿星AI工作室",
		Handle: "RedNote Pro",
		Date:   "VOL.01 | 2025",
		Topic:  "超级全！快收藏！",
	}
	d.Slides = []Slide{
		{
			ID:    "slide-1",
			Title: "李笑来\n最重要的任务永远只有一个",
			Body:  "第82天 | 李笑来：最重要的任务永远只有一个《把时间当作朋友》\n\n判断一件事情是否真的重要，标准只有一个：是否对目标的实现有益。",
		},
		{
			ID:        "slide-2",
			Title:     "为什么这很重要？",
			Body:      "当你专注于本质时，你就消除了不必要的东西。这不仅关乎效率，更关乎心智的清晰。\n\n“设计就是可视化的智慧。”",
			Highlight: "少即是多。",
		},
	}
	return d
}

// SetTheme switches to a built-in theme, dropping any style tweaks
func (d *Deck) SetTheme(id style.ThemeType) error {
	s, ok := style.Lookup(id)
	if !ok {
		return fmt.Errorf("unknown theme %q", id)
	}
	d.ThemeID = id
	d.Style = s
	return nil
}

// AddSlide appends a placeholder slide and returns it
func (d *Deck) AddSlide() Slide {
	s := Slide{
		ID:    fmt.Sprintf("slide-%d", time.Now().UnixNano()),
		Title: "新标题",
		Body:  "在此输入正文内容...",
	}
	d.Slides = append(d.Slides, s)
	return s
}

// RemoveSlide deletes the slide at index
func (d *Deck) RemoveSlide(index int) error {
	if index < 0 || index >= len(d.Slides) {
		return fmt.Errorf("%w: %d of %d", ErrSlideIndex, index, len(d.Slides))
	}
	d.Slides = append(d.Slides[:index:index], d.Slides[index+1:]...)
	return nil
}

// Load decodes a deck saved with Save
func Load(r io.Reader) (*Deck, error) {
	d := New()
	if err := json.NewDecoder(r).Decode(d); err != nil {
		return nil, fmt.Errorf("failed to decode deck: %w", err)
	}
	if d.Slides == nil {
		d.Slides = []Slide{}
	}
	return d, nil
}

// Save encodes the deck as indented JSON
func (d *Deck) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode deck: %w", err)
	}
	return nil
}
