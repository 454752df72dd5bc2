package deck

import (
	"fmt"
	"strings"
	"time"

	"github.com/rednotepro/rednote/internal/pagination"
	"github.com/rednotepro/rednote/internal/text"
)

const (
	DefaultContinuationMarker = "(续)"
	DefaultGuidanceHighlight  = "一键三连 · 关注不迷路"
	DefaultTitle              = "智能生成主题"
	// DefaultTitleMaxChars bounds the first line that Ingest treats as a title
	DefaultTitleMaxChars = 30
)

// Mode selects how titles and highlights are spread over derived slides
type Mode int

const (
	// ModeContinuation keeps the title and highlight on the first slide and
	// marks the titles of the following ones as continued.
	ModeContinuation Mode = iota
	// ModeGuidance keeps the title on every slide and puts the guidance
	// highlight on the last one only.
	ModeGuidance
)

// SplitOptions controls Split and Deck.SplitSlide
type SplitOptions struct {
	Budget             int
	Unit               text.Unit
	Mode               Mode
	ContinuationMarker string
	GuidanceHighlight  string
	// NewID names the i-th derived slide. Defaults to split-<nanos>-<i>.
	NewID func(i int) string
}

// DefaultSplitOptions returns the options of the per-slide split action
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{
		Budget:             pagination.DefaultMaxChars,
		Unit:               text.CodePoints,
		Mode:               ModeContinuation,
		ContinuationMarker: DefaultContinuationMarker,
		GuidanceHighlight:  DefaultGuidanceHighlight,
	}
}

func (o SplitOptions) idFunc(prefix string) func(int) string {
	if o.NewID != nil {
		return o.NewID
	}
	stamp := time.Now().UnixNano()
	return func(i int) string {
		return fmt.Sprintf("%s-%d-%d", prefix, stamp, i)
	}
}

// Split breaks an overlong slide into several. When the body fits on one
// page the slide is returned unchanged.
func Split(s Slide, opts SplitOptions) ([]Slide, error) {
	pages, err := pagination.NewPaginator(opts.Budget, opts.Unit).Paginate(s.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to paginate slide %q: %w", s.ID, err)
	}
	if len(pages) <= 1 {
		return []Slide{s}, nil
	}
	return derive(s.Title, s.Highlight, pages, opts, opts.idFunc("split")), nil
}

func derive(title, highlight string, pages []string, opts SplitOptions, newID func(int) string) []Slide {
	slides := make([]Slide, 0, len(pages))
	last := len(pages) - 1

	for i, page := range pages {
		s := Slide{
			ID:    newID(i),
			Title: title,
			Body:  page,
		}

		switch opts.Mode {
		case ModeGuidance:
			if i == last {
				s.Highlight = opts.GuidanceHighlight
			}
		default:
			if i == 0 {
				s.Highlight = highlight
			} else {
				s.Title = continuationTitle(title, opts.ContinuationMarker)
			}
		}

		slides = append(slides, s)
	}

	return slides
}

func continuationTitle(title, marker string) string {
	if strings.TrimSpace(title) == "" {
		return marker
	}
	if marker == "" {
		return title
	}
	return title + " " + marker
}

// SplitSlide replaces the slide at index with the slides Split derives from
// it, keeping the order of the others. It returns how many slides took its
// place.
func (d *Deck) SplitSlide(index int, opts SplitOptions) (int, error) {
	if index < 0 || index >= len(d.Slides) {
		return 0, fmt.Errorf("%w: %d of %d", ErrSlideIndex, index, len(d.Slides))
	}

	derived, err := Split(d.Slides[index], opts)
	if err != nil {
		return 0, err
	}
	if len(derived) == 1 {
		return 1, nil
	}

	slides := make([]Slide, 0, len(d.Slides)-1+len(derived))
	slides = append(slides, d.Slides[:index]...)
	slides = append(slides, derived...)
	slides = append(slides, d.Slides[index+1:]...)
	d.Slides = slides

	return len(derived), nil
}

// IngestOptions controls Deck.Ingest
type IngestOptions struct {
	Budget            int
	Unit              text.Unit
	DefaultTitle      string
	TitleMaxChars     int
	GuidanceHighlight string
	NewID             func(i int) string
}

// DefaultIngestOptions returns the options of the paste-a-document action
func DefaultIngestOptions() IngestOptions {
	return IngestOptions{
		Budget:            pagination.DefaultBatchMaxChars,
		Unit:              text.CodePoints,
		DefaultTitle:      DefaultTitle,
		TitleMaxChars:     DefaultTitleMaxChars,
		GuidanceHighlight: DefaultGuidanceHighlight,
	}
}

// SplitTitle takes the first line of s as a title when it is non-empty and
// shorter than maxChars; otherwise the fallback title is used and s is
// returned whole.
func SplitTitle(s, fallback string, maxChars int, unit text.Unit) (title, body string) {
	first, rest, _ := strings.Cut(s, "\n")
	if first = strings.TrimSpace(first); first != "" && unit.Len(first) < maxChars {
		return first, rest
	}
	return fallback, s
}

// Ingest replaces every slide of the deck with slides paginated from a whole
// document. Blank input leaves the deck untouched.
func (d *Deck) Ingest(s string, opts IngestOptions) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	title, body := SplitTitle(s, opts.DefaultTitle, opts.TitleMaxChars, opts.Unit)

	pages, err := pagination.NewPaginator(opts.Budget, opts.Unit).Paginate(body)
	if err != nil {
		return fmt.Errorf("failed to paginate document: %w", err)
	}

	split := SplitOptions{
		Mode:              ModeGuidance,
		GuidanceHighlight: opts.GuidanceHighlight,
		NewID:             opts.NewID,
	}
	d.Slides = derive(title, "", pages, split, split.idFunc("smart"))

	return nil
}
