package api

import (
	"log/slog"
	"os"

	"github.com/rednotepro/rednote/internal/deck"
	"github.com/rednotepro/rednote/internal/pagination"
	"github.com/rednotepro/rednote/internal/text"
)

// Options represents configuration options for the studio
type Options struct {
	// Page budgets
	MaxChars      int
	BatchMaxChars int
	// Counting unit for budgets: code points or grapheme clusters
	Unit text.Unit

	// Slide splitting
	ContinuationMarker string
	GuidanceHighlight  string
	DefaultTitle       string
	TitleMaxChars      int

	// When true, ingested text is converted to NFC with LF line endings
	Normalize bool

	// Logging
	Debug  bool
	Logger *slog.Logger

	// Resource paths
	ResourcePaths   []string
	FontDirectories []string

	// When false, background images are not drawn in exported PDFs
	RenderBackgroundImages bool

	// Document metadata
	Title    string
	Author   string
	Subject  string
	Keywords string
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		MaxChars:      pagination.DefaultMaxChars,
		BatchMaxChars: pagination.DefaultBatchMaxChars,
		Unit:          text.CodePoints,

		ContinuationMarker: deck.DefaultContinuationMarker,
		GuidanceHighlight:  deck.DefaultGuidanceHighlight,
		DefaultTitle:       deck.DefaultTitle,
		TitleMaxChars:      deck.DefaultTitleMaxChars,

		Normalize: true,

		ResourcePaths:   []string{},
		FontDirectories: []string{},

		RenderBackgroundImages: true,
	}
}

// WithMaxChars sets the page budget used by Paginate and SplitSlide
func WithMaxChars(maxChars int) Option {
	return func(o *Options) {
		o.MaxChars = maxChars
	}
}

// WithBatchMaxChars sets the page budget used when ingesting documents
func WithBatchMaxChars(maxChars int) Option {
	return func(o *Options) {
		o.BatchMaxChars = maxChars
	}
}

// WithUnit sets the counting unit
func WithUnit(unit text.Unit) Option {
	return func(o *Options) {
		o.Unit = unit
	}
}

// WithGraphemes counts budgets in grapheme clusters instead of code points
func WithGraphemes() Option {
	return WithUnit(text.Graphemes)
}

// WithContinuationMarker sets the suffix added to continued slide titles
func WithContinuationMarker(marker string) Option {
	return func(o *Options) {
		o.ContinuationMarker = marker
	}
}

// WithGuidanceHighlight sets the highlight placed on the last ingested slide
func WithGuidanceHighlight(highlight string) Option {
	return func(o *Options) {
		o.GuidanceHighlight = highlight
	}
}

// WithDefaultTitle sets the title used when a document has no title line
func WithDefaultTitle(title string) Option {
	return func(o *Options) {
		o.DefaultTitle = title
	}
}

// WithTitleMaxChars sets the length below which a first line counts as a title
func WithTitleMaxChars(maxChars int) Option {
	return func(o *Options) {
		o.TitleMaxChars = maxChars
	}
}

// WithNormalize toggles normalisation of ingested text
func WithNormalize(normalize bool) Option {
	return func(o *Options) {
		o.Normalize = normalize
	}
}

// WithDebug sets the debug mode
func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithResourcePath adds a path to search for resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithFontDirectory adds a directory to search for fonts
func WithFontDirectory(dir string) Option {
	return func(o *Options) {
		o.FontDirectories = append(o.FontDirectories, dir)
	}
}

// WithBackgroundImages toggles background images in exported PDFs
func WithBackgroundImages(render bool) Option {
	return func(o *Options) {
		o.RenderBackgroundImages = render
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// logger returns the configured logger. Without one, Debug switches to a
// stderr text handler at debug level.
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.Debug {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.Default()
}
