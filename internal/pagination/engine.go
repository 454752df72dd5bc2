package pagination

import (
	"log/slog"

	"github.com/rednotepro/rednote/internal/text"
)

const (
	// DefaultMaxChars is the budget used when splitting a single slide
	DefaultMaxChars = 100
	// DefaultBatchMaxChars is the budget used when a whole document is pasted
	DefaultBatchMaxChars = 110
)

// Options represents options for the pagination engine
type Options struct {
	MaxChars int
	Unit     text.Unit
}

// Engine handles the pagination process
type Engine struct {
	options Options
	logger  *slog.Logger
}

// NewEngine creates a new pagination engine
func NewEngine() *Engine {
	return &Engine{
		options: Options{
			MaxChars: DefaultMaxChars,
			Unit:     text.CodePoints,
		},
		logger: slog.Default(),
	}
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// Options returns the current options
func (e *Engine) Options() Options {
	return e.options
}

// SetLogger sets the logger used for debug output
func (e *Engine) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	e.logger = logger
}

// Paginate breaks text into pages using the engine options
func (e *Engine) Paginate(s string) ([]string, error) {
	return e.PaginateWith(s, e.options.MaxChars)
}

// PaginateWith breaks text into pages using maxChars instead of the
// configured budget
func (e *Engine) PaginateWith(s string, maxChars int) ([]string, error) {
	paginator := NewPaginator(maxChars, e.options.Unit)

	pages, err := paginator.Paginate(s)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("paginated text",
		"chars", e.options.Unit.Len(s),
		"budget", maxChars,
		"unit", e.options.Unit.String(),
		"pages", len(pages))

	return pages, nil
}
