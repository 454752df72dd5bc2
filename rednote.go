package rednote

import (
	"github.com/rednotepro/rednote/internal/deck"
	"github.com/rednotepro/rednote/internal/pagination"
	"github.com/rednotepro/rednote/internal/style"
	"github.com/rednotepro/rednote/internal/text"
	"github.com/rednotepro/rednote/pkg/api"
)

type Studio = api.Studio
type Options = api.Options
type Option = api.Option
type PageInfo = api.PageInfo
type Deck = api.Deck
type Slide = api.Slide
type Meta = api.Meta
type Unit = text.Unit
type ThemeType = style.ThemeType

func New() *Studio                           { return api.New() }
func NewWithOptions(options Options) *Studio { return api.NewWithOptions(options) }
func DefaultOptions() Options                { return api.DefaultOptions() }
func NewDeck() *Deck                         { return deck.New() }
func DefaultDeck() *Deck                     { return deck.Default() }

// Paginate splits text into pages of at most maxChars code points,
// preferring paragraph, then sentence, then clause boundaries.
func Paginate(s string, maxChars int) ([]string, error) {
	return pagination.Paginate(s, maxChars)
}

var (
	WithMaxChars           = api.WithMaxChars
	WithBatchMaxChars      = api.WithBatchMaxChars
	WithUnit               = api.WithUnit
	WithGraphemes          = api.WithGraphemes
	WithContinuationMarker = api.WithContinuationMarker
	WithGuidanceHighlight  = api.WithGuidanceHighlight
	WithDefaultTitle       = api.WithDefaultTitle
	WithTitleMaxChars      = api.WithTitleMaxChars
	WithNormalize          = api.WithNormalize
	WithDebug              = api.WithDebug
	WithLogger             = api.WithLogger
	WithResourcePath       = api.WithResourcePath
	WithFontDirectory      = api.WithFontDirectory
	WithBackgroundImages   = api.WithBackgroundImages
	WithTitle              = api.WithTitle
	WithAuthor             = api.WithAuthor
	WithSubject            = api.WithSubject
	WithKeywords           = api.WithKeywords
)

var (
	ErrInvalidArgument = api.ErrInvalidArgument
	ErrSlideIndex      = api.ErrSlideIndex
	ErrNotFound        = api.ErrNotFound
	ErrEmptyDeck       = api.ErrEmptyDeck
)

const (
	CodePoints = text.CodePoints
	Graphemes  = text.Graphemes

	DefaultMaxChars      = pagination.DefaultMaxChars
	DefaultBatchMaxChars = pagination.DefaultBatchMaxChars
)
