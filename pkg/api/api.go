package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rednotepro/rednote/internal/deck"
	"github.com/rednotepro/rednote/internal/pagination"
	"github.com/rednotepro/rednote/internal/parser/html"
	"github.com/rednotepro/rednote/internal/render/pdf"
	"github.com/rednotepro/rednote/internal/res"
	"github.com/rednotepro/rednote/internal/text"
)

type (
	Deck  = deck.Deck
	Slide = deck.Slide
	Meta  = deck.Meta
)

var (
	ErrInvalidArgument = pagination.ErrInvalidArgument
	ErrSlideIndex      = deck.ErrSlideIndex
	ErrNotFound        = res.ErrNotFound
	ErrEmptyDeck       = pdf.ErrEmptyDeck
)

// PageInfo describes one page of a paginated text
type PageInfo struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	// Chars is the page length in the configured counting unit
	Chars int `json:"chars"`
	// Width is the widest line in terminal cells
	Width int `json:"width"`
}

// Studio is the main API for paginating text into slide decks
type Studio struct {
	options Options
	logger  *slog.Logger
	engine  *pagination.Engine
}

// New creates a new studio with default options
func New() *Studio {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new studio with the specified options
func NewWithOptions(options Options) *Studio {
	logger := options.logger()

	engine := pagination.NewEngine()
	engine.SetOptions(pagination.Options{MaxChars: options.MaxChars, Unit: options.Unit})
	engine.SetLogger(logger)

	return &Studio{
		options: options,
		logger:  logger,
		engine:  engine,
	}
}

// Options returns a copy of the studio options
func (s *Studio) Options() Options {
	return s.options
}

// Paginate splits text into pages of at most MaxChars units
func (s *Studio) Paginate(content string) ([]string, error) {
	return s.engine.Paginate(content)
}

// Pages paginates text and reports the size of every page
func (s *Studio) Pages(content string) ([]PageInfo, error) {
	pages, err := s.Paginate(content)
	if err != nil {
		return nil, err
	}

	infos := make([]PageInfo, len(pages))
	for i, page := range pages {
		infos[i] = PageInfo{
			Index: i + 1,
			Text:  page,
			Chars: s.options.Unit.Len(page),
			Width: text.DisplayWidth(page),
		}
	}
	return infos, nil
}

// SplitSlide replaces slide index of d with its continuation slides and
// returns how many slides took its place
func (s *Studio) SplitSlide(d *Deck, index int) (int, error) {
	opts := deck.DefaultSplitOptions()
	opts.Budget = s.options.MaxChars
	opts.Unit = s.options.Unit
	opts.ContinuationMarker = s.options.ContinuationMarker

	n, err := d.SplitSlide(index, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to split slide %d: %w", index, err)
	}

	s.logger.Debug("split slide", "index", index, "slides", n)
	return n, nil
}

// Ingest replaces the slides of d with pages of a whole document
func (s *Studio) Ingest(d *Deck, content string) error {
	if s.options.Normalize {
		content = text.Normalize(content)
	}

	opts := deck.DefaultIngestOptions()
	opts.Budget = s.options.BatchMaxChars
	opts.Unit = s.options.Unit
	opts.DefaultTitle = s.options.DefaultTitle
	opts.TitleMaxChars = s.options.TitleMaxChars
	opts.GuidanceHighlight = s.options.GuidanceHighlight

	if err := d.Ingest(content, opts); err != nil {
		return fmt.Errorf("failed to ingest document: %w", err)
	}

	s.logger.Debug("ingested document", "slides", len(d.Slides))
	return nil
}

// IngestHTML extracts the readable text of an HTML document and ingests it.
// The document title, when present, becomes the title line.
func (s *Studio) IngestHTML(d *Deck, htmlContent string) error {
	content, err := htmlText(htmlContent)
	if err != nil {
		return err
	}
	return s.Ingest(d, content)
}

// IngestFile ingests a local text or HTML file
func (s *Studio) IngestFile(d *Deck, path string) error {
	return s.ingestResource(d, path)
}

// IngestURL ingests a remote text or HTML document
func (s *Studio) IngestURL(d *Deck, url string) error {
	return s.ingestResource(d, url)
}

func (s *Studio) ingestResource(d *Deck, src string) error {
	content, err := s.ReadDocument(src)
	if err != nil {
		return err
	}
	return s.Ingest(d, content)
}

// ReadDocument loads a file, URL or data URL and returns its text. HTML
// documents are reduced to their readable text with the title on the first
// line.
func (s *Studio) ReadDocument(src string) (string, error) {
	resource, err := s.newLoader("").LoadDocument(src)
	if err != nil {
		return "", fmt.Errorf("failed to load document: %w", err)
	}

	if resource.Type == res.ResourceTypeHTML {
		return htmlText(resource.GetString())
	}
	return resource.GetString(), nil
}

func htmlText(htmlContent string) (string, error) {
	doc, err := html.NewParser().ParseString(htmlContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	if doc.Title != "" && !strings.HasPrefix(doc.Text, doc.Title) {
		return doc.Title + "\n" + doc.Text, nil
	}
	return doc.Text, nil
}

// ExportPDF renders every slide of d as one PDF page
func (s *Studio) ExportPDF(d *Deck, w io.Writer) error {
	if err := s.newRenderer().Render(d, w, s.renderOptions()); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// ExportPDFFile renders d to a PDF file
func (s *Studio) ExportPDFFile(d *Deck, outputPath string) error {
	if err := s.newRenderer().RenderFile(d, outputPath, s.renderOptions()); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// LoadDeck reads a deck from JSON
func (s *Studio) LoadDeck(r io.Reader) (*Deck, error) {
	d, err := deck.Load(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	return d, nil
}

// LoadDeckFile reads a deck from a JSON file. A missing file yields the
// default deck.
func (s *Studio) LoadDeckFile(path string) (*Deck, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("deck file not found, using default deck", "path", path)
		return deck.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open deck file: %w", err)
	}
	defer f.Close()

	return s.LoadDeck(f)
}

// SaveDeck writes a deck as JSON
func (s *Studio) SaveDeck(d *Deck, w io.Writer) error {
	if err := d.Save(w); err != nil {
		return fmt.Errorf("failed to save deck: %w", err)
	}
	return nil
}

// SaveDeckFile writes a deck to a JSON file
func (s *Studio) SaveDeckFile(d *Deck, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create deck file: %w", err)
	}

	if err := s.SaveDeck(d, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *Studio) newLoader(base string) *res.Loader {
	loader := res.NewLoader(base)
	loader.SetLogger(s.logger)
	for _, path := range s.options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	return loader
}

func (s *Studio) newRenderer() *pdf.Renderer {
	renderer := pdf.NewRenderer(s.newLoader(""))
	renderer.SetLogger(s.logger)
	renderer.RenderBackgroundImages = s.options.RenderBackgroundImages
	for _, dir := range s.options.FontDirectories {
		renderer.AddFontDirectory(dir)
	}
	return renderer
}

func (s *Studio) renderOptions() pdf.RenderOptions {
	return pdf.RenderOptions{
		Title:    s.options.Title,
		Author:   s.options.Author,
		Subject:  s.options.Subject,
		Keywords: s.options.Keywords,
		Creator:  "rednote",
		Producer: "rednote",
	}
}

// WithOptions returns a new studio with the specified options
func (s *Studio) WithOptions(options Options) *Studio {
	return NewWithOptions(options)
}

// WithOption returns a new studio with the specified option set
func (s *Studio) WithOption(option Option) *Studio {
	newOptions := s.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// AddResourcePath adds a path to search for resources
func (s *Studio) AddResourcePath(path string) *Studio {
	newOptions := s.options
	newOptions.ResourcePaths = append(append([]string{}, newOptions.ResourcePaths...), path)
	return NewWithOptions(newOptions)
}

// AddFontDirectory adds a directory to search for fonts
func (s *Studio) AddFontDirectory(dir string) *Studio {
	newOptions := s.options
	newOptions.FontDirectories = append(append([]string{}, newOptions.FontDirectories...), dir)
	return NewWithOptions(newOptions)
}

// SetMaxChars sets the page budget
func (s *Studio) SetMaxChars(maxChars int) *Studio {
	newOptions := s.options
	newOptions.MaxChars = maxChars
	return NewWithOptions(newOptions)
}

// SetBatchMaxChars sets the ingestion page budget
func (s *Studio) SetBatchMaxChars(maxChars int) *Studio {
	newOptions := s.options
	newOptions.BatchMaxChars = maxChars
	return NewWithOptions(newOptions)
}

// SetUnit sets the counting unit
func (s *Studio) SetUnit(unit text.Unit) *Studio {
	newOptions := s.options
	newOptions.Unit = unit
	return NewWithOptions(newOptions)
}

// SetDebug sets the debug mode
func (s *Studio) SetDebug(debug bool) *Studio {
	newOptions := s.options
	newOptions.Debug = debug
	return NewWithOptions(newOptions)
}

// SetTitle sets the document title
func (s *Studio) SetTitle(title string) *Studio {
	newOptions := s.options
	newOptions.Title = title
	return NewWithOptions(newOptions)
}

// SetAuthor sets the document author
func (s *Studio) SetAuthor(author string) *Studio {
	newOptions := s.options
	newOptions.Author = author
	return NewWithOptions(newOptions)
}
