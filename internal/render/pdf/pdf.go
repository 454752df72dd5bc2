package pdf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/rednotepro/rednote/internal/deck"
	"github.com/rednotepro/rednote/internal/res"
	"github.com/rednotepro/rednote/internal/style"
	"github.com/rednotepro/rednote/internal/text"
)

// Card geometry in points. Slides are 3:4 portrait cards.
const (
	PageWidth  = 540.0
	PageHeight = 720.0

	margin       = 48.0
	contentWidth = PageWidth - 2*margin

	// pxToPt converts CSS pixels (theme sizes) to points
	pxToPt = 0.75

	bodyFontSize      = 18.0
	bodyLineHeight    = 1.6
	metaFontSize      = 10.0
	highlightFontSize = 16.0
)

// ErrEmptyDeck is returned when there is nothing to render
var ErrEmptyDeck = errors.New("deck has no slides")

// Renderer handles rendering a deck to PDF
type Renderer struct {
	// FontDirs are searched for a TrueType font able to show CJK text
	FontDirs []string
	// RenderBackgroundImages controls whether style background images are drawn
	RenderBackgroundImages bool

	loader *res.Loader
	logger *slog.Logger
}

// RenderOptions contains document metadata
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// NewRenderer creates a new PDF renderer. The loader resolves background
// images; it may be nil.
func NewRenderer(loader *res.Loader) *Renderer {
	return &Renderer{
		FontDirs:               []string{},
		RenderBackgroundImages: true,
		loader:                 loader,
		logger:                 slog.Default(),
	}
}

// SetLogger sets the logger used for debug output
func (r *Renderer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		r.logger = logger
	}
}

// AddFontDirectory adds a directory to search for fonts
func (r *Renderer) AddFontDirectory(dir string) {
	r.FontDirs = append(r.FontDirs, dir)
}

// fontSet is the font chosen for a document and the translation its
// encoding needs
type fontSet struct {
	family  string
	unicode bool
	tr      func(string) string
}

// Render writes one page per slide to w
func (r *Renderer) Render(d *deck.Deck, w io.Writer, options RenderOptions) error {
	if len(d.Slides) == 0 {
		return ErrEmptyDeck
	}

	palette, err := d.Style.Palette()
	if err != nil {
		return fmt.Errorf("failed to parse style: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)

	fonts := r.registerFonts(pdf)
	if !fonts.unicode && needsUnicodeFont(d) {
		r.logger.Warn("no TrueType font found; characters outside Latin-1 will not render",
			"fontDirs", r.FontDirs)
	}

	background := ""
	if r.RenderBackgroundImages && d.Style.BackgroundImage != "" {
		background = r.registerBackground(pdf, d.Style.BackgroundImage)
	}

	r.logger.Debug("rendering deck", "slides", len(d.Slides), "theme", d.ThemeID, "font", fonts.family)

	for i := range d.Slides {
		pdf.AddPage()
		r.renderSlide(pdf, fonts, palette, d, i, background)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// RenderFile renders the deck to a file, creating its directory if needed
func (r *Renderer) RenderFile(d *deck.Deck, outputPath string, options RenderOptions) error {
	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := r.Render(d, f, options); err != nil {
		f.Close()
		os.Remove(outputPath)
		return err
	}
	return f.Close()
}

// registerFonts picks the first TrueType font found in FontDirs and falls
// back to core Helvetica
func (r *Renderer) registerFonts(pdf *fpdf.Fpdf) fontSet {
	for _, dir := range r.FontDirs {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.ttf"))
		sort.Strings(matches)
		if len(matches) == 0 {
			continue
		}

		pdf.AddUTF8Font("card", "", matches[0])
		pdf.AddUTF8Font("card", "B", matches[0])
		if pdf.Err() {
			r.logger.Warn("failed to register font", "path", matches[0], "err", pdf.Error())
			pdf.ClearError()
			continue
		}

		r.logger.Debug("registered font", "path", matches[0])
		return fontSet{family: "card", unicode: true, tr: func(s string) string { return s }}
	}

	return fontSet{family: "Helvetica", tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func needsUnicodeFont(d *deck.Deck) bool {
	for _, s := range d.Slides {
		for _, field := range []string{s.Title, s.Body, s.Highlight} {
			for _, r := range field {
				if r > 0xFF {
					return true
				}
			}
		}
	}
	return false
}

// renderSlide draws the background, header, title, body, highlight and
// footer of one slide
func (r *Renderer) renderSlide(pdf *fpdf.Fpdf, fonts fontSet, palette style.Palette, d *deck.Deck, index int, background string) {
	slide := d.Slides[index]

	pdf.SetFillColor(style.RGB(palette.Background))
	pdf.Rect(0, 0, PageWidth, PageHeight, "F")

	if background != "" {
		pdf.ImageOptions(background, 0, 0, PageWidth, PageHeight, false,
			fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		if d.Style.OverlayOpacity > 0 {
			pdf.SetAlpha(d.Style.OverlayOpacity, "Normal")
			pdf.SetFillColor(0, 0, 0)
			pdf.Rect(0, 0, PageWidth, PageHeight, "F")
			pdf.SetAlpha(1, "Normal")
		}
	}

	align := "L"
	if text.IsRTL(slide.Body) {
		align = "R"
	}

	// Header: issue on the left, topic tag on the right
	pdf.SetFont(fonts.family, "", metaFontSize)
	pdf.SetTextColor(style.RGB(palette.Text))
	pdf.SetXY(margin, margin)
	pdf.CellFormat(contentWidth/2, metaFontSize*1.6, fonts.tr(d.Meta.Date), "", 0, "L", false, 0, "")
	if d.Meta.Topic != "" {
		pdf.SetFillColor(style.RGB(palette.Accent))
		pdf.CellFormat(contentWidth/2, metaFontSize*1.6, fonts.tr(d.Meta.Topic), "", 1, "R", true, 0, "")
	}

	y := margin + 48
	if slide.Title != "" {
		size := d.Style.TitleFontSize * pxToPt
		if size <= 0 {
			size = 36
		}
		pdf.SetFont(fonts.family, "B", size)
		pdf.SetXY(margin, y)
		pdf.MultiCell(contentWidth, size*1.2, fonts.tr(slide.Title), "", align, false)
		y = pdf.GetY() + 24
	}

	pdf.SetFont(fonts.family, "", bodyFontSize)
	pdf.SetXY(margin, y)
	pdf.MultiCell(contentWidth, bodyFontSize*bodyLineHeight, fonts.tr(slide.Body), "", align, false)
	y = pdf.GetY() + 24

	if slide.Highlight != "" {
		r.renderHighlight(pdf, fonts, palette, slide.Highlight, y, align)
	}

	// Footer: handle and two-digit page number
	footerY := PageHeight - margin - metaFontSize*1.6
	pdf.SetFont(fonts.family, "B", metaFontSize)
	pdf.SetTextColor(style.RGB(palette.Text))
	pdf.SetXY(margin, footerY)
	pdf.CellFormat(contentWidth/2, metaFontSize*1.6, fonts.tr(d.Meta.Handle), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth/2, metaFontSize*1.6, fmt.Sprintf("%02d", index+1), "", 0, "R", false, 0, "")
}

// renderHighlight draws the quoted highlight on a panel tinted from the
// accent colour
func (r *Renderer) renderHighlight(pdf *fpdf.Fpdf, fonts fontSet, palette style.Palette, highlight string, y float64, align string) {
	const padding = 12.0
	lineHeight := highlightFontSize * 1.4

	quoted := fonts.tr("“" + strings.TrimSpace(highlight) + "”")

	pdf.SetFont(fonts.family, "B", highlightFontSize)
	lines := pdf.SplitText(quoted, contentWidth-2*padding)
	height := float64(len(lines))*lineHeight + 2*padding

	pdf.SetFillColor(style.RGB(palette.Tint(0.5)))
	pdf.Rect(margin, y, contentWidth, height, "F")
	pdf.SetFillColor(style.RGB(palette.Accent))
	pdf.Rect(margin, y, 4, height, "F")

	pdf.SetTextColor(style.RGB(palette.Text))
	pdf.SetXY(margin+padding, y+padding)
	pdf.MultiCell(contentWidth-2*padding, lineHeight, quoted, "", align, false)
}
