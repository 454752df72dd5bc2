package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rednotepro/rednote/internal/deck"
	"github.com/rednotepro/rednote/internal/text"
)

func TestStudioPaginate(t *testing.T) {
	pages, err := New().SetMaxChars(12).Paginate("Aaaa. Bbbb. Cccc. Dddd.")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Aaaa. Bbbb.", "Cccc. Dddd."}
	if len(pages) != len(want) {
		t.Fatalf("got %q, want %q", pages, want)
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Errorf("page %d = %q, want %q", i, pages[i], want[i])
		}
	}

	if _, err := New().SetMaxChars(0).Paginate("x"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero budget: err = %v", err)
	}
}

func TestStudioPages(t *testing.T) {
	infos, err := New().Pages("你好")
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Fatalf("got %d pages", len(infos))
	}
	if got := infos[0]; got.Index != 1 || got.Text != "你好" || got.Chars != 2 || got.Width != 4 {
		t.Errorf("page info = %+v", got)
	}

	family := "\U0001F468\u200d\U0001F469\u200d\U0001F467"
	infos, err = New().SetUnit(text.Graphemes).SetMaxChars(2).Pages(family + family + family)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 || infos[0].Chars != 2 || infos[1].Chars != 1 {
		t.Errorf("grapheme pages = %+v", infos)
	}
}

func TestStudioSplitSlide(t *testing.T) {
	d := deck.New()
	d.Slides = []Slide{
		{ID: "a", Title: "A", Body: "short"},
		{ID: "b", Title: "B", Body: strings.Repeat("x", 250), Highlight: "hl"},
		{ID: "c", Title: "C", Body: "short"},
	}

	n, err := New().SplitSlide(d, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || len(d.Slides) != 5 {
		t.Fatalf("n = %d, slides = %d", n, len(d.Slides))
	}
	if d.Slides[0].ID != "a" || d.Slides[4].ID != "c" {
		t.Errorf("neighbours moved: %q %q", d.Slides[0].ID, d.Slides[4].ID)
	}
	if d.Slides[1].Title != "B" || d.Slides[1].Highlight != "hl" {
		t.Errorf("first part = %+v", d.Slides[1])
	}
	if d.Slides[2].Title != "B (续)" || d.Slides[3].Highlight != "" {
		t.Errorf("continuation parts = %+v %+v", d.Slides[2], d.Slides[3])
	}

	custom := New().WithOption(WithContinuationMarker("(cont.)"))
	d.Slides = []Slide{{ID: "z", Title: "Z", Body: strings.Repeat("y", 150)}}
	if _, err := custom.SplitSlide(d, 0); err != nil {
		t.Fatal(err)
	}
	if d.Slides[1].Title != "Z (cont.)" {
		t.Errorf("custom marker title = %q", d.Slides[1].Title)
	}

	if _, err := New().SplitSlide(d, 7); !errors.Is(err, ErrSlideIndex) {
		t.Errorf("out of range: err = %v", err)
	}
}

func TestStudioIngest(t *testing.T) {
	d := deck.Default()
	doc := "My Notes\r\n" + strings.Repeat("字", 200)

	if err := New().Ingest(d, doc); err != nil {
		t.Fatal(err)
	}
	if len(d.Slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(d.Slides))
	}
	for i, s := range d.Slides {
		if s.Title != "My Notes" {
			t.Errorf("slide %d title = %q", i, s.Title)
		}
		if strings.Contains(s.Body, "\r") {
			t.Errorf("slide %d kept a carriage return", i)
		}
	}
	if d.Slides[0].Highlight != "" || d.Slides[1].Highlight != deck.DefaultGuidanceHighlight {
		t.Errorf("highlights = %q, %q", d.Slides[0].Highlight, d.Slides[1].Highlight)
	}

	before := len(d.Slides)
	if err := New().Ingest(d, "  \n\t "); err != nil {
		t.Fatal(err)
	}
	if len(d.Slides) != before {
		t.Error("blank document changed the deck")
	}

	d = deck.New()
	if err := New().WithOption(WithDefaultTitle("Untitled")).Ingest(d, strings.Repeat("long first line ", 5)); err != nil {
		t.Fatal(err)
	}
	if len(d.Slides) != 1 || d.Slides[0].Title != "Untitled" {
		t.Errorf("slides = %+v", d.Slides)
	}
}

const samplePage = `<html><head><title>My Post</title><style>p{}</style></head>
<body><p>One.</p><p>Two.</p></body></html>`

func TestStudioIngestHTML(t *testing.T) {
	d := deck.New()
	if err := New().IngestHTML(d, samplePage); err != nil {
		t.Fatal(err)
	}
	if len(d.Slides) != 1 {
		t.Fatalf("got %d slides", len(d.Slides))
	}
	s := d.Slides[0]
	if s.Title != "My Post" || s.Body != "One.\n\nTwo." {
		t.Errorf("slide = %+v", s)
	}
	if s.Highlight != deck.DefaultGuidanceHighlight {
		t.Errorf("highlight = %q", s.Highlight)
	}
}

func TestStudioIngestFile(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	page := filepath.Join(dir, "post.html")
	if err := os.WriteFile(txt, []byte("Title\nBody text."), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(page, []byte(samplePage), 0o644); err != nil {
		t.Fatal(err)
	}

	d := deck.New()
	if err := New().IngestFile(d, txt); err != nil {
		t.Fatal(err)
	}
	if len(d.Slides) != 1 || d.Slides[0].Title != "Title" || d.Slides[0].Body != "Body text." {
		t.Errorf("text slides = %+v", d.Slides)
	}

	if err := New().IngestFile(d, page); err != nil {
		t.Fatal(err)
	}
	if len(d.Slides) != 1 || d.Slides[0].Title != "My Post" {
		t.Errorf("html slides = %+v", d.Slides)
	}

	if err := New().IngestFile(d, filepath.Join(dir, "missing.txt")); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestStudioIngestURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	d := deck.New()
	if err := New().IngestURL(d, srv.URL+"/post"); err != nil {
		t.Fatal(err)
	}
	if len(d.Slides) != 1 || d.Slides[0].Body != "One.\n\nTwo." {
		t.Errorf("slides = %+v", d.Slides)
	}
}

func TestStudioExportPDF(t *testing.T) {
	studio := New().SetTitle("deck").SetAuthor("me")

	var buf bytes.Buffer
	if err := studio.ExportPDF(deck.Default(), &buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}

	if err := studio.ExportPDF(deck.New(), &buf); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("empty deck: err = %v", err)
	}

	out := filepath.Join(t.TempDir(), "deck.pdf")
	if err := studio.ExportPDFFile(deck.Default(), out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

func TestStudioDeckFiles(t *testing.T) {
	studio := New()
	path := filepath.Join(t.TempDir(), "deck.json")

	d, err := studio.LoadDeckFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Slides) != len(deck.Default().Slides) {
		t.Fatalf("missing file did not yield the default deck")
	}

	d.Slides[0].Body = "edited"
	if err := studio.SaveDeckFile(d, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := studio.LoadDeckFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Slides[0].Body != "edited" || loaded.ThemeID != d.ThemeID {
		t.Errorf("loaded deck = %+v", loaded)
	}

	if _, err := studio.LoadDeck(strings.NewReader("{")); err == nil {
		t.Error("expected an error for truncated JSON")
	}
}

func TestStudioOptions(t *testing.T) {
	base := New()
	derived := base.WithOption(WithMaxChars(5)).AddResourcePath("a").AddFontDirectory("f")

	if base.Options().MaxChars != 100 {
		t.Errorf("base budget changed to %d", base.Options().MaxChars)
	}
	if len(base.Options().ResourcePaths) != 0 || len(base.Options().FontDirectories) != 0 {
		t.Error("base paths changed")
	}
	opts := derived.Options()
	if opts.MaxChars != 5 || opts.ResourcePaths[0] != "a" || opts.FontDirectories[0] != "f" {
		t.Errorf("derived options = %+v", opts)
	}

	defaults := DefaultOptions()
	if defaults.BatchMaxChars != 110 || defaults.TitleMaxChars != 30 || !defaults.Normalize {
		t.Errorf("defaults = %+v", defaults)
	}
}

func TestStudioLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	studio := NewWithOptions(DefaultOptions()).WithOption(WithLogger(logger))
	if err := studio.Ingest(deck.New(), "Title\nBody."); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ingested document") {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestStudioReadDocument(t *testing.T) {
	got, err := New().ReadDocument("data:text/plain,hello%20world")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello world" {
		t.Errorf("got %q", got)
	}

	got, err = New().ReadDocument("data:text/html," + strings.ReplaceAll(samplePage, "\n", ""))
	if err != nil {
		t.Fatal(err)
	}
	if got != "My Post\nOne.\n\nTwo." {
		t.Errorf("html text = %q", got)
	}
}
