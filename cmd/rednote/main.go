package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rednotepro/rednote"
)

func main() {
	var (
		input     string
		mode      string
		maxChars  int
		deckFile  string
		slide     int
		pdfFile   string
		theme     string
		graphemes bool
		asJSON    bool
		verbose   bool
	)

	flag.StringVar(&input, "input", "", "Input text or HTML: file path, URL, or - for stdin")
	flag.StringVar(&mode, "mode", "paginate", "Action: paginate, ingest, split, add or remove")
	flag.IntVar(&maxChars, "max", 0, "Page budget (default 100, or 110 for ingest)")
	flag.StringVar(&deckFile, "deck", "", "Deck JSON file to read and update")
	flag.IntVar(&slide, "slide", 0, "Index of the slide to split or remove")
	flag.StringVar(&pdfFile, "pdf", "", "Export the deck to this PDF file")
	flag.StringVar(&theme, "theme", "", "Theme id for the deck")
	flag.BoolVar(&graphemes, "graphemes", false, "Count grapheme clusters instead of code points")
	flag.BoolVar(&asJSON, "json", false, "Print JSON output")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	flag.Parse()

	studio := rednote.New()
	if verbose {
		studio = studio.SetDebug(true)
	}
	if graphemes {
		studio = studio.SetUnit(rednote.Graphemes)
	}
	if maxChars != 0 {
		if mode == "ingest" {
			studio = studio.SetBatchMaxChars(maxChars)
		} else {
			studio = studio.SetMaxChars(maxChars)
		}
	}

	var err error
	switch mode {
	case "paginate":
		err = paginate(studio, input, asJSON)
	case "ingest", "split", "add", "remove":
		err = editDeck(studio, mode, input, deckFile, slide, theme, pdfFile)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func readInput(studio *rednote.Studio, input string) (string, error) {
	switch input {
	case "":
		flag.Usage()
		return "", fmt.Errorf("input is required")
	case "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return studio.ReadDocument(input)
}

func paginate(studio *rednote.Studio, input string, asJSON bool) error {
	content, err := readInput(studio, input)
	if err != nil {
		return err
	}

	pages, err := studio.Pages(content)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(pages)
	}

	for _, p := range pages {
		fmt.Printf("--- page %d/%d (%d chars, %d cols) ---\n%s\n", p.Index, len(pages), p.Chars, p.Width, p.Text)
	}
	return nil
}

func editDeck(studio *rednote.Studio, mode, input, deckFile string, slide int, theme, pdfFile string) error {
	d := rednote.DefaultDeck()
	if deckFile != "" {
		var err error
		if d, err = studio.LoadDeckFile(deckFile); err != nil {
			return err
		}
	}

	if theme != "" {
		if err := d.SetTheme(rednote.ThemeType(strings.ToLower(theme))); err != nil {
			return err
		}
	}

	switch mode {
	case "ingest":
		content, err := readInput(studio, input)
		if err != nil {
			return err
		}
		if err := studio.Ingest(d, content); err != nil {
			return err
		}
	case "split":
		n, err := studio.SplitSlide(d, slide)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "slide %d became %d slides\n", slide, n)
	case "add":
		added := d.AddSlide()
		fmt.Fprintf(os.Stderr, "added slide %s\n", added.ID)
	case "remove":
		if err := d.RemoveSlide(slide); err != nil {
			return err
		}
	}

	if pdfFile != "" {
		if err := studio.ExportPDFFile(d, pdfFile); err != nil {
			return err
		}
	}

	if deckFile != "" {
		return studio.SaveDeckFile(d, deckFile)
	}
	return studio.SaveDeck(d, os.Stdout)
}
