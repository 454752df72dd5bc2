package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rednotepro/rednote/internal/text"
)

// ErrInvalidArgument is returned when the page budget is below one character
var ErrInvalidArgument = errors.New("invalid argument")

// Paginator breaks text into pages of at most MaxChars characters
type Paginator struct {
	MaxChars int
	Unit     text.Unit
}

// NewPaginator creates a new paginator
func NewPaginator(maxChars int, unit text.Unit) *Paginator {
	return &Paginator{
		MaxChars: maxChars,
		Unit:     unit,
	}
}

// Paginate counts code points and is safe for concurrent use.
func Paginate(s string, maxChars int) ([]string, error) {
	return NewPaginator(maxChars, text.CodePoints).Paginate(s)
}

// Paginate splits s into trimmed, non-empty pages in reading order.
//
// Paragraphs (separated by blank lines) are packed greedily, joined by a
// blank line. A paragraph that cannot fit on a page by itself is broken into
// sentences, a sentence into clauses, and a clause into single characters.
// Delimiters always stay with the unit they end.
func (p *Paginator) Paginate(s string) ([]string, error) {
	if p.MaxChars < 1 {
		return nil, fmt.Errorf("%w: page budget must be at least 1, got %d", ErrInvalidArgument, p.MaxChars)
	}

	pk := &packer{
		maxChars: p.MaxChars,
		unit:     p.Unit,
		pages:    make([]string, 0),
	}
	pk.pack(s, 0)
	pk.flush()

	return pk.pages, nil
}

// PageCount returns the number of pages s would produce
func (p *Paginator) PageCount(s string) (int, error) {
	pages, err := p.Paginate(s)
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// packer holds the state of a single Paginate call
type packer struct {
	maxChars int
	unit     text.Unit

	// acc is the page being filled
	acc   string
	pages []string
}

func (p *packer) fits(s string) bool {
	return p.unit.Len(s) <= p.maxChars
}

// pack runs the merge-or-flush loop over the units of s at the given level.
// A unit that does not fit on an empty page is handed to the next level.
func (p *packer) pack(s string, depth int) {
	lv := levels[depth]

	for _, unit := range lv.split(s) {
		candidate := unit
		if p.acc != "" {
			candidate = p.acc + lv.sep + unit
		}
		if p.fits(candidate) {
			p.acc = candidate
			continue
		}

		p.flush()
		if p.fits(unit) {
			p.acc = unit
			continue
		}

		if depth+1 < len(levels) {
			p.pack(unit, depth+1)
		} else {
			p.slice(unit)
		}
	}
}

// slice is the last resort for a clause with no usable delimiter. Full
// buffers are committed directly since nothing after them can merge back;
// the remainder becomes the accumulator.
func (p *packer) slice(s string) {
	var buf strings.Builder
	n := 0

	for _, piece := range p.unit.Split(s) {
		if n+1 > p.maxChars {
			p.commit(buf.String())
			buf.Reset()
			n = 0
		}
		buf.WriteString(piece)
		n++
	}

	p.acc = buf.String()
}

func (p *packer) flush() {
	p.commit(p.acc)
	p.acc = ""
}

func (p *packer) commit(page string) {
	if page = strings.TrimSpace(page); page != "" {
		p.pages = append(p.pages, page)
	}
}
