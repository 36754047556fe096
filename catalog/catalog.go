package catalog

import (
	"errors"

	"golang.org/x/text/unicode/norm"

	"glyph-recents/recent"
)

var ErrUnknownCategory = errors.New("unknown category")

// Category names in picker tab order. Tab 0 is the recent grid, so the
// category at index i is shown on page i+1.
const (
	People  = "people"
	Nature  = "nature"
	Objects = "objects"
	Places  = "places"
	Symbols = "symbols"
)

// Catalog holds the canonical glyph records, keyed by NFC-normalised code.
type Catalog struct {
	order      []string
	byCategory map[string][]recent.Glyph
	byCode     map[string]recent.Glyph
}

// Group is one category's glyphs in display order.
type Group struct {
	Name   string
	Glyphs []recent.Glyph
}

// New builds a catalog from groups. A code listed twice keeps its first
// record.
func New(groups ...Group) *Catalog {
	c := &Catalog{
		byCategory: make(map[string][]recent.Glyph, len(groups)),
		byCode:     make(map[string]recent.Glyph),
	}
	for _, grp := range groups {
		glyphs := make([]recent.Glyph, 0, len(grp.Glyphs))
		for _, g := range grp.Glyphs {
			g.Code = norm.NFC.String(g.Code)
			g.Category = grp.Name
			if _, dup := c.byCode[g.Code]; dup {
				continue
			}
			c.byCode[g.Code] = g
			glyphs = append(glyphs, g)
		}
		c.order = append(c.order, grp.Name)
		c.byCategory[grp.Name] = glyphs
	}
	return c
}

// Lookup finds the glyph for code after normalising it to NFC.
func (c *Catalog) Lookup(code string) (recent.Glyph, bool) {
	g, ok := c.byCode[norm.NFC.String(code)]
	return g, ok
}

func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Category(name string) ([]recent.Glyph, error) {
	glyphs, ok := c.byCategory[name]
	if !ok {
		return nil, ErrUnknownCategory
	}
	out := make([]recent.Glyph, len(glyphs))
	copy(out, glyphs)
	return out, nil
}

// Page returns the picker page showing the named category.
func (c *Catalog) Page(name string) (int, error) {
	for i, n := range c.order {
		if n == name {
			return i + 1, nil
		}
	}
	return 0, ErrUnknownCategory
}

func (c *Catalog) Len() int {
	return len(c.byCode)
}
