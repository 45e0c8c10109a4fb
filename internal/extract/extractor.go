// Package extract turns a document's rendered HTML into a typed
// SpecRecord. It only understands the small fixed schema of the
// two-column metadata table at the top of a spec; everything else in the
// document is left alone.
package extract

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/specsync/internal/authors"
	"github.com/custodia-labs/specsync/internal/core/domain"
)

// Result is a successful extraction: the typed record plus the rendered
// document with the metadata table removed, ready for display.
type Result struct {
	Record *domain.SpecRecord
	HTML   string
}

// Extractor parses spec metadata tables out of rendered HTML.
type Extractor struct{}

// New creates a new metadata extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses one document. It fails with ErrNoMetadataTable when the
// document has no table at all; field-level problems never fail, they
// degrade to unknown/empty values.
func (e *Extractor) Extract(rendered string) (*Result, error) {
	root, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", domain.ErrInvalidInput, err)
	}

	// Cosmetic cleanup must run before table discovery so whitespace-only
	// cells do not masquerade as populated ones.
	stripEmptyElements(root)

	table := findFirst(root, atom.Table)
	if table == nil {
		return nil, domain.ErrNoMetadataTable
	}

	rec := parseMetadataTable(table)

	// Detach the table so the returned document no longer carries it.
	table.Parent.RemoveChild(table)

	var buf strings.Builder
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	return &Result{Record: rec, HTML: buf.String()}, nil
}

// Elements kept even when they carry no text content.
var keepWhenEmpty = map[atom.Atom]bool{
	atom.Br:  true,
	atom.Img: true,
	atom.Hr:  true,
}

// stripEmptyElements removes elements with no text content, walking the
// tree top-down so an empty container disappears with everything in it.
func stripEmptyElements(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && !keepWhenEmpty[c.DataAtom] &&
			strings.TrimSpace(textContent(c)) == "" {
			n.RemoveChild(c)
		} else {
			stripEmptyElements(c)
		}
		c = next
	}
}

// textContent concatenates every text node under n, in document order.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// findFirst returns the first element with the given tag, depth-first.
func findFirst(n *html.Node, tag atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAll collects every element with the given tag under n.
func findAll(n *html.Node, tag atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.DataAtom == tag {
			out = append(out, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

// parseMetadataTable reads the recognised keys out of the table.
// Rows that are not exactly two cells are skipped; unrecognised keys are
// dropped; absent keys keep the record's fresh defaults.
func parseMetadataTable(table *html.Node) *domain.SpecRecord {
	rec := domain.NewSpecRecord()
	for _, row := range findAll(table, atom.Tr) {
		key, value, ok := matchRow(row)
		if !ok {
			continue
		}
		switch key {
		case "index":
			rec.Index = value.text()
		case "title":
			rec.Title = value.text()
		case "status":
			rec.Status, rec.StatusMessage = domain.ParseStatus(value.text())
		case "authors":
			rec.Authors = authors.Parse(value.authorText())
		case "type":
			rec.Type = domain.ParseType(value.text())
		case "created":
			rec.Created = domain.ParseDate(value.text())
		}
	}
	return rec
}

// matchRow pattern-matches a row against the |key|value| shape.
// Anything other than exactly two cells is not a metadata row.
func matchRow(row *html.Node) (string, cell, bool) {
	cells := findAll(row, atom.Td)
	if len(cells) != 2 {
		return "", cell{}, false
	}
	key := strings.ToLower(strings.TrimSpace(textContent(cells[0])))
	return key, parseCell(cells[1]), true
}
