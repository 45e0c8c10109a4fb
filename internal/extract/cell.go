package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// fragmentKind tags one rendered text fragment within a value cell.
// Author entries in particular arrive as several adjacent fragments when
// the document renders people as mention chips.
type fragmentKind int

const (
	// fragmentText is ordinary cell text.
	fragmentText fragmentKind = iota
	// fragmentMention is text rendered inside a link (a mention chip).
	fragmentMention
	// fragmentSeparator is a fragment carrying only list punctuation.
	fragmentSeparator
)

type fragment struct {
	kind fragmentKind
	text string
}

// cell is the tagged-variant model of a value cell: a sequence of
// classified text fragments rather than a raw markup subtree.
type cell struct {
	fragments []fragment
}

// parseCell classifies every text node under the cell element.
// Whitespace-only nodes are not fragments.
func parseCell(td *html.Node) cell {
	var c cell
	var walk func(n *html.Node, inLink bool)
	walk = func(n *html.Node, inLink bool) {
		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed == "" {
				return
			}
			kind := fragmentText
			switch {
			case isSeparator(trimmed):
				kind = fragmentSeparator
			case inLink:
				kind = fragmentMention
			}
			c.fragments = append(c.fragments, fragment{kind: kind, text: n.Data})
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, inLink || isLink(n))
		}
	}
	walk(td, isLink(td))
	return c
}

func isLink(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.A
}

// isSeparator reports whether a trimmed fragment is only list punctuation.
func isSeparator(trimmed string) bool {
	return strings.Trim(trimmed, ",; ") == ""
}

// text returns the cell's full trimmed text, fragments concatenated in
// document order. Used for every key except authors.
func (c cell) text() string {
	var b strings.Builder
	for _, f := range c.fragments {
		b.WriteString(f.text)
	}
	return strings.TrimSpace(b.String())
}

// authorText rebuilds a comma-separated author list from the fragments:
// separator-only fragments are dropped and the rest joined with commas,
// so names split across mention fragments stay distinct entries.
func (c cell) authorText() string {
	parts := make([]string, 0, len(c.fragments))
	for _, f := range c.fragments {
		if f.kind == fragmentSeparator {
			continue
		}
		parts = append(parts, strings.TrimSpace(f.text))
	}
	return strings.Join(parts, ",")
}
