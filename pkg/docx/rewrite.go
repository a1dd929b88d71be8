package docx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/notaspie/notaspie/pkg/models"
)

var markerPattern = regexp.MustCompile(`\[\^([^\[\]\s]+)\]`)

// ReplaceParagraphs writes texts back into the body paragraphs. texts must
// have one entry per paragraph returned by Paragraphs.
//
// A rewritten paragraph keeps its paragraph properties but loses its runs:
// its text is written as plain, unformatted runs, with the original footnote
// reference runs put back where their "[^id]" markers are. Character
// formatting such as bold or italics is lost. Empty paragraphs are never
// touched, and neither are unchanged ones unless RewriteUnchanged is set.
func (d *Document) ReplaceParagraphs(texts []string) error {
	if len(texts) != len(d.paragraphs) {
		return models.NewInputError(
			fmt.Sprintf("got %d paragraphs, document has %d", len(texts), len(d.paragraphs)),
			nil,
		)
	}

	rewritten := 0
	for i, p := range d.paragraphs {
		original := paragraphText(p)
		if original == "" && texts[i] == "" {
			continue
		}
		if original == texts[i] && !d.RewriteUnchanged {
			continue
		}
		rewriteParagraph(p, texts[i])
		rewritten++
	}
	if rewritten > 0 {
		d.dirty = true
	}

	log.Debugf("rewrote %d of %d paragraphs", rewritten, len(d.paragraphs))

	return nil
}

func rewriteParagraph(p *xmlquery.Node, text string) {
	refs, order := referenceRuns(p)
	attached := map[*xmlquery.Node]bool{}

	var children []*xmlquery.Node
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	for _, c := range children {
		if !isW(c, "pPr") {
			xmlquery.RemoveFromTree(c)
		}
	}

	last := 0
	for _, loc := range markerPattern.FindAllStringSubmatchIndex(text, -1) {
		id := text[loc[2]:loc[3]]
		queue := refs[id]
		if len(queue) == 0 {
			// not a reference of this paragraph, keep it as text
			continue
		}
		appendTextRun(p, text[last:loc[0]])
		attach(p, queue[0])
		attached[queue[0]] = true
		refs[id] = queue[1:]
		last = loc[1]
	}
	appendTextRun(p, text[last:])

	// markers lost upstream must not take their footnotes with them
	for _, run := range order {
		if !attached[run] {
			attach(p, run)
		}
	}
}

// referenceRuns maps each footnote id referenced in p to the runs holding
// the references. order lists every such run in document order.
func referenceRuns(p *xmlquery.Node) (map[string][]*xmlquery.Node, []*xmlquery.Node) {
	refs := map[string][]*xmlquery.Node{}
	var order []*xmlquery.Node
	for _, ref := range xmlquery.Find(p, ".//w:footnoteReference") {
		run := ref
		for a := ref.Parent; a != nil && a != p; a = a.Parent {
			if isW(a, "r") {
				run = a
				break
			}
		}
		id := ref.SelectAttr("w:id")
		refs[id] = append(refs[id], run)
		order = append(order, run)
	}
	return refs, order
}

func attach(p, n *xmlquery.Node) {
	xmlquery.RemoveFromTree(n)
	xmlquery.AddChild(p, n)
}

func newW(name string) *xmlquery.Node {
	return &xmlquery.Node{
		Type:         xmlquery.ElementNode,
		Data:         name,
		Prefix:       "w",
		NamespaceURI: wordNS,
	}
}

// appendTextRun adds a plain run holding text to p. Tabs and vertical tabs
// become w:tab and w:br elements.
func appendTextRun(p *xmlquery.Node, text string) {
	if text == "" {
		return
	}
	r := newW("r")

	var buf strings.Builder
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		t := newW("t")
		xmlquery.AddAttr(t, "xml:space", "preserve")
		xmlquery.AddChild(t, &xmlquery.Node{Type: xmlquery.TextNode, Data: buf.String()})
		xmlquery.AddChild(r, t)
		buf.Reset()
	}
	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			xmlquery.AddChild(r, newW("tab"))
		case '\v', '\n':
			flush()
			xmlquery.AddChild(r, newW("br"))
		default:
			buf.WriteRune(ch)
		}
	}
	flush()

	xmlquery.AddChild(p, r)
}
