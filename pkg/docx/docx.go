// Package docx reads and rewrites the paragraph text of Word (OOXML)
// documents. Only the main document part is ever rewritten; every other
// part, footnotes included, is copied byte for byte.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/notaspie/notaspie/internal"
	"github.com/notaspie/notaspie/pkg/models"
)

var log = internal.GetLogger()

const (
	wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	officeDocumentRel = "/officeDocument"
	footnotesRel      = "/footnotes"

	rootRelsPath    = "_rels/.rels"
	defaultMainPath = "word/document.xml"
)

var relationshipExpr = xpath.MustCompile("//Relationship")

var _ models.Document = &Document{}

// Document is an opened DOCX package.
type Document struct {
	// RewriteUnchanged controls whether paragraphs whose text did not change
	// are rewritten too. Open sets it to true.
	RewriteUnchanged bool

	files      []*zip.File
	mainPath   string
	main       *xmlquery.Node
	paragraphs []*xmlquery.Node
	footnotes  []models.FootnotePart
	dirty      bool
}

// Open parses a DOCX package held in memory.
func Open(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, models.NewInputError("not a DOCX package", err)
	}

	d := &Document{RewriteUnchanged: true, files: zr.File}

	d.mainPath, err = d.locateMainPart()
	if err != nil {
		return nil, err
	}
	d.main, err = d.parsePart(d.mainPath)
	if err != nil {
		return nil, err
	}

	body := xmlquery.FindOne(d.main, "//w:body")
	if body == nil {
		return nil, models.NewInputError(fmt.Sprintf("%s has no body", d.mainPath), nil)
	}
	d.paragraphs = collectParagraphs(body, nil)

	footnotesPath, err := d.locateFootnotesPart()
	if err != nil {
		return nil, err
	}
	if footnotesPath != "" {
		footnotes, err := d.parsePart(footnotesPath)
		if err != nil {
			return nil, err
		}
		d.footnotes = readFootnotes(footnotes)
	}

	log.Debugf(
		"opened DOCX: %d paragraphs, %d footnotes, main part %s",
		len(d.paragraphs), len(d.footnotes), d.mainPath,
	)

	return d, nil
}

// Paragraphs returns the text of every body paragraph, table cells included.
// Tabs read as "\t", line breaks as "\v" and footnote references as "[^id]".
func (d *Document) Paragraphs() []string {
	texts := make([]string, len(d.paragraphs))
	for i, p := range d.paragraphs {
		texts[i] = paragraphText(p)
	}
	return texts
}

// FootnoteParts returns the document's footnotes. Separator footnotes are
// left out.
func (d *Document) FootnoteParts() []models.FootnotePart {
	return d.footnotes
}

// Save writes the package to w. Parts other than the main document part are
// copied without being decompressed.
func (d *Document) Save(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, f := range d.files {
		if f.Name == d.mainPath && d.dirty {
			fw, err := zw.CreateHeader(&zip.FileHeader{
				Name:     f.Name,
				Method:   zip.Deflate,
				Modified: f.Modified,
			})
			if err != nil {
				return models.NewSaveError("failed to create main part", err)
			}
			if _, err := io.WriteString(fw, d.main.OutputXML(true)); err != nil {
				return models.NewSaveError("failed to write main part", err)
			}
			continue
		}
		if err := zw.Copy(f); err != nil {
			return models.NewSaveError(fmt.Sprintf("failed to copy %s", f.Name), err)
		}
	}
	if err := zw.Close(); err != nil {
		return models.NewSaveError("failed to finish DOCX package", err)
	}
	return nil
}

func (d *Document) file(name string) *zip.File {
	for _, f := range d.files {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (d *Document) parsePart(name string) (*xmlquery.Node, error) {
	f := d.file(name)
	if f == nil {
		return nil, models.NewInputError(fmt.Sprintf("missing part %s", name), nil)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, models.NewInputError(fmt.Sprintf("failed to open %s", name), err)
	}
	defer rc.Close()

	doc, err := xmlquery.Parse(rc)
	if err != nil {
		return nil, models.NewInputError(fmt.Sprintf("failed to parse %s", name), err)
	}
	return doc, nil
}

// relationshipTarget returns the target of the first relationship in the rels
// part whose type ends with typeSuffix, resolved against base.
func (d *Document) relationshipTarget(relsPath, base, typeSuffix string) (string, error) {
	if d.file(relsPath) == nil {
		return "", nil
	}
	rels, err := d.parsePart(relsPath)
	if err != nil {
		return "", err
	}
	for _, rel := range xmlquery.QuerySelectorAll(rels, relationshipExpr) {
		if !strings.HasSuffix(rel.SelectAttr("Type"), typeSuffix) {
			continue
		}
		if rel.SelectAttr("TargetMode") == "External" {
			continue
		}
		target := rel.SelectAttr("Target")
		if strings.HasPrefix(target, "/") {
			return strings.TrimPrefix(target, "/"), nil
		}
		return path.Join(base, target), nil
	}
	return "", nil
}

func (d *Document) locateMainPart() (string, error) {
	main, err := d.relationshipTarget(rootRelsPath, "", officeDocumentRel)
	if err != nil {
		return "", err
	}
	if main == "" {
		main = defaultMainPath
	}
	return main, nil
}

func (d *Document) locateFootnotesPart() (string, error) {
	dir, name := path.Split(d.mainPath)
	relsPath := path.Join(dir, "_rels", name+".rels")
	return d.relationshipTarget(relsPath, dir, footnotesRel)
}

func isW(n *xmlquery.Node, name string) bool {
	return n != nil &&
		n.Type == xmlquery.ElementNode &&
		n.Data == name &&
		(n.NamespaceURI == wordNS || n.Prefix == "w")
}

// collectParagraphs appends the w:p elements below n in document order.
// Paragraphs nested inside another paragraph (text boxes) are not collected.
func collectParagraphs(n *xmlquery.Node, out []*xmlquery.Node) []*xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if isW(c, "p") {
			out = append(out, c)
			continue
		}
		out = collectParagraphs(c, out)
	}
	return out
}

func paragraphText(p *xmlquery.Node) string {
	var sb strings.Builder
	writeText(&sb, p)
	return sb.String()
}

func writeText(sb *strings.Builder, n *xmlquery.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch {
		case isW(c, "t"):
			sb.WriteString(c.InnerText())
		case isW(c, "tab"):
			sb.WriteString("\t")
		case isW(c, "br"), isW(c, "cr"):
			sb.WriteString("\v")
		case isW(c, "footnoteReference"):
			sb.WriteString(marker(c.SelectAttr("w:id")))
		case isW(c, "pPr"), isW(c, "rPr"), isW(c, "p"):
			// properties hold tab stops, not tabs
		default:
			writeText(sb, c)
		}
	}
}

func marker(id string) string {
	return "[^" + id + "]"
}

func readFootnotes(doc *xmlquery.Node) []models.FootnotePart {
	var parts []models.FootnotePart
	for _, fn := range xmlquery.Find(doc, "//w:footnote") {
		if fn.SelectAttr("w:type") != "" {
			continue
		}
		part := models.FootnotePart{ID: fn.SelectAttr("w:id")}
		for _, t := range xmlquery.Find(fn, ".//w:t") {
			part.Texts = append(part.Texts, t.InnerText())
		}
		parts = append(parts, part)
	}
	return parts
}
