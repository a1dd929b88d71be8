package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notaspie/notaspie/pkg/models"
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/footnotes.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footnotes+xml"/></Types>`

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footnotes" Target="footnotes.xml"/></Relationships>`

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:pPr><w:pStyle w:val="Normal"/><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>` +
	`<w:r><w:t xml:space="preserve">He was happy and he </w:t></w:r>` +
	`<w:r><w:rPr><w:b/></w:rPr><w:t>dont</w:t></w:r>` +
	`<w:r><w:t xml:space="preserve"> know</w:t></w:r>` +
	`<w:r><w:rPr><w:rStyle w:val="FootnoteReference"/></w:rPr><w:footnoteReference w:id="1"/></w:r>` +
	`<w:r><w:t>.</w:t></w:r></w:p>` +
	`<w:p/>` +
	`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Cell</w:t><w:tab/><w:t>text</w:t><w:br/><w:t>more</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
	`<w:p><w:r><w:rPr><w:i/></w:rPr><w:t>Untouched italic.</w:t></w:r></w:p>` +
	`<w:sectPr/></w:body></w:document>`

const footnotesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:footnotes xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:footnote w:type="separator" w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:footnote>` +
	`<w:footnote w:type="continuationSeparator" w:id="0"><w:p><w:r><w:continuationSeparator/></w:r></w:p></w:footnote>` +
	`<w:footnote w:id="1"><w:p><w:r><w:footnoteRef/></w:r><w:r><w:t xml:space="preserve"> A note </w:t></w:r><w:r><w:t>he dont read.</w:t></w:r></w:p></w:footnote>` +
	`</w:footnotes>`

func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
		"word/footnotes.xml",
	} {
		content, ok := parts[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func fixtureParts() map[string]string {
	return map[string]string{
		"[Content_Types].xml":          contentTypes,
		"_rels/.rels":                  rootRels,
		"word/document.xml":            documentXML,
		"word/_rels/document.xml.rels": documentRels,
		"word/footnotes.xml":           footnotesXML,
	}
}

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestOpen(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"He was happy and he dont know[^1].",
		"",
		"Cell\ttext\vmore",
		"Untouched italic.",
	}, doc.Paragraphs())

	assert.Equal(t, []models.FootnotePart{
		{ID: "1", Texts: []string{" A note ", "he dont read."}},
	}, doc.FootnoteParts())
}

func TestOpenWithoutRelationships(t *testing.T) {
	parts := fixtureParts()
	delete(parts, "_rels/.rels")
	delete(parts, "word/_rels/document.xml.rels")

	doc, err := Open(buildDocx(t, parts))
	require.NoError(t, err)
	assert.Len(t, doc.Paragraphs(), 4)
	assert.Empty(t, doc.FootnoteParts())
}

func TestOpenInvalid(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
	}{
		{
			name: "not a zip",
			data: func(t *testing.T) []byte { return []byte("plain text") },
		},
		{
			name: "missing main part",
			data: func(t *testing.T) []byte {
				parts := fixtureParts()
				delete(parts, "word/document.xml")
				return buildDocx(t, parts)
			},
		},
		{
			name: "broken xml",
			data: func(t *testing.T) []byte {
				parts := fixtureParts()
				parts["word/document.xml"] = "<w:document><<</w:document>"
				return buildDocx(t, parts)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.data(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrInput)
		})
	}
}

func TestReplaceParagraphs(t *testing.T) {
	data := buildDocx(t, fixtureParts())
	doc, err := Open(data)
	require.NoError(t, err)

	texts := doc.Paragraphs()
	texts[0] = "He was happy and he doesn't know[^1]."
	texts[2] = "Cell\ttext\vmore!"
	require.NoError(t, doc.ReplaceParagraphs(texts))
	assert.Equal(t, texts, doc.Paragraphs())

	var out bytes.Buffer
	require.NoError(t, doc.Save(&out))

	reopened, err := Open(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, texts, reopened.Paragraphs())
	assert.Equal(t, doc.FootnoteParts(), reopened.FootnoteParts())

	// every part but the main one is byte-identical
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/footnotes.xml"} {
		assert.Equal(t, readPart(t, data, name), readPart(t, out.Bytes(), name), name)
	}

	main := readPart(t, out.Bytes(), "word/document.xml")
	assert.Contains(t, main, `<w:footnoteReference w:id="1"`)
	assert.Contains(t, main, `<w:rStyle w:val="FootnoteReference"`)
	assert.Contains(t, main, `<w:pStyle w:val="Normal"`)
	assert.Contains(t, main, `xml:space="preserve"`)
	// run formatting of rewritten paragraphs is gone
	assert.NotContains(t, main, "<w:b>")
	assert.NotContains(t, main, "<w:b/>")
	assert.Equal(t, 1, strings.Count(main, "<w:footnoteReference"))
}

func TestReplaceParagraphsRewriteUnchanged(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()))
	require.NoError(t, err)
	doc.RewriteUnchanged = false

	texts := doc.Paragraphs()
	texts[0] = strings.Replace(texts[0], "dont", "doesn't", 1)
	require.NoError(t, doc.ReplaceParagraphs(texts))

	var out bytes.Buffer
	require.NoError(t, doc.Save(&out))
	main := readPart(t, out.Bytes(), "word/document.xml")
	assert.Contains(t, main, "<w:i")
	assert.Contains(t, main, "Untouched italic.")
}

func TestReplaceParagraphsNoChangeKeepsMainPart(t *testing.T) {
	data := buildDocx(t, fixtureParts())
	doc, err := Open(data)
	require.NoError(t, err)
	doc.RewriteUnchanged = false

	require.NoError(t, doc.ReplaceParagraphs(doc.Paragraphs()))

	var out bytes.Buffer
	require.NoError(t, doc.Save(&out))
	assert.Equal(t, documentXML, readPart(t, out.Bytes(), "word/document.xml"))
}

func TestReplaceParagraphsLostMarker(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()))
	require.NoError(t, err)

	texts := doc.Paragraphs()
	texts[0] = "He was happy and he doesn't know."
	require.NoError(t, doc.ReplaceParagraphs(texts))
	assert.Equal(t, "He was happy and he doesn't know.[^1]", doc.Paragraphs()[0])
}

func TestReplaceParagraphsCountMismatch(t *testing.T) {
	doc, err := Open(buildDocx(t, fixtureParts()))
	require.NoError(t, err)

	err = doc.ReplaceParagraphs([]string{"only one"})
	assert.ErrorIs(t, err, models.ErrInput)
}
