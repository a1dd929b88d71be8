package testutils

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/footnotes.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footnotes+xml"/></Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footnotes" Target="footnotes.xml"/></Relationships>`

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

var markerPattern = regexp.MustCompile(`\[\^([^\[\]\s]+)\]`)

// BuildDOCX returns a minimal DOCX file with one paragraph per entry of
// paragraphs. Markers such as [^1] become footnote references, and
// footnotes holds the text of each referenced footnote by id.
func BuildDOCX(paragraphs []string, footnotes map[string]string) ([]byte, error) {
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p>")
		last := 0
		for _, loc := range markerPattern.FindAllStringSubmatchIndex(p, -1) {
			writeRun(&body, p[last:loc[0]])
			fmt.Fprintf(
				&body,
				`<w:r><w:rPr><w:rStyle w:val="FootnoteReference"/></w:rPr><w:footnoteReference w:id="%s"/></w:r>`,
				p[loc[2]:loc[3]],
			)
			last = loc[1]
		}
		writeRun(&body, p[last:])
		body.WriteString("</w:p>")
	}

	var notes strings.Builder
	for _, id := range sortedKeys(footnotes) {
		fmt.Fprintf(&notes, `<w:footnote w:id="%s"><w:p><w:r><w:footnoteRef/></w:r>`, id)
		writeRun(&notes, " "+footnotes[id])
		notes.WriteString("</w:p></w:footnote>")
	}

	parts := []struct{ name, content string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
			`<w:document xmlns:w="` + wordNS + `"><w:body>` + body.String() + `<w:sectPr/></w:body></w:document>`},
		{"word/footnotes.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
			`<w:footnotes xmlns:w="` + wordNS + `">` +
			`<w:footnote w:type="separator" w:id="-1"><w:p><w:r><w:separator/></w:r></w:p></w:footnote>` +
			notes.String() + `</w:footnotes>`},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(w, part.content); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadPart returns the content of a part of a zip package.
func ReadPart(data []byte, name string) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return "", fmt.Errorf("part %s not found", name)
}

func writeRun(sb *strings.Builder, text string) {
	if text == "" {
		return
	}
	sb.WriteString(`<w:r><w:t xml:space="preserve">`)
	_ = xml.EscapeText(sb, []byte(text))
	sb.WriteString(`</w:t></w:r>`)
}
