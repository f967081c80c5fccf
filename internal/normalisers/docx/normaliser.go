// Package docx decodes DOCX (and legacy DOC) CV uploads.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ErrNoDocumentXML indicates the archive lacks word/document.xml.
var ErrNoDocumentXML = errors.New("docx: word/document.xml not found")

// Decoder extracts paragraph text from DOCX archives.
//
// Legacy binary .doc files are routed here as well; they are not ZIP
// archives, so decoding fails and the caller reports an extraction failure.
type Decoder struct{}

// New creates a DOCX decoder.
func New() *Decoder {
	return &Decoder{}
}

// Extensions returns the extensions this decoder handles.
func (d *Decoder) Extensions() []string {
	return []string{"docx", "doc"}
}

// Decode returns the paragraph text of the document, in document order.
// Whitespace-only paragraphs are skipped; paragraphs are joined with "\n".
func (d *Decoder) Decode(_ context.Context, content []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", err
		}

		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		return parseDocumentXML(raw)
	}

	return "", ErrNoDocumentXML
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts paragraph text from the document XML.
func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", err
	}

	var paragraphs []string
	for _, para := range doc.Body.Paragraphs {
		var sb strings.Builder
		for _, r := range para.Runs {
			for _, t := range r.Text {
				sb.WriteString(t.Content)
			}
		}
		if text := sb.String(); strings.TrimSpace(text) != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
