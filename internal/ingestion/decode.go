// Package ingestion turns uploaded résumé files and job postings into plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Decoder extracts text from pdf, docx, doc and txt files held in memory.
// It satisfies parsing.Decoder.
type Decoder struct{}

// NewDecoder returns the production file decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

var _ parsing.Decoder = (*Decoder)(nil)

// Decode extracts the text of data according to the format hint (a file extension
// without the dot). Malformed input is reported as a *parsing.DecodeError.
func (d *Decoder) Decode(data []byte, format string) (text string, err error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))

	// Both third-party readers index into the file structure without bounds checks.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &parsing.DecodeError{Format: format, Cause: fmt.Errorf("malformed file: %v", r)}
		}
	}()

	switch format {
	case "pdf":
		text, err = decodePDF(data)
	case "docx", "doc":
		text, err = decodeDOCX(data)
	case "txt":
		text, err = decodeTXT(data)
	default:
		return "", &parsing.UnsupportedFormatError{Extension: format}
	}
	if err != nil {
		return "", &parsing.DecodeError{Format: format, Cause: err}
	}
	return text, nil
}

// decodePDF joins the text of every page, one output line per text row
func decodePDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		for _, row := range rows {
			for _, word := range row.Content {
				sb.WriteString(word.S)
			}
			sb.WriteString("\n")
		}
	}
	return CleanText(sb.String()), nil
}

// decodeDOCX reads word/document.xml and keeps one line per paragraph
func decodeDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", " ")
	content = strings.ReplaceAll(content, "<w:br/>", "\n")

	text := html.UnescapeString(strictPolicy.Sanitize(content))
	return CleanText(text), nil
}

// decodeTXT returns the file verbatim once it is known to be UTF-8
func decodeTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("text file is not valid UTF-8")
	}
	return string(data), nil
}
