// Package export renders extracted documents as plain text, HTML or JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/pdftext/format"
	"github.com/tsawler/pdftext/model"
)

// Write renders doc in format f.
func Write(w io.Writer, f format.Format, doc *model.Document) error {
	switch f {
	case format.Text:
		return Text(w, doc)
	case format.HTML:
		return HTML(w, doc)
	case format.JSON:
		return JSON(w, doc)
	default:
		return fmt.Errorf("unsupported export format: %s", f)
	}
}

// Text writes the full document text followed by a newline.
func Text(w io.Writer, doc *model.Document) error {
	if doc.Text == "" {
		return nil
	}
	_, err := io.WriteString(w, doc.Text+"\n")
	return err
}

// jsonDocument is the JSON shape: the document plus its statistics.
type jsonDocument struct {
	*model.Document
	Stats model.Stats `json:"stats"`
}

// JSON writes the document, including pages, metadata, warnings and
// statistics, as indented JSON.
func JSON(w io.Writer, doc *model.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(jsonDocument{Document: doc, Stats: doc.Stats()})
}
