package pdftext

import (
	"github.com/tsawler/pdftext/model"
	"github.com/tsawler/pdftext/reader"
	"github.com/tsawler/pdftext/text"
)

// Source opens PDF bytes into a Document. Each call to Open must return an
// independent handle; the Extractor may hold two at once, one for pages
// and one for metadata.
type Source interface {
	Open(data []byte) (Document, error)
}

// Document is an opened PDF as seen by the Extractor.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Page returns the fragments of page n (1-based) in stream order.
	Page(n int) ([]text.TextFragment, error)

	// Metadata reads the document information. PageCount is always set.
	Metadata() (model.Metadata, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(data []byte) (Document, error)

// Open calls f(data).
func (f SourceFunc) Open(data []byte) (Document, error) {
	return f(data)
}

// ReaderSource returns a Source backed by the reader package.
func ReaderSource(opts reader.Options) Source {
	return readerSource{opts: opts}
}

type readerSource struct {
	opts reader.Options
}

func (s readerSource) Open(data []byte) (Document, error) {
	r, err := reader.OpenWithOptions(data, s.opts)
	if err != nil {
		// A nil *reader.Reader must not become a non-nil Document.
		return nil, err
	}
	return r, nil
}
