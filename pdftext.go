// Package pdftext extracts readable text from PDF documents and rebuilds
// their line and paragraph structure from the positioned text fragments of
// each page.
//
// Basic usage:
//
//	text, err := pdftext.Default().ExtractText(data)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	doc, err := pdftext.Default().
//	    CombineTextItems(false).
//	    IncludeMetadata(false).
//	    ExtractDetailed(data)
//	for _, w := range doc.Warnings {
//	    log.Println("warning:", w)
//	}
//
// A page that cannot be extracted does not fail the document: its text is
// replaced by "[Error extracting text from page N]" and a Warning is
// recorded. Only validation failures and documents that cannot be opened at
// all are returned as errors.
//
// For lower-level access to page fragments, the reader package is also
// available.
package pdftext

import (
	"log/slog"

	"github.com/tsawler/pdftext/model"
	"github.com/tsawler/pdftext/reader"
)

// Warning describes a non-fatal problem absorbed during extraction.
type Warning = model.Warning

// FormatWarnings joins warnings into a single line for logging.
func FormatWarnings(warnings []Warning) string {
	return model.FormatWarnings(warnings)
}

// Option configures an Extractor at construction.
type Option func(*Extractor)

// WithLogger sets the logger used for absorbed failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithExtractOptions replaces the default extraction options.
func WithExtractOptions(opts ExtractOptions) Option {
	return func(e *Extractor) {
		e.options = opts.clone()
	}
}

// New returns an Extractor that opens documents with source.
//
// Example:
//
//	ext := pdftext.New(pdftext.ReaderSource(reader.Options{Password: pw}))
//	text, err := ext.ExtractText(data)
func New(source Source, opts ...Option) *Extractor {
	e := &Extractor{
		source:  source,
		options: DefaultOptions(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Default returns an Extractor backed by the reader package with default
// options.
//
// Example:
//
//	text, err := pdftext.Default().ExtractText(data)
func Default() *Extractor {
	return New(ReaderSource(reader.Options{}))
}
