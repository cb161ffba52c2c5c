package pdftext

import (
	"log/slog"

	"github.com/tsawler/pdftext/model"
)

// Extractor provides a fluent interface for extracting text from PDFs.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining. The Extractor
// itself holds no per-document state.
type Extractor struct {
	source  Source
	options ExtractOptions
	logger  *slog.Logger
}

// clone creates a shallow copy of the Extractor with a copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		source:  e.source,
		options: e.options.clone(),
		logger:  e.logger,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// PreserveFormatting turns positional line breaks and gap spaces on or off.
//
// Example:
//
//	text, err := pdftext.Default().PreserveFormatting(false).ExtractText(data)
func (e *Extractor) PreserveFormatting(on bool) *Extractor {
	newExt := e.clone()
	newExt.options.PreserveFormatting = on
	return newExt
}

// IncludeMetadata turns reading of the document information dictionary on
// or off. It only affects ExtractDetailed and the batch forms.
func (e *Extractor) IncludeMetadata(on bool) *Extractor {
	newExt := e.clone()
	newExt.options.IncludeMetadata = on
	return newExt
}

// CombineTextItems turns the space inserted between adjacent fragments on
// the same line on or off.
//
// Example:
//
//	text, err := pdftext.Default().CombineTextItems(false).ExtractText(data)
func (e *Extractor) CombineTextItems(on bool) *Extractor {
	newExt := e.clone()
	newExt.options.CombineTextItems = on
	return newExt
}

// WithOptions replaces all extraction options at once.
func (e *Extractor) WithOptions(opts ExtractOptions) *Extractor {
	newExt := e.clone()
	newExt.options = opts.clone()
	return newExt
}

// WithLogger sets the logger used for absorbed failures. A nil logger is
// ignored.
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	if logger != nil {
		newExt.logger = logger
	}
	return newExt
}

// Options returns a copy of the current extraction options.
func (e *Extractor) Options() ExtractOptions {
	return e.options.clone()
}

// ============================================================================
// Terminal Operations
// ============================================================================

// ExtractText extracts the full text of a PDF held in memory. Page
// failures are absorbed; an error is returned only when the document
// cannot be opened. Metadata is never read.
//
// Example:
//
//	text, err := pdftext.Default().ExtractText(data)
func (e *Extractor) ExtractText(data []byte) (string, error) {
	opts := e.options.clone()
	opts.IncludeMetadata = false

	doc, err := e.run("", data, opts, nil)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// ExtractDetailed extracts the full text, per-page text and, when
// IncludeMetadata is set, the document metadata. The returned Document
// always has one Page per page of the PDF; pages that failed carry
// sentinel text and a matching entry in Warnings.
//
// Example:
//
//	doc, err := pdftext.Default().ExtractDetailed(data)
//	if err != nil {
//	    // handle error
//	}
//	for _, p := range doc.Pages {
//	    fmt.Printf("page %d: %d characters\n", p.Number, p.CharacterCount)
//	}
func (e *Extractor) ExtractDetailed(data []byte) (*model.Document, error) {
	return e.run("", data, e.options.clone(), nil)
}
