package pdftext

import "github.com/tsawler/pdftext/text"

// ExtractOptions holds configuration for text extraction. Options are
// copied into each call and cannot change while it runs.
type ExtractOptions struct {
	// PreserveFormatting inserts line breaks and gap spaces from the
	// positions of text fragments.
	PreserveFormatting bool `json:"preserveFormatting" yaml:"preserve_formatting"`

	// IncludeMetadata reads the document information dictionary.
	IncludeMetadata bool `json:"includeMetadata" yaml:"include_metadata"`

	// CombineTextItems inserts a space between adjacent fragments on the
	// same line.
	CombineTextItems bool `json:"combineTextItems" yaml:"combine_text_items"`
}

// DefaultOptions returns the default extraction options: everything on.
func DefaultOptions() ExtractOptions {
	return ExtractOptions{
		PreserveFormatting: true,
		IncludeMetadata:    true,
		CombineTextItems:   true,
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		PreserveFormatting: o.PreserveFormatting,
		IncludeMetadata:    o.IncludeMetadata,
		CombineTextItems:   o.CombineTextItems,
	}
}

// reconstruct returns the subset of options used per page.
func (o ExtractOptions) reconstruct() text.Options {
	return text.Options{
		PreserveFormatting: o.PreserveFormatting,
		CombineTextItems:   o.CombineTextItems,
	}
}
