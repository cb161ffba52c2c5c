// Package reader is the positioned-fragment source used by pdftext: it
// opens PDF bytes and yields, page by page, the text fragments of the page
// content stream with their positions.
//
// Parsing is delegated to github.com/ledongthuc/pdf, which reports one
// entry per glyph. By default glyphs are merged into show-text runs with
// text.MergeGlyphs; set Options.KeepGlyphs to receive them unmerged.
//
// # Opening Documents
//
//	r, err := reader.Open(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for n := 1; n <= r.PageCount(); n++ {
//	    fragments, err := r.Page(n)
//	    ...
//	}
//
// Encrypted documents are tried with an empty user password, or with
// Options.Password when set; failure is reported as [ErrEncrypted].
//
// # Failure Handling
//
// The underlying library panics on some malformed streams. Open, Page and
// Metadata recover those panics and return them as errors wrapping
// [ErrMalformed], so a bad page never takes down the caller.
//
// # Document Information
//
// Metadata reads the trailer's Info dictionary: title, author, subject,
// keywords, creator, producer and the creation and modification dates
// (see [ParseDate]). Strings are returned in Unicode NFC form.
package reader
