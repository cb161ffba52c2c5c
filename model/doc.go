// Package model defines the values produced by text extraction.
//
// A [Document] holds the assembled text, optional [Metadata], one [Page]
// per page of the source and any [Warning]s recorded for problems that were
// absorbed rather than returned as errors.
//
// Page numbering is 1-based and contiguous: a page that could not be
// extracted still has an entry, carrying the text from [FailedPageText],
// so that len(Pages) always equals the page count of the source.
package model
