package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Document is the result of extracting a whole PDF.
type Document struct {
	// Text is the full document text: pages joined by page markers,
	// normalized and trimmed.
	Text     string    `json:"text"`
	Metadata *Metadata `json:"metadata,omitempty"`
	Pages    []Page    `json:"pages"`

	// Warnings records non-fatal problems (failed pages, unreadable
	// metadata) that were absorbed during extraction.
	Warnings []Warning `json:"warnings,omitempty"`
}

// Metadata contains document-level information
type Metadata struct {
	Title        string    `json:"title,omitempty"`
	Author       string    `json:"author,omitempty"`
	Subject      string    `json:"subject,omitempty"`
	Keywords     string    `json:"keywords,omitempty"`
	Creator      string    `json:"creator,omitempty"`
	Producer     string    `json:"producer,omitempty"`
	CreationDate time.Time `json:"creationDate,omitzero"`
	ModDate      time.Time `json:"modDate,omitzero"`
	PageCount    int       `json:"pageCount"`
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Pages: make([]Page, 0),
	}
}

// AddPage appends a page. Its number is its 1-based position and its
// character count is derived from its text.
func (d *Document) AddPage(text string) {
	d.Pages = append(d.Pages, Page{
		Number:         len(d.Pages) + 1,
		Text:           text,
		CharacterCount: utf8.RuneCountInString(text),
	})
}

// AddFailedPage appends a page whose extraction failed. The sentinel text
// keeps page numbering intact; the character count is zero.
func (d *Document) AddFailedPage() {
	number := len(d.Pages) + 1
	d.Pages = append(d.Pages, Page{
		Number: number,
		Text:   FailedPageText(number),
		Failed: true,
	})
}

// Warn records a non-fatal problem.
func (d *Document) Warn(w Warning) {
	d.Warnings = append(d.Warnings, w)
}

// GetPage returns a page by number (1-indexed)
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return &d.Pages[number-1]
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// FailedPages returns the numbers of pages that carry sentinel text.
func (d *Document) FailedPages() []int {
	var failed []int
	for _, p := range d.Pages {
		if p.Failed {
			failed = append(failed, p.Number)
		}
	}
	return failed
}

// Stats returns simple counts over the document text.
func (d *Document) Stats() Stats {
	return Stats{
		Pages:      len(d.Pages),
		Characters: utf8.RuneCountInString(d.Text),
		Words:      len(strings.Fields(d.Text)),
		Lines:      countLines(d.Text),
	}
}

// Stats holds counts shown alongside extracted text.
type Stats struct {
	Pages      int `json:"pages"`
	Characters int `json:"characters"`
	Words      int `json:"words"`
	Lines      int `json:"lines"`
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
