package model

import "fmt"

// Page is the reconstructed text of a single page.
type Page struct {
	Number         int    `json:"pageNumber"` // 1-indexed page number
	Text           string `json:"text"`
	CharacterCount int    `json:"characterCount"`

	// Failed is set when Text is the sentinel for a page that could not be
	// extracted.
	Failed bool `json:"failed,omitempty"`
}

// FailedPageText returns the placeholder text recorded for a page whose
// extraction failed.
func FailedPageText(number int) string {
	return fmt.Sprintf("[Error extracting text from page %d]", number)
}

// Marker returns the separator written before the page's text in the
// assembled document.
func Marker(number int) string {
	return fmt.Sprintf("\n\n--- Page %d ---\n\n", number)
}
