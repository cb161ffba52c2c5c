package pdftext

import (
	"errors"
	"fmt"

	"github.com/tsawler/pdftext/reader"
	"github.com/tsawler/pdftext/validate"
)

// DocumentLoadError is returned when a document cannot be opened at all.
// It is the only extraction failure besides validation that rejects a call.
type DocumentLoadError struct {
	File string // empty when the caller passed raw bytes
	Err  error
}

func (e *DocumentLoadError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("failed to extract text from PDF: %v", e.Err)
	}
	return fmt.Sprintf("failed to extract text from PDF %q: %v", e.File, e.Err)
}

func (e *DocumentLoadError) Unwrap() error {
	return e.Err
}

// PageError is a failure to fetch or reconstruct one page. It never reaches
// callers directly; it is logged and recorded as a Warning.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// loadReasons maps reader failures to messages that are safe to show to
// end users.
var loadReasons = []struct {
	err    error
	reason string
}{
	{reader.ErrEncrypted, "the document is password protected"},
	{reader.ErrEmpty, "the file is empty"},
	{reader.ErrMalformed, "the file is not a readable PDF"},
}

// SafeMessage converts an extraction error into a message for end users.
// Validation errors are returned as their rule; load errors name the file
// and a coarse reason. Anything else is replaced by a generic message. Use
// (*Extractor).SafeMessage to also log the errors that get replaced.
func SafeMessage(err error) string {
	msg, _ := safeMessage(err)
	return msg
}

// SafeMessage is the package level SafeMessage that logs errors outside
// the validation and load taxonomy through the extractor's logger before
// replacing them.
func (e *Extractor) SafeMessage(err error) string {
	msg, known := safeMessage(err)
	if !known {
		e.logger.Error("extraction error (sanitized for client)", "error", err)
	}
	return msg
}

// safeMessage reports whether err was one of the known kinds alongside
// the message.
func safeMessage(err error) (string, bool) {
	if err == nil {
		return "", true
	}

	if reason := validate.Reason(err); reason != "" {
		return reason, true
	}

	var le *DocumentLoadError
	if errors.As(err, &le) {
		reason := "the document could not be opened"
		for _, r := range loadReasons {
			if errors.Is(le.Err, r.err) {
				reason = r.reason
				break
			}
		}
		if le.File == "" {
			return "failed to extract text from PDF: " + reason, true
		}
		return fmt.Sprintf("failed to extract text from PDF %q: %s", le.File, reason), true
	}

	return "failed to extract text from PDF", false
}
