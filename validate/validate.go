// Package validate implements the pre-flight checks run on a candidate file
// before any parsing is attempted.
package validate

import (
	"errors"

	"github.com/tsawler/pdftext/format"
)

const (
	// MaxFileSize is the largest accepted file (50 MiB).
	MaxFileSize = 50 * 1024 * 1024

	// MaxBatchFiles is the largest number of files accepted in one batch.
	MaxBatchFiles = 10
)

var (
	// ErrNoFile is returned when no file was supplied at all.
	ErrNoFile = errors.New("No file provided")
	// ErrNotPDF is returned when the declared type is not application/pdf.
	ErrNotPDF = errors.New("File must be a PDF document")
	// ErrTooLarge is returned for files over MaxFileSize.
	ErrTooLarge = errors.New("File size must be less than 50MB")
	// ErrEmpty is returned for files with no bytes.
	ErrEmpty = errors.New("File is empty")
	// ErrTooManyFiles is returned for batches over MaxBatchFiles.
	ErrTooManyFiles = errors.New("Maximum 10 files allowed")
)

// FileInfo describes a candidate file: its name, declared MIME type and
// size in bytes.
type FileInfo struct {
	Name string
	Type string
	Size int64
}

// Error is a rejected file. Its message is exactly the violated rule, so it
// can be shown to users as is.
type Error struct {
	File string // may be empty
	Err  error  // one of the Err* sentinels
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// File checks a candidate file. The rules run in order and the first one
// that fails is reported: the file must exist, be declared as a PDF, be at
// most MaxFileSize bytes and not be empty.
func File(f *FileInfo) error {
	if f == nil {
		return &Error{Err: ErrNoFile}
	}
	if !format.IsPDF(f.Type) {
		return &Error{File: f.Name, Err: ErrNotPDF}
	}
	if f.Size > MaxFileSize {
		return &Error{File: f.Name, Err: ErrTooLarge}
	}
	if f.Size <= 0 {
		return &Error{File: f.Name, Err: ErrEmpty}
	}
	return nil
}

// Batch checks the number of files submitted together. It runs before any
// per-file validation.
func Batch(count int) error {
	if count > MaxBatchFiles {
		return &Error{Err: ErrTooManyFiles}
	}
	return nil
}

// Reason returns the user-facing reason for a validation error, or "" if
// err is not one.
func Reason(err error) string {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return ""
}
