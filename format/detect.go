// Package format identifies document formats by file name, MIME type and
// content.
package format

import (
	"bytes"
	"mime"
	"path/filepath"
	"strings"
)

// Format represents a document format handled by pdftext, either as input
// (PDF) or as an export target.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// Text indicates plain UTF-8 text.
	Text
	// HTML indicates an HTML document.
	HTML
	// JSON indicates a JSON document.
	JSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case Text:
		return "Text"
	case HTML:
		return "HTML"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case Text:
		return ".txt"
	case HTML:
		return ".html"
	case JSON:
		return ".json"
	default:
		return ""
	}
}

// MIMEType returns the canonical MIME type for the format.
func (f Format) MIMEType() string {
	switch f {
	case PDF:
		return "application/pdf"
	case Text:
		return "text/plain; charset=utf-8"
	case HTML:
		return "text/html; charset=utf-8"
	case JSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".txt", ".text":
		return Text
	case ".html", ".htm":
		return HTML
	case ".json":
		return JSON
	default:
		return Unknown
	}
}

// Parse maps a format name as used in configuration ("text", "txt",
// "html", "json") to a Format.
func Parse(name string) Format {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pdf":
		return PDF
	case "text", "txt", "plain":
		return Text
	case "html", "htm":
		return HTML
	case "json":
		return JSON
	default:
		return Unknown
	}
}

// FromMIME maps a declared MIME type to a Format. Parameters such as
// charset are ignored and matching is case-insensitive.
func FromMIME(mimeType string) Format {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(mimeType))
	}

	switch mediaType {
	case "application/pdf", "application/x-pdf", "application/acrobat", "text/pdf":
		return PDF
	case "text/plain":
		return Text
	case "text/html", "application/xhtml+xml":
		return HTML
	case "application/json":
		return JSON
	default:
		return Unknown
	}
}

// IsPDF reports whether a declared MIME type denotes a PDF document.
func IsPDF(mimeType string) bool {
	return FromMIME(mimeType) == PDF
}

// pdfMagic is the header every PDF file starts with. Readers tolerate
// leading junk, so the header is searched for within the first kilobyte.
var pdfMagic = []byte("%PDF-")

const magicWindow = 1024

// DetectFromMagic checks file magic bytes to determine format.
// Only PDF is recognized; everything else is Unknown.
func DetectFromMagic(data []byte) Format {
	if len(data) > magicWindow {
		data = data[:magicWindow]
	}
	if bytes.Contains(data, pdfMagic) {
		return PDF
	}
	return Unknown
}
