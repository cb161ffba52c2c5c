// Package pdftest builds small, valid PDF files in memory for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Line is a string shown at a position on a page.
type Line struct {
	X, Y float64
	Text string
}

// Page is the content of one page. Raw, when set, is used verbatim as the
// content stream instead of Lines.
type Page struct {
	Lines []Line
	Raw   string
}

// Info is the document information dictionary. Empty fields are omitted.
type Info struct {
	Title        string
	Author       string
	Subject      string
	CreationDate string
}

// Build returns a PDF with one page per element of pages, all set in
// 12pt Helvetica with fixed 500-unit glyph widths.
func Build(info *Info, pages ...Page) []byte {
	w := &writer{}
	w.buf.WriteString("%PDF-1.4\n")

	const (
		catalogID = 1
		pagesID   = 2
		fontID    = 3
		infoID    = 4
		firstPage = 5
	)

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+2*i)
	}

	w.object(catalogID, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesID))
	w.object(pagesID, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))

	widths := strings.TrimSpace(strings.Repeat("500 ", 126-32+1))
	w.object(fontID, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding "+
		"/FirstChar 32 /LastChar 126 /Widths ["+widths+"] >>")

	w.object(infoID, info.dict())

	for i, p := range pages {
		pageID := firstPage + 2*i
		contentID := pageID + 1
		w.object(pageID, fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", pagesID, fontID, contentID))

		stream := p.content()
		w.object(contentID, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	size := firstPage + 2*len(pages)
	xref := w.buf.Len()
	fmt.Fprintf(&w.buf, "xref\n0 %d\n", size)
	w.buf.WriteString("0000000000 65535 f \n")
	for id := 1; id < size; id++ {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", w.offsets[id])
	}
	fmt.Fprintf(&w.buf, "trailer\n<< /Size %d /Root %d 0 R /Info %d 0 R >>\n", size, catalogID, infoID)
	fmt.Fprintf(&w.buf, "startxref\n%d\n%%%%EOF\n", xref)

	return w.buf.Bytes()
}

type writer struct {
	buf     bytes.Buffer
	offsets map[int]int
}

func (w *writer) object(id int, body string) {
	if w.offsets == nil {
		w.offsets = make(map[int]int)
	}
	w.offsets[id] = w.buf.Len()
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nendobj\n", id, body)
}

func (p Page) content() string {
	if p.Raw != "" {
		return p.Raw
	}
	var sb strings.Builder
	for _, l := range p.Lines {
		fmt.Fprintf(&sb, "BT /F1 12 Tf %g %g Td (%s) Tj ET\n", l.X, l.Y, escape(l.Text))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (info *Info) dict() string {
	if info == nil {
		return "<< >>"
	}
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, fmt.Sprintf("/%s (%s)", key, escape(value)))
		}
	}
	add("Title", info.Title)
	add("Author", info.Author)
	add("Subject", info.Subject)
	add("CreationDate", info.CreationDate)
	return "<< " + strings.Join(parts, " ") + " >>"
}

var escaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

func escape(s string) string {
	return escaper.Replace(s)
}
