package reader

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pdftext/model"
	"github.com/tsawler/pdftext/text"
)

var (
	// ErrEmpty is returned when there are no bytes to open.
	ErrEmpty = errors.New("no data")
	// ErrEncrypted is returned for encrypted documents that cannot be
	// opened with the configured password.
	ErrEncrypted = errors.New("document is encrypted")
	// ErrMalformed is returned when the PDF library gives up on the bytes.
	ErrMalformed = errors.New("malformed PDF")
	// ErrPageRange is returned for page numbers outside 1..PageCount.
	ErrPageRange = errors.New("page out of range")
)

// Options configures how documents are opened. A zero Options is ready to
// use. Options are fixed once a Reader has been opened.
type Options struct {
	// Password is tried when the document is encrypted.
	Password string

	// KeepGlyphs returns one fragment per glyph instead of merging glyphs
	// into show-text runs.
	KeepGlyphs bool
}

// Reader gives page-by-page access to the positioned text of a PDF held
// in memory.
type Reader struct {
	pdf        *pdf.Reader
	keepGlyphs bool
}

// Open parses data as a PDF with default options.
func Open(data []byte) (*Reader, error) {
	return OpenWithOptions(data, Options{})
}

// OpenWithOptions parses data as a PDF.
func OpenWithOptions(data []byte, opts Options) (r *Reader, err error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	// The PDF library panics on some malformed input.
	defer func() {
		if rec := recover(); rec != nil {
			r = nil
			err = fmt.Errorf("%w: %v", ErrMalformed, rec)
		}
	}()

	size := int64(len(data))
	var pr *pdf.Reader
	if opts.Password != "" {
		pr, err = pdf.NewReaderEncrypted(bytes.NewReader(data), size, passwordOnce(opts.Password))
	} else {
		pr, err = pdf.NewReader(bytes.NewReader(data), size)
	}
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, ErrEncrypted
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return &Reader{
		pdf:        pr,
		keepGlyphs: opts.KeepGlyphs,
	}, nil
}

// passwordOnce yields the password on the first call and "" afterwards,
// which tells the PDF library to stop retrying.
func passwordOnce(password string) func() string {
	used := false
	return func() string {
		if used {
			return ""
		}
		used = true
		return password
	}
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// Page returns the text fragments of page n (1-based) in content stream
// order. Fragments that fail boundary validation are dropped. Text drawn
// under a mirrored or rotated matrix is reported with a positive width
// spanning the same interval.
func (r *Reader) Page(n int) (fragments []text.TextFragment, err error) {
	if n < 1 || n > r.PageCount() {
		return nil, fmt.Errorf("%w: %d", ErrPageRange, n)
	}

	defer func() {
		if rec := recover(); rec != nil {
			fragments = nil
			err = fmt.Errorf("page %d: %w: %v", n, ErrMalformed, rec)
		}
	}()

	page := r.pdf.Page(n)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d: %w: missing page object", n, ErrMalformed)
	}
	if page.V.Key("Contents").IsNull() {
		return nil, nil
	}

	content := page.Content()
	glyphs := make([]text.TextFragment, 0, len(content.Text))
	for _, t := range content.Text {
		f := text.TextFragment{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			Height:   t.FontSize,
			FontName: t.Font,
			FontSize: t.FontSize,
		}
		if !f.Valid() {
			continue
		}
		glyphs = append(glyphs, f)
	}

	if !r.keepGlyphs {
		glyphs = text.MergeGlyphs(glyphs)
	}
	for i := range glyphs {
		glyphs[i] = glyphs[i].Forward()
	}
	return glyphs, nil
}

// Metadata reads the document information dictionary. PageCount is always
// set; other fields are empty when the document does not provide them.
func (r *Reader) Metadata() (meta model.Metadata, err error) {
	meta.PageCount = r.PageCount()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read info dictionary: %w: %v", ErrMalformed, rec)
		}
	}()

	info := r.pdf.Trailer().Key("Info")
	if info.IsNull() {
		return meta, nil
	}

	meta.Title = infoString(info, "Title")
	meta.Author = infoString(info, "Author")
	meta.Subject = infoString(info, "Subject")
	meta.Keywords = infoString(info, "Keywords")
	meta.Creator = infoString(info, "Creator")
	meta.Producer = infoString(info, "Producer")

	if s := infoString(info, "CreationDate"); s != "" {
		if t, err := ParseDate(s); err == nil {
			meta.CreationDate = t
		}
	}
	if s := infoString(info, "ModDate"); s != "" {
		if t, err := ParseDate(s); err == nil {
			meta.ModDate = t
		}
	}

	return meta, nil
}

// infoString returns a text string from the info dictionary in NFC form.
// Producers on some platforms write decomposed accents.
func infoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(norm.NFC.String(v.Text()))
}
