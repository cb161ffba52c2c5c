package pdftext

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"
	"testing"
	"testing/iotest"

	"github.com/tsawler/pdftext/model"
	"github.com/tsawler/pdftext/text"
	"github.com/tsawler/pdftext/validate"
)

// fakeDoc is an in-memory Document. It is only read once built, so the
// page loop and the metadata goroutine can share it.
type fakeDoc struct {
	pages     [][]text.TextFragment
	pageErr   map[int]error
	panicPage int
	meta      model.Metadata
	metaErr   error
}

func (d *fakeDoc) PageCount() int { return len(d.pages) }

func (d *fakeDoc) Page(n int) ([]text.TextFragment, error) {
	if n == d.panicPage {
		panic("corrupt content stream")
	}
	if err := d.pageErr[n]; err != nil {
		return nil, err
	}
	return d.pages[n-1], nil
}

func (d *fakeDoc) Metadata() (model.Metadata, error) {
	return d.meta, d.metaErr
}

// countingSource hands out the same fakeDoc and counts Open calls.
type countingSource struct {
	doc   *fakeDoc
	opens atomic.Int32
}

func (s *countingSource) Open([]byte) (Document, error) {
	s.opens.Add(1)
	return s.doc, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestExtractor(d *fakeDoc) *Extractor {
	return New(&countingSource{doc: d}, WithLogger(quietLogger()))
}

func frag(s string, x, y, width float64) text.TextFragment {
	return text.TextFragment{Text: s, X: x, Y: y, Width: width, Height: 12, FontSize: 12}
}

func page(lines ...string) []text.TextFragment {
	frags := make([]text.TextFragment, len(lines))
	for i, l := range lines {
		frags[i] = frag(l, 72, 720-float64(i)*14, float64(len(l))*6)
	}
	return frags
}

var pdfBytes = []byte("%PDF-1.4 fake")

func TestExtractTextScenarios(t *testing.T) {
	tests := []struct {
		name  string
		pages [][]text.TextFragment
		want  string
	}{
		{
			name: "combine rule on one line",
			pages: [][]text.TextFragment{{
				frag("Hello", 0, 100, 10),
				frag("World", 11, 100, 10),
			}},
			want: "Hello World",
		},
		{
			name: "vertical delta breaks the line",
			pages: [][]text.TextFragment{{
				frag("Line1", 0, 100, 30),
				frag("Line2", 0, 130, 30),
			}},
			want: "Line1\nLine2",
		},
		{
			name:  "two pages get a marker",
			pages: [][]text.TextFragment{page("one"), page("two")},
			want:  "one\n\n--- Page 2 ---\n\ntwo",
		},
		{
			name:  "blank page gets no marker",
			pages: [][]text.TextFragment{page("A"), nil, page("C")},
			want:  "A\n\n--- Page 3 ---\n\nC",
		},
		{
			name:  "blank first page still marks page 2",
			pages: [][]text.TextFragment{nil, page("B")},
			want:  "--- Page 2 ---\n\nB",
		},
		{
			name:  "no pages",
			pages: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestExtractor(&fakeDoc{pages: tt.pages}).ExtractText(pdfBytes)
			if err != nil {
				t.Fatalf("ExtractText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPartialFailure(t *testing.T) {
	d := &fakeDoc{
		pages:   [][]text.TextFragment{page("Page one"), page("Page two"), page("Page three")},
		pageErr: map[int]error{2: errors.New("fetch failed")},
	}

	doc, err := newTestExtractor(d).IncludeMetadata(false).ExtractDetailed(pdfBytes)
	if err != nil {
		t.Fatalf("ExtractDetailed() error = %v", err)
	}

	if len(doc.Pages) != 3 {
		t.Fatalf("len(Pages) = %d, want 3", len(doc.Pages))
	}

	failed := doc.Pages[1]
	if failed.Text != "[Error extracting text from page 2]" {
		t.Errorf("Pages[1].Text = %q", failed.Text)
	}
	if failed.CharacterCount != 0 {
		t.Errorf("Pages[1].CharacterCount = %d, want 0", failed.CharacterCount)
	}
	if !failed.Failed {
		t.Error("Pages[1].Failed = false, want true")
	}

	if doc.Pages[0].Text != "Page one" || doc.Pages[2].Text != "Page three" {
		t.Errorf("surviving pages = %q, %q", doc.Pages[0].Text, doc.Pages[2].Text)
	}
	if doc.Pages[0].CharacterCount != 8 {
		t.Errorf("Pages[0].CharacterCount = %d, want 8", doc.Pages[0].CharacterCount)
	}

	want := "Page one\n\n--- Page 3 ---\n\nPage three"
	if doc.Text != want {
		t.Errorf("Text = %q, want %q", doc.Text, want)
	}

	if len(doc.Warnings) != 1 {
		t.Fatalf("len(Warnings) = %d, want 1", len(doc.Warnings))
	}
	w := doc.Warnings[0]
	if w.Page != 2 || w.Stage != model.StagePage || w.Message != "fetch failed" {
		t.Errorf("Warning = %+v", w)
	}
}

func TestPanickingPageIsContained(t *testing.T) {
	d := &fakeDoc{
		pages:     [][]text.TextFragment{page("first"), page("second")},
		panicPage: 1,
	}

	doc, err := newTestExtractor(d).ExtractDetailed(pdfBytes)
	if err != nil {
		t.Fatalf("ExtractDetailed() error = %v", err)
	}

	if got := doc.FailedPages(); len(got) != 1 || got[0] != 1 {
		t.Errorf("FailedPages() = %v, want [1]", got)
	}
	if doc.Text != "--- Page 2 ---\n\nsecond" {
		t.Errorf("Text = %q", doc.Text)
	}
	if !strings.Contains(doc.Warnings[0].Message, "corrupt content stream") {
		t.Errorf("Warning message = %q", doc.Warnings[0].Message)
	}
}

func TestPageCountInvariant(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7} {
		t.Run(fmt.Sprintf("%d pages", n), func(t *testing.T) {
			d := &fakeDoc{pageErr: map[int]error{}}
			for i := 1; i <= n; i++ {
				d.pages = append(d.pages, page(fmt.Sprintf("text %d", i)))
				if i%2 == 0 {
					d.pageErr[i] = errors.New("bad page")
				}
			}

			doc, err := newTestExtractor(d).ExtractDetailed(pdfBytes)
			if err != nil {
				t.Fatalf("ExtractDetailed() error = %v", err)
			}
			if len(doc.Pages) != n {
				t.Errorf("len(Pages) = %d, want %d", len(doc.Pages), n)
			}
			for i, p := range doc.Pages {
				if p.Number != i+1 {
					t.Errorf("Pages[%d].Number = %d", i, p.Number)
				}
			}
			if doc.Metadata == nil || doc.Metadata.PageCount != n {
				t.Errorf("Metadata = %+v, want PageCount %d", doc.Metadata, n)
			}
		})
	}
}

func TestMetadata(t *testing.T) {
	d := &fakeDoc{
		pages: [][]text.TextFragment{page("x"), page("y")},
		meta:  model.Metadata{Title: "Report", Author: "Ana", PageCount: 99},
	}
	src := &countingSource{doc: d}
	ext := New(src, WithLogger(quietLogger()))

	doc, err := ext.ExtractDetailed(pdfBytes)
	if err != nil {
		t.Fatalf("ExtractDetailed() error = %v", err)
	}
	if doc.Metadata == nil {
		t.Fatal("Metadata = nil")
	}
	if doc.Metadata.Title != "Report" || doc.Metadata.Author != "Ana" {
		t.Errorf("Metadata = %+v", doc.Metadata)
	}
	if doc.Metadata.PageCount != 2 {
		t.Errorf("PageCount = %d, want 2", doc.Metadata.PageCount)
	}
	if got := src.opens.Load(); got != 2 {
		t.Errorf("source opened %d times, want 2 (pages and metadata)", got)
	}
}

func TestMetadataFailureDegrades(t *testing.T) {
	d := &fakeDoc{
		pages:   [][]text.TextFragment{page("only page")},
		meta:    model.Metadata{Title: "ignored"},
		metaErr: errors.New("broken info dictionary"),
	}

	doc, err := newTestExtractor(d).ExtractDetailed(pdfBytes)
	if err != nil {
		t.Fatalf("ExtractDetailed() error = %v", err)
	}

	want := model.Metadata{PageCount: 1}
	if doc.Metadata == nil || *doc.Metadata != want {
		t.Errorf("Metadata = %+v, want %+v", doc.Metadata, want)
	}
	if doc.Text != "only page" {
		t.Errorf("Text = %q", doc.Text)
	}
	if len(doc.Warnings) != 1 || doc.Warnings[0].Stage != model.StageMetadata {
		t.Errorf("Warnings = %v", doc.Warnings)
	}
}

func TestMetadataOff(t *testing.T) {
	d := &fakeDoc{pages: [][]text.TextFragment{page("x")}}
	src := &countingSource{doc: d}

	doc, err := New(src, WithLogger(quietLogger())).IncludeMetadata(false).ExtractDetailed(pdfBytes)
	if err != nil {
		t.Fatalf("ExtractDetailed() error = %v", err)
	}
	if doc.Metadata != nil {
		t.Errorf("Metadata = %+v, want nil", doc.Metadata)
	}
	if got := src.opens.Load(); got != 1 {
		t.Errorf("source opened %d times, want 1", got)
	}
}

func TestExtractTextSkipsMetadata(t *testing.T) {
	src := &countingSource{doc: &fakeDoc{pages: [][]text.TextFragment{page("x")}}}

	if _, err := New(src, WithLogger(quietLogger())).ExtractText(pdfBytes); err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if got := src.opens.Load(); got != 1 {
		t.Errorf("source opened %d times, want 1", got)
	}
}

func TestLoadErrors(t *testing.T) {
	cause := errors.New("xref table not found")

	tests := []struct {
		name   string
		source Source
		want   error
	}{
		{
			name:   "source error",
			source: SourceFunc(func([]byte) (Document, error) { return nil, cause }),
			want:   cause,
		},
		{
			name:   "nil document",
			source: SourceFunc(func([]byte) (Document, error) { return nil, nil }),
			want:   errNilDocument,
		},
		{
			name:   "panic",
			source: SourceFunc(func([]byte) (Document, error) { panic("bad trailer") }),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.source, WithLogger(quietLogger())).ExtractText(pdfBytes)

			var le *DocumentLoadError
			if !errors.As(err, &le) {
				t.Fatalf("error = %v, want *DocumentLoadError", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.want)
			}
		})
	}
}

func TestDocumentLoadErrorMessage(t *testing.T) {
	err := &DocumentLoadError{File: "scan.pdf", Err: errors.New("boom")}
	want := `failed to extract text from PDF "scan.pdf": boom`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	err = &DocumentLoadError{Err: errors.New("boom")}
	want = "failed to extract text from PDF: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestOptionsAreCopied(t *testing.T) {
	base := newTestExtractor(&fakeDoc{})
	changed := base.CombineTextItems(false).PreserveFormatting(false)

	if !base.Options().CombineTextItems || !base.Options().PreserveFormatting {
		t.Error("fluent setter modified the original Extractor")
	}
	if changed.Options().CombineTextItems || changed.Options().PreserveFormatting {
		t.Error("fluent setter did not apply")
	}

	if DefaultOptions() != (ExtractOptions{PreserveFormatting: true, IncludeMetadata: true, CombineTextItems: true}) {
		t.Errorf("DefaultOptions() = %+v", DefaultOptions())
	}
}

func TestCombineTextItemsOff(t *testing.T) {
	d := &fakeDoc{pages: [][]text.TextFragment{{
		frag("Hello", 0, 100, 10),
		frag("World", 11, 100, 10),
	}}}

	got, err := newTestExtractor(d).CombineTextItems(false).ExtractText(pdfBytes)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if got != "HelloWorld" {
		t.Errorf("ExtractText() = %q, want %q", got, "HelloWorld")
	}
}

type progressEvent struct {
	percent float64
	status  string
}

func recordProgress(events *[]progressEvent) func(float64, string) {
	return func(p float64, s string) {
		*events = append(*events, progressEvent{p, s})
	}
}

func TestExtractWithProgress(t *testing.T) {
	d := &fakeDoc{pages: [][]text.TextFragment{page("a"), page("b"), page("c")}}
	var events []progressEvent

	got, err := newTestExtractor(d).ExtractWithProgress(
		FileFromBytes("three.pdf", "application/pdf", pdfBytes),
		recordProgress(&events),
	)
	if err != nil {
		t.Fatalf("ExtractWithProgress() error = %v", err)
	}
	if got != "a\n\n--- Page 2 ---\n\nb\n\n--- Page 3 ---\n\nc" {
		t.Errorf("text = %q", got)
	}

	want := []float64{10, 20, 30, 40, 40 + 50.0/3, 40 + 100.0/3, 90, 95, 100}
	if len(events) != len(want) {
		t.Fatalf("got %d progress events, want %d: %v", len(events), len(want), events)
	}
	for i, w := range want {
		if math.Abs(events[i].percent-w) > 1e-9 {
			t.Errorf("event %d = %v, want %v", i, events[i].percent, w)
		}
		if i > 0 && events[i].percent <= events[i-1].percent {
			t.Errorf("event %d (%v) does not increase on %v", i, events[i].percent, events[i-1].percent)
		}
	}
	if events[4].status != "Extracted page 1 of 3" {
		t.Errorf("page status = %q", events[4].status)
	}
}

func TestExtractWithProgressNoPages(t *testing.T) {
	var events []progressEvent

	_, err := newTestExtractor(&fakeDoc{}).ExtractWithProgress(
		FileFromBytes("empty.pdf", "application/pdf", pdfBytes),
		recordProgress(&events),
	)
	if err != nil {
		t.Fatalf("ExtractWithProgress() error = %v", err)
	}

	want := []float64{10, 20, 30, 40, 95, 100}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want percents %v", events, want)
	}
	for i, w := range want {
		if events[i].percent != w {
			t.Errorf("event %d = %v, want %v", i, events[i].percent, w)
		}
	}
}

func TestExtractWithProgressRejectsBeforeParsing(t *testing.T) {
	src := &countingSource{doc: &fakeDoc{}}
	var events []progressEvent

	_, err := New(src, WithLogger(quietLogger())).ExtractWithProgress(
		FileFromBytes("notes.txt", "text/plain", []byte("hello")),
		recordProgress(&events),
	)
	if !errors.Is(err, validate.ErrNotPDF) {
		t.Errorf("error = %v, want ErrNotPDF", err)
	}
	if len(events) != 0 {
		t.Errorf("progress reported for rejected file: %v", events)
	}
	if src.opens.Load() != 0 {
		t.Error("source opened for rejected file")
	}
}

func TestExtractWithProgressNilSink(t *testing.T) {
	d := &fakeDoc{pages: [][]text.TextFragment{page("a")}}

	got, err := newTestExtractor(d).ExtractWithProgress(FileFromBytes("a.pdf", "application/pdf", pdfBytes), nil)
	if err != nil || got != "a" {
		t.Errorf("ExtractWithProgress() = %q, %v", got, err)
	}
}

func TestExtractWithProgressUntrustedSize(t *testing.T) {
	f := &File{Name: "liar.pdf", Type: "application/pdf", Size: 10, Reader: strings.NewReader("")}

	_, err := newTestExtractor(&fakeDoc{}).ExtractWithProgress(f, nil)
	if !errors.Is(err, validate.ErrEmpty) {
		t.Errorf("error = %v, want ErrEmpty", err)
	}
}

func TestExtractWithProgressReadError(t *testing.T) {
	readErr := errors.New("disk went away")
	f := &File{Name: "broken.pdf", Type: "application/pdf", Size: 10, Reader: iotest.ErrReader(readErr)}

	_, err := newTestExtractor(&fakeDoc{}).ExtractWithProgress(f, nil)

	var le *DocumentLoadError
	if !errors.As(err, &le) || le.File != "broken.pdf" {
		t.Fatalf("error = %v, want *DocumentLoadError for broken.pdf", err)
	}
	if !errors.Is(err, readErr) {
		t.Errorf("errors.Is(err, readErr) = false for %v", err)
	}
	want := `failed to extract text from PDF "broken.pdf": the document could not be opened`
	if got := SafeMessage(err); got != want {
		t.Errorf("SafeMessage() = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		file *File
		want string
	}{
		{"nil", nil, "No file provided"},
		{"plain text", &File{Type: "text/plain", Size: 100}, "File must be a PDF document"},
		{"wrong type wins over size", &File{Type: "image/png", Size: 60 << 20}, "File must be a PDF document"},
		{"too large", &File{Type: "application/pdf", Size: 50<<20 + 1}, "File size must be less than 50MB"},
		{"empty", &File{Type: "application/pdf", Size: 0}, "File is empty"},
		{"ok", &File{Type: "application/pdf", Size: 50 << 20}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.file)
			got := ""
			if err != nil {
				got = err.Error()
			}
			if got != tt.want {
				t.Errorf("Validate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractBatch(t *testing.T) {
	d := &fakeDoc{pages: [][]text.TextFragment{page("body")}}
	files := []*File{
		FileFromBytes("a.pdf", "application/pdf", pdfBytes),
		FileFromBytes("b.txt", "text/plain", []byte("nope")),
		FileFromBytes("c.pdf", "application/pdf", pdfBytes),
	}

	var percents []float64
	var indexes []int
	results, err := newTestExtractor(d).ExtractBatch(files, func(index int, name string, percent float64, status string) {
		indexes = append(indexes, index)
		percents = append(percents, percent)
	})
	if err != nil {
		t.Fatalf("ExtractBatch() error = %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Err != nil || results[0].Document.Text != "body" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if !errors.Is(results[1].Err, validate.ErrNotPDF) || results[1].Document != nil {
		t.Errorf("results[1] = %+v", results[1])
	}
	if results[2].Err != nil || results[2].File != "c.pdf" {
		t.Errorf("results[2] = %+v", results[2])
	}

	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Errorf("batch progress went backwards: %v", percents)
			break
		}
		if indexes[i] < indexes[i-1] {
			t.Errorf("files reported out of order: %v", indexes)
			break
		}
	}
	if last := percents[len(percents)-1]; math.Abs(last-100) > 1e-9 {
		t.Errorf("final batch progress = %v, want 100", last)
	}
}

func TestExtractBatchTooManyFiles(t *testing.T) {
	src := &countingSource{doc: &fakeDoc{pages: [][]text.TextFragment{page("x")}}}
	files := make([]*File, 11)
	for i := range files {
		files[i] = FileFromBytes(fmt.Sprintf("%d.pdf", i), "application/pdf", pdfBytes)
	}

	results, err := New(src, WithLogger(quietLogger())).ExtractBatch(files, nil)
	if !errors.Is(err, validate.ErrTooManyFiles) {
		t.Errorf("error = %v, want ErrTooManyFiles", err)
	}
	if results != nil {
		t.Errorf("results = %v, want nil", results)
	}
	if src.opens.Load() != 0 {
		t.Error("files were processed despite the batch cap")
	}
}

func TestSafeMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", &validate.Error{Err: validate.ErrTooLarge}, "File size must be less than 50MB"},
		{
			"load with file",
			&DocumentLoadError{File: "a.pdf", Err: fmt.Errorf("wrap: %w", errNilDocument)},
			`failed to extract text from PDF "a.pdf": the document could not be opened`,
		},
		{"other", errors.New("internal detail /tmp/x"), "failed to extract text from PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeMessage(tt.err); got != tt.want {
				t.Errorf("SafeMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractorSafeMessageLogs(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   string
		logged  bool
	}{
		{"validation", &validate.Error{Err: validate.ErrNotPDF}, "File must be a PDF document", false},
		{"load", &DocumentLoadError{Err: errNilDocument}, "failed to extract text from PDF: the document could not be opened", false},
		{"other", errors.New("internal detail /tmp/x"), "failed to extract text from PDF", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf strings.Builder
			e := New(&countingSource{doc: &fakeDoc{}}, WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

			if got := e.SafeMessage(tt.err); got != tt.want {
				t.Errorf("SafeMessage() = %q, want %q", got, tt.want)
			}
			if logged := strings.Contains(buf.String(), "internal detail"); logged != tt.logged {
				t.Errorf("logged = %v, want %v (log: %s)", logged, tt.logged, buf.String())
			}
		})
	}
}
