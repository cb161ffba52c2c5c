package pdftext

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pdftext/model"
	"github.com/tsawler/pdftext/progress"
	"github.com/tsawler/pdftext/text"
)

// errNilDocument is returned when a Source reports success without a
// document.
var errNilDocument = errors.New("source returned no document")

// run opens data, assembles every page and, if requested, reads metadata
// on a second document handle while the pages are processed. name is used
// in errors only. rep may be nil.
func (e *Extractor) run(name string, data []byte, opts ExtractOptions, rep *progress.Reporter) (*model.Document, error) {
	d, pageCount, err := e.open(data)
	if err != nil {
		return nil, &DocumentLoadError{File: name, Err: err}
	}
	rep.Report(progress.Parse, fmt.Sprintf("Parsed document structure (%d pages)", pageCount))

	var (
		g    errgroup.Group
		meta model.Metadata
	)
	if opts.IncludeMetadata {
		g.Go(func() (err error) {
			meta, err = e.readMetadata(data)
			return err
		})
	}

	rep.Report(progress.PageLoop, "Extracting text...")
	doc := e.assemble(d, pageCount, opts.reconstruct(), rep)

	// Metadata failures degrade the result instead of failing it.
	mErr := g.Wait()
	if opts.IncludeMetadata {
		if mErr != nil {
			e.logger.Warn("failed to read document metadata", "file", name, "error", mErr)
			doc.Warn(model.Warning{Stage: model.StageMetadata, Message: mErr.Error()})
			meta = model.Metadata{}
		}
		meta.PageCount = pageCount
		doc.Metadata = &meta
	}

	rep.Report(progress.Finalize, "Finalizing...")

	stats := doc.Stats()
	e.logger.Debug("extracted document",
		"file", name,
		"pages", stats.Pages,
		"failed", len(doc.FailedPages()),
		"characters", stats.Characters,
	)
	return doc, nil
}

// open opens data with the source and reads the page count. Panics from
// the source are reported as errors.
func (e *Extractor) open(data []byte) (d Document, pageCount int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			d = nil
			pageCount = 0
			err = fmt.Errorf("panic while opening document: %v", rec)
		}
	}()

	d, err = e.source.Open(data)
	if err != nil {
		return nil, 0, err
	}
	if d == nil {
		return nil, 0, errNilDocument
	}

	pageCount = d.PageCount()
	if pageCount < 0 {
		pageCount = 0
	}
	return d, pageCount, nil
}

// assemble runs the page loop. Pages are processed in ascending order on
// the calling goroutine; a page that fails is replaced by sentinel text and
// never stops the loop.
func (e *Extractor) assemble(d Document, pageCount int, opts text.Options, rep *progress.Reporter) *model.Document {
	doc := model.NewDocument()
	var full strings.Builder

	for n := 1; n <= pageCount; n++ {
		pageText, err := e.extractPage(d, n, opts)
		if err != nil {
			e.logger.Warn("failed to extract page", "page", n, "error", err)
			doc.AddFailedPage()
			doc.Warn(model.Warning{Page: n, Stage: model.StagePage, Message: cause(err).Error()})
			rep.Page(n, pageCount)
			continue
		}

		if n > 1 && strings.TrimSpace(pageText) != "" {
			full.WriteString(model.Marker(n))
		}
		full.WriteString(pageText)
		doc.AddPage(pageText)
		rep.Page(n, pageCount)
	}

	doc.Text = text.Normalize(full.String())
	return doc
}

// extractPage fetches and reconstructs page n. Errors and panics from
// either step come back as a *PageError.
func (e *Extractor) extractPage(d Document, n int, opts text.Options) (pageText string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pageText = ""
			err = &PageError{Page: n, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	fragments, err := d.Page(n)
	if err != nil {
		return "", &PageError{Page: n, Err: err}
	}
	return text.Reconstruct(fragments, opts), nil
}

// cause strips the page wrapper, which a Warning already carries as Page.
func cause(err error) error {
	var pe *PageError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err
	}
	return err
}

// readMetadata opens its own document handle so it can run alongside the
// page loop.
func (e *Extractor) readMetadata(data []byte) (meta model.Metadata, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while reading metadata: %v", rec)
		}
	}()

	d, err := e.source.Open(data)
	if err != nil {
		return model.Metadata{}, err
	}
	if d == nil {
		return model.Metadata{}, errNilDocument
	}
	return d.Metadata()
}
