package pdftext

import (
	"fmt"

	"github.com/tsawler/pdftext/model"
	"github.com/tsawler/pdftext/progress"
)

// ExtractWithProgress validates f, reads its bytes and extracts its text,
// reporting progress to onProgress along the way: 10 after validation, 20
// once the bytes are loaded, 30 once the document is parsed, 40 when the
// page loop starts, then one step per page up to 90, 95 when finalizing
// and exactly 100 on success. Values never decrease. onProgress may be
// nil and is always called on the calling goroutine.
//
// Example:
//
//	f, err := pdftext.FileFromPath("report.pdf")
//	if err != nil {
//	    // handle error
//	}
//	text, err := pdftext.Default().ExtractWithProgress(f, func(p float64, status string) {
//	    fmt.Printf("\r%3.0f%% %s", p, status)
//	})
func (e *Extractor) ExtractWithProgress(f *File, onProgress progress.Func) (string, error) {
	opts := e.options.clone()
	opts.IncludeMetadata = false

	doc, err := e.extractFile(f, opts, progress.NewReporter(onProgress))
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// ExtractDocumentWithProgress is ExtractWithProgress returning the detailed
// result, including metadata when IncludeMetadata is set.
func (e *Extractor) ExtractDocumentWithProgress(f *File, onProgress progress.Func) (*model.Document, error) {
	return e.extractFile(f, e.options.clone(), progress.NewReporter(onProgress))
}

func (e *Extractor) extractFile(f *File, opts ExtractOptions, rep *progress.Reporter) (*model.Document, error) {
	if err := Validate(f); err != nil {
		f.Close()
		return nil, err
	}
	rep.Report(progress.Validate, "Validated file")

	data, err := f.readAll()
	if err != nil {
		return nil, err
	}
	rep.Report(progress.Load, fmt.Sprintf("Loaded %s", f.Name))

	doc, err := e.run(f.Name, data, opts, rep)
	if err != nil {
		return nil, err
	}

	rep.Report(progress.Complete, "Extraction complete")
	return doc, nil
}
