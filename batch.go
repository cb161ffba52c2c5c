package pdftext

import (
	"github.com/tsawler/pdftext/model"
	"github.com/tsawler/pdftext/progress"
	"github.com/tsawler/pdftext/validate"
)

// BatchResult is the outcome for one file of a batch. Exactly one of
// Document and Err is set.
type BatchResult struct {
	File     string
	Document *model.Document
	Err      error
}

// BatchProgressFunc receives progress for a batch. index is the position
// of the file being processed and percent covers the whole batch: each
// file owns an equal share of 0–100.
type BatchProgressFunc func(index int, name string, percent float64, status string)

// ExtractBatch extracts up to validate.MaxBatchFiles files one after the
// other. The file count is checked before anything else; a batch that is
// too large is rejected as a whole. After that a failing file never stops
// the batch: its error is recorded in its BatchResult.
//
// Example:
//
//	results, err := pdftext.Default().ExtractBatch(files, nil)
//	if err != nil {
//	    // too many files
//	}
//	for _, r := range results {
//	    if r.Err != nil {
//	        log.Println(r.File, pdftext.SafeMessage(r.Err))
//	    }
//	}
func (e *Extractor) ExtractBatch(files []*File, onProgress BatchProgressFunc) ([]BatchResult, error) {
	if err := validate.Batch(len(files)); err != nil {
		for _, f := range files {
			f.Close()
		}
		return nil, err
	}

	opts := e.options.clone()
	total := float64(len(files))
	results := make([]BatchResult, len(files))

	for i, f := range files {
		name := ""
		if f != nil {
			name = f.Name
		}

		var fn progress.Func
		if onProgress != nil {
			index := i
			fn = progress.Scaled(func(percent float64, status string) {
				onProgress(index, name, percent, status)
			}, float64(i)/total*progress.Complete, float64(i+1)/total*progress.Complete)
		}

		doc, err := e.extractFile(f, opts, progress.NewReporter(fn))
		if err != nil {
			e.logger.Warn("failed to extract file", "file", name, "error", err)
		}
		results[i] = BatchResult{File: name, Document: doc, Err: err}
	}

	return results, nil
}
