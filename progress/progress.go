// Package progress reports extraction progress to a caller-supplied sink.
//
// A Reporter turns the fixed milestones of an extraction (validate, load,
// parse, page loop, finalize, complete) and the per-page steps into a
// non-decreasing percentage in [0, 100] with a status line:
//
//	r := progress.NewReporter(func(percent float64, status string) {
//	    fmt.Printf("\r%3.0f%% %s", percent, status)
//	})
//	r.Report(progress.Validate, "Validating file...")
//	...
//	r.Page(3, 10)
//
// The sink is called synchronously from the goroutine driving the
// extraction and never concurrently with itself.
package progress

import "fmt"

// Func receives progress updates.
type Func func(percent float64, status string)

// Milestones, in percent.
const (
	Validate = 10.0
	Load     = 20.0
	Parse    = 30.0
	PageLoop = 40.0
	PageSpan = 50.0 // shared by all pages, starting at PageLoop
	Finalize = 95.0
	Complete = 100.0
)

const (
	rangeLow  = 0.0
	rangeHigh = 100.0
)

// Reporter forwards progress to a Func, clamping values to [0, 100] and
// never letting them go backwards. A nil Reporter or a Reporter with a nil
// Func does nothing.
type Reporter struct {
	fn   Func
	last float64
	sent bool
}

// NewReporter creates a Reporter for fn.
func NewReporter(fn Func) *Reporter {
	return &Reporter{fn: fn}
}

// Report emits percent and status.
func (r *Reporter) Report(percent float64, status string) {
	if r == nil || r.fn == nil {
		return
	}

	if percent < rangeLow {
		percent = rangeLow
	}
	if percent > rangeHigh {
		percent = rangeHigh
	}
	if r.sent && percent < r.last {
		percent = r.last
	}

	r.last = percent
	r.sent = true
	r.fn(percent, status)
}

// PagePercent is the progress after page of total pages has completed:
// PageLoop + page/total × PageSpan.
func PagePercent(page, total int) float64 {
	if total <= 0 {
		return PageLoop
	}
	return PageLoop + float64(page)/float64(total)*PageSpan
}

// Page reports the completion of page of total.
func (r *Reporter) Page(page, total int) {
	r.Report(PagePercent(page, total), fmt.Sprintf("Extracted page %d of %d", page, total))
}

// Scaled returns a Func that maps 0–100 into the [from, to] slice of fn's
// range. It is used to fold the progress of one file into the progress of
// a batch.
func Scaled(fn Func, from, to float64) Func {
	if fn == nil {
		return nil
	}
	return func(percent float64, status string) {
		fn(from+(to-from)*percent/rangeHigh, status)
	}
}
