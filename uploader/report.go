package uploader

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Report is the outcome of a batch. Results has one entry per input file,
// in input order.
type Report struct {
	BatchID  string
	Results  []Result
	Duration time.Duration
}

// Succeeded returns the results of acknowledged uploads.
func (r Report) Succeeded() []Result {
	return r.filter(OutcomeSucceeded)
}

// Failed returns the results of failed uploads.
func (r Report) Failed() []Result {
	return r.filter(OutcomeFailed)
}

// HasFailures reports whether any task failed.
func (r Report) HasFailures() bool {
	for _, res := range r.Results {
		if !res.Succeeded() {
			return true
		}
	}
	return false
}

// Bytes returns the total number of bytes stored.
func (r Report) Bytes() int64 {
	var total int64
	for _, res := range r.Succeeded() {
		total += res.Size
	}
	return total
}

func (r Report) filter(outcome Outcome) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Outcome == outcome {
			out = append(out, res)
		}
	}
	return out
}

// Reporter receives progress events. Started is called before a file is
// read; Finished is called exactly once per task.
type Reporter interface {
	Started(task Task, url string)
	Finished(result Result)
}

type nopReporter struct{}

func (nopReporter) Started(Task, string) {}
func (nopReporter) Finished(Result)      {}

// TextReporter writes human readable status lines. Failures go to Err.
type TextReporter struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

var _ Reporter = (*TextReporter)(nil)

// NewTextReporter creates a TextReporter writing to out and errOut.
func NewTextReporter(out, errOut io.Writer) *TextReporter {
	return &TextReporter{out: out, err: errOut}
}

// Started implements Reporter.
func (r *TextReporter) Started(_ Task, url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.out, "Uploading to Blob storage as blob:\n\t%s\n", url)
}

// Finished implements Reporter.
func (r *TextReporter) Finished(result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if result.Succeeded() {
		_, _ = fmt.Fprintln(r.out, "File uploaded successfully!")
		return
	}
	_, _ = fmt.Fprintf(r.err, "Upload failed: %v\n", result.Err)
}
