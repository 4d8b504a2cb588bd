package uploader

import "time"

// Task is one local file scheduled for upload.
type Task struct {
	// Index is the position of the file in the batch input
	Index int

	// Path is the local file path as given by the caller
	Path string

	// Key is the destination blob key
	Key string
}

// Outcome is the final state of a task.
type Outcome int

const (
	// OutcomeFailed means the file was not stored.
	OutcomeFailed Outcome = iota

	// OutcomeSucceeded means the store acknowledged the upload.
	OutcomeSucceeded
)

// String returns a lower-case name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of a single task.
type Result struct {
	Task    Task
	Outcome Outcome

	// Err is set when Outcome is OutcomeFailed. It wraps errors.ErrIO for
	// local failures, errors.ErrTransport for store failures and
	// errors.ErrInvalidKey when the destination key is rejected. Tasks not
	// started because the context was done carry the context error, which
	// errors.IsCanceled reports.
	Err error

	// URL is the destination location of the blob
	URL string

	// Size is the number of bytes sent
	Size int64

	// ETag is the entity tag returned by the store
	ETag string

	// ContentType is the MIME type sent with the blob
	ContentType string

	// Duration is how long the task took
	Duration time.Duration
}

// Succeeded reports whether the upload was acknowledged.
func (r Result) Succeeded() bool {
	return r.Outcome == OutcomeSucceeded
}
