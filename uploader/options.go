package uploader

import (
	"log/slog"
	"maps"
	"time"

	"github.com/go-git/go-billy/v5"
)

// MetadataBatchID is the metadata key carrying the batch identifier.
const MetadataBatchID = "batch_id"

// Option configures an Uploader.
type Option func(*Uploader)

// WithLogger sets the logger for upload events. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Uploader) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// WithReporter sets the receiver of per-file progress events.
func WithReporter(reporter Reporter) Option {
	return func(u *Uploader) {
		if reporter != nil {
			u.reporter = reporter
		}
	}
}

// WithFilesystem sets the filesystem local files are read from.
// If not specified, the native filesystem is used.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(u *Uploader) {
		if fs != nil {
			u.fs = fs
		}
	}
}

// WithMetadata adds metadata to every uploaded blob. A batch_id entry
// replaces the generated batch identifier.
func WithMetadata(metadata map[string]string) Option {
	return func(u *Uploader) {
		maps.Copy(u.metadata, metadata)
	}
}

// WithContentType forces the content type of every blob instead of
// detecting it per file.
func WithContentType(contentType string) Option {
	return func(u *Uploader) {
		u.contentType = contentType
	}
}

// WithClock sets the time source used for durations.
func WithClock(now func() time.Time) Option {
	return func(u *Uploader) {
		if now != nil {
			u.now = now
		}
	}
}

// WithIDGenerator sets the function producing batch identifiers.
func WithIDGenerator(newID func() string) Option {
	return func(u *Uploader) {
		if newID != nil {
			u.newID = newID
		}
	}
}
