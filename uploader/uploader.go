// Package uploader sends a batch of local files to an object store.
//
// Files are processed one at a time in input order. Each file is read fully
// into memory and stored with a single PutObject call under
// DestinationKey(folder, path). A failure is recorded in that file's Result and
// the batch moves on to the next file; only configuration problems, detected
// by New, stop anything from being uploaded.
//
// Basic usage:
//
//	cfg, _ := config.Load(os.LookupEnv, ".env")
//	store, err := backend.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	up, err := uploader.New(cfg, store, uploader.WithLogger(slog.Default()))
//	if err != nil {
//	    return err
//	}
//	report := up.Upload(ctx, []string{"a.mp3", "b.mp3"}, "lesson1")
package uploader

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"

	"github.com/jorjao81/zh-learn/config"
	"github.com/jorjao81/zh-learn/errors"
	"github.com/jorjao81/zh-learn/internal/contenttype"
	"github.com/jorjao81/zh-learn/internal/localfs"
	"github.com/jorjao81/zh-learn/internal/storage"
	"github.com/jorjao81/zh-learn/internal/validation"
)

// Uploader runs upload batches against a single store.
//
// An Uploader holds no per-batch state and may be reused. Upload itself is
// sequential; concurrent calls to Upload share the store and the reporter.
type Uploader struct {
	cfg         config.Config
	store       storage.Store
	fs          billy.Filesystem
	logger      *slog.Logger
	reporter    Reporter
	metadata    map[string]string
	contentType string
	now         func() time.Time
	newID       func() string
}

// New creates an Uploader. It fails with errors.ErrConfiguration when the
// credentials in cfg are incomplete or store is nil, before any file is
// touched.
func New(cfg config.Config, store storage.Store, opts ...Option) (*Uploader, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.NewError("uploader", errors.ErrConfiguration).
			WithMessage("store cannot be nil")
	}

	u := &Uploader{
		cfg:      cfg,
		store:    store,
		fs:       localfs.New(),
		logger:   slog.New(slog.DiscardHandler),
		reporter: nopReporter{},
		metadata: make(map[string]string),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(u)
	}

	if err := validation.ValidateMetadata(u.metadata); err != nil {
		return nil, errors.NewError("uploader", errors.Configuration(err))
	}

	return u, nil
}

// Upload stores every file in files under folder and returns one Result per
// file, in input order. It never stops early on a per-file failure. Once ctx
// is done the remaining files are reported as failed without being read.
func (u *Uploader) Upload(ctx context.Context, files []string, folder string) Report {
	start := u.now()
	report := Report{
		BatchID: u.newID(),
		Results: make([]Result, 0, len(files)),
	}

	metadata := map[string]string{MetadataBatchID: report.BatchID}
	maps.Copy(metadata, u.metadata)

	u.logger.InfoContext(ctx, "starting upload batch",
		"batch_id", report.BatchID,
		"files", len(files),
		"container", u.cfg.Container,
		"folder", folder)

	for i, path := range files {
		task := Task{Index: i, Path: path, Key: DestinationKey(folder, path)}
		report.Results = append(report.Results, u.uploadFile(ctx, task, metadata))
	}

	report.Duration = u.now().Sub(start)

	u.logger.InfoContext(ctx, "upload batch finished",
		"batch_id", report.BatchID,
		"succeeded", len(report.Succeeded()),
		"failed", len(report.Failed()),
		"bytes", report.Bytes(),
		"duration", report.Duration)

	return report
}

// uploadFile runs a single task. It reports exactly one Finished event.
func (u *Uploader) uploadFile(ctx context.Context, task Task, metadata map[string]string) Result {
	result := Result{Task: task, URL: u.store.ObjectURL(task.Key)}

	if err := ctx.Err(); err != nil {
		result.Err = errors.NewObjectError("upload", u.cfg.Container, task.Key, err)
		return u.finish(ctx, result)
	}

	// A key the store cannot accept fails the task before the file is opened.
	if err := validation.ValidateKey(task.Key); err != nil {
		result.Err = errors.NewError("upload", err).WithPath(task.Path)
		return u.finish(ctx, result)
	}

	u.reporter.Started(task, result.URL)
	started := u.now()

	data, err := u.readFile(task.Path)
	if err != nil {
		result.Err = err
		result.Duration = u.now().Sub(started)
		return u.finish(ctx, result)
	}

	result.ContentType = u.contentType
	if result.ContentType == "" {
		result.ContentType = contenttype.Detect(task.Path, data)
	}

	u.logger.DebugContext(ctx, "uploading file",
		"path", task.Path,
		"key", task.Key,
		"size", len(data),
		"content_type", result.ContentType)

	put, err := u.store.PutObject(ctx, task.Key, data, storage.PutOptions{
		ContentType: result.ContentType,
		Metadata:    metadata,
	})
	result.Duration = u.now().Sub(started)
	if err != nil {
		result.Err = errors.Transport(err)
		return u.finish(ctx, result)
	}

	result.Outcome = OutcomeSucceeded
	result.Size = put.Size
	result.ETag = put.ETag
	return u.finish(ctx, result)
}

func (u *Uploader) finish(ctx context.Context, result Result) Result {
	if result.Err != nil {
		u.logger.WarnContext(ctx, "upload failed",
			"path", result.Task.Path,
			"key", result.Task.Key,
			"kind", errors.Kind(result.Err),
			"error", result.Err)
	} else {
		u.logger.InfoContext(ctx, "file uploaded",
			"key", result.Task.Key,
			"size", result.Size,
			"duration", result.Duration)
	}
	u.reporter.Finished(result)
	return result
}

// readFile loads path into memory. The file is closed on every path.
func (u *Uploader) readFile(path string) (data []byte, err error) {
	info, err := u.fs.Stat(path)
	if err != nil {
		return nil, errors.NewError("stat", errors.IO(err)).WithPath(path)
	}
	if info.IsDir() {
		return nil, errors.NewError("stat", errors.IO(errors.ErrInvalidInput)).
			WithPath(path).
			WithMessage("path points to a directory, not a file")
	}

	f, err := u.fs.Open(path)
	if err != nil {
		return nil, errors.NewError("open", errors.IO(err)).WithPath(path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			data, err = nil, errors.NewError("close", errors.IO(closeErr)).WithPath(path)
		}
	}()

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, errors.NewError("read", errors.IO(err)).WithPath(path)
	}
	return data, nil
}
