// Package memory provides an in-process object store.
//
// It backs the CLI's dry-run mode and the uploader tests. Objects live in a
// map; every PutObject call is recorded in order, including failed ones.
package memory

import (
	"context"
	"crypto/md5" //nolint:gosec // ETags mirror what object stores return, not a security boundary.
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/jorjao81/zh-learn/errors"
	"github.com/jorjao81/zh-learn/internal/storage"
)

// Object is a stored blob.
type Object struct {
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// Call records one PutObject invocation.
type Call struct {
	Key  string
	Size int
	Err  error
}

// Store is a thread-safe in-memory storage.Store.
type Store struct {
	mu       sync.Mutex
	baseURL  string
	objects  map[string]Object
	failures map[string]error
	calls    []Call
}

var _ storage.Store = (*Store)(nil)

// New creates an empty store whose object URLs start with baseURL.
func New(baseURL string) *Store {
	return &Store{
		baseURL:  baseURL,
		objects:  make(map[string]Object),
		failures: make(map[string]error),
	}
}

// FailKey makes every future put of key fail with err wrapped as a transport error.
func (s *Store) FailKey(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[key] = err
}

// PutObject implements storage.Store.
func (s *Store) PutObject(ctx context.Context, key string, data []byte, opts storage.PutOptions) (*storage.PutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		s.calls = append(s.calls, Call{Key: key, Size: len(data), Err: err})
		return nil, errors.NewObjectError("putObject", "memory", key, errors.Transport(err))
	}

	if cause, ok := s.failures[key]; ok {
		s.calls = append(s.calls, Call{Key: key, Size: len(data), Err: cause})
		return nil, errors.NewObjectError("putObject", "memory", key, errors.Transport(cause))
	}

	stored := make([]byte, len(data))
	copy(stored, data)

	var metadata map[string]string
	if len(opts.Metadata) > 0 {
		metadata = make(map[string]string, len(opts.Metadata))
		for k, v := range opts.Metadata {
			metadata[k] = v
		}
	}

	s.objects[key] = Object{Data: stored, ContentType: opts.ContentType, Metadata: metadata}
	s.calls = append(s.calls, Call{Key: key, Size: len(data)})

	sum := md5.Sum(stored) //nolint:gosec // see import
	return &storage.PutResult{
		Key:  key,
		Size: int64(len(stored)),
		ETag: fmt.Sprintf("%q", hex.EncodeToString(sum[:])),
	}, nil
}

// ObjectURL implements storage.Store.
func (s *Store) ObjectURL(key string) string {
	return s.baseURL + "/" + storage.EscapeKey(key)
}

// Get returns the stored object for key.
func (s *Store) Get(key string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Calls returns a copy of the recorded PutObject calls in order.
func (s *Store) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}
