// Package storage defines the narrow object store capability used by the uploader.
//
// Backends wrap a cloud SDK and expose only a single-attempt put plus the
// public location of a key. Every failure returned by PutObject wraps
// errors.ErrTransport.
package storage

import (
	"context"
	"net/url"
	"strings"
)

// Store is the capability the batch uploader needs from an object store.
type Store interface {
	// PutObject stores data under key, overwriting any existing object.
	// It makes a single attempt and never retries.
	PutObject(ctx context.Context, key string, data []byte, opts PutOptions) (*PutResult, error)

	// ObjectURL returns the location key is or will be stored at.
	ObjectURL(key string) string
}

// PutOptions carries per-object properties.
type PutOptions struct {
	// ContentType is the MIME type stored with the object
	ContentType string

	// Metadata contains user-defined metadata
	Metadata map[string]string
}

// PutResult describes a stored object.
type PutResult struct {
	// Key is the object key that was written
	Key string

	// Size is the number of bytes written
	Size int64

	// ETag is the entity tag returned by the store
	ETag string

	// VersionID is set when the store keeps object versions
	VersionID string
}

// EscapeKey path-escapes every segment of key for use in an object URL.
// Separators are kept, so empty segments survive as in "//a.mp3".
func EscapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
