// Package backend builds the storage.Store selected by the configuration.
package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/jorjao81/zh-learn/config"
	uperrors "github.com/jorjao81/zh-learn/errors"
	"github.com/jorjao81/zh-learn/internal/storage"
	"github.com/jorjao81/zh-learn/internal/storage/azure"
	"github.com/jorjao81/zh-learn/internal/storage/memory"
	"github.com/jorjao81/zh-learn/internal/storage/minio"
	"github.com/jorjao81/zh-learn/internal/storage/s3"
)

// New validates cfg and returns the store for cfg.Backend. No network call
// is made until the first PutObject.
func New(ctx context.Context, cfg config.Config) (storage.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		store storage.Store
		err   error
	)
	switch cfg.Backend {
	case config.BackendAzure:
		store, err = azure.New(cfg)
	case config.BackendS3:
		store, err = s3.New(ctx, cfg)
	case config.BackendMinIO:
		store, err = minio.New(cfg)
	default:
		err = uperrors.NewError("backend", uperrors.ErrConfiguration).
			WithMessage(fmt.Sprintf("unsupported backend %q", cfg.Backend))
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

// DryRun returns an in-memory store whose object URLs match those of the
// configured backend. The real store is still built so configuration
// problems are reported the same way.
func DryRun(ctx context.Context, cfg config.Config) (*memory.Store, error) {
	target, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return memory.New(strings.TrimSuffix(target.ObjectURL(""), "/")), nil
}
