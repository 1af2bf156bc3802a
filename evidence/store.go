// Package evidence persists uploaded evidence files under generated unique
// names and hands back a stable URL for the owning case or report.
package evidence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload is one file received from a client
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Stored is where an upload ended up. Key identifies the object to its backend.
type Stored struct {
	URL         string
	Key         string
	Filename    string
	ContentType string
}

// Store is an append-only file store
type Store interface {
	Save(ctx context.Context, up Upload) (Stored, error)
	Delete(ctx context.Context, key string) error
}

// uniqueName prefixes the base of filename with a random hex id so concurrent
// uploads of the same file never collide
func uniqueName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return strings.ReplaceAll(uuid.New().String(), "-", "") + "_" + base
}

// SaveAll stores every upload. Each file is attempted independently and every
// failure is reported by file name. If any file fails, the files that did
// succeed are removed again so no document ends up referencing a partial set.
func SaveAll(ctx context.Context, store Store, uploads []Upload) ([]Stored, error) {
	stored := make([]Stored, 0, len(uploads))
	var errs []error
	for _, up := range uploads {
		s, err := store.Save(ctx, up)
		if err != nil {
			errs = append(errs, fmt.Errorf("evidence file %q: %w", up.Filename, err))
			continue
		}
		stored = append(stored, s)
	}
	if len(errs) == 0 {
		return stored, nil
	}
	Discard(ctx, store, stored)
	return nil, errors.Join(errs...)
}

// Discard removes already stored files, used when the owning document could
// not be persisted. Failures are logged, not returned.
func Discard(ctx context.Context, store Store, stored []Stored) {
	for _, s := range stored {
		if err := store.Delete(ctx, s.Key); err != nil {
			zap.S().Warnw("failed to remove orphaned evidence file", "key", s.Key, "error", err)
		}
	}
}
