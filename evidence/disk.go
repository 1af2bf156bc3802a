package evidence

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// DiskStore writes evidence files into a local directory served under URLPrefix
type DiskStore struct {
	Dir       string
	URLPrefix string
}

// NewDiskStore creates dir if needed
func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}
	return &DiskStore{Dir: dir, URLPrefix: urlPrefix}, nil
}

// Save copies the upload into a new file named with a unique prefix
func (d *DiskStore) Save(ctx context.Context, up Upload) (Stored, error) {
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return Stored{}, err
	}
	name := uniqueName(up.Filename)
	p := filepath.Join(d.Dir, name)

	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Stored{}, err
	}
	if _, err := io.Copy(f, up.Body); err != nil {
		f.Close()
		os.Remove(p)
		return Stored{}, err
	}
	if err := f.Close(); err != nil {
		os.Remove(p)
		return Stored{}, err
	}
	return Stored{
		URL:         path.Join(d.URLPrefix, name),
		Key:         name,
		Filename:    up.Filename,
		ContentType: up.ContentType,
	}, nil
}

// Delete removes a stored file. A missing file is not an error.
func (d *DiskStore) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(d.Dir, filepath.Base(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
