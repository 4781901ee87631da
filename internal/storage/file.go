package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/romangod6/kvblog/config"
)

var _ Store = &FileStore{}

// FileStore keeps one file per key beneath a root directory.
// Writes go to a temporary file that is renamed into place,
// so a reader never sees a partially written value.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Initialize() error {
	return errors.Wrapf(os.MkdirAll(s.root, 0755), "ensuring %s exists", s.root)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, ".") || strings.ContainsAny(key, `/\`) {
		return "", errors.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.root, key), nil
}

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(b), nil
}

func (s *FileStore) Put(_ context.Context, key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(s.root, ".tmp-"+key+"-")
	if err != nil {
		return errors.Wrapf(err, "creating temp file in %s", s.root)
	}
	tmpname := f.Name()

	if _, err = f.WriteString(value); err != nil {
		f.Close()
		os.Remove(tmpname)
		return errors.Wrapf(err, "writing %s", tmpname)
	}
	if err = f.Close(); err != nil {
		os.Remove(tmpname)
		return errors.Wrapf(err, "closing %s", tmpname)
	}

	if err = os.Rename(tmpname, path); err != nil {
		os.Remove(tmpname)
		return errors.Wrapf(err, "renaming %s to %s", tmpname, path)
	}
	return nil
}

// List produces keys in lexicographic order.
func (s *FileStore) List(ctx context.Context, f func(string) error) error {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading dir %s", s.root)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f(name); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	Register("file", func(_ context.Context, cfg *config.Config) (Store, error) {
		if cfg.Store.Path == "" {
			return nil, errors.New("store.path is required for the file store")
		}
		return NewFileStore(cfg.Store.Path), nil
	})
}
