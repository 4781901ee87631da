package storage

import (
	"context"
	stderrs "errors"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/romangod6/kvblog/config"
)

var _ Store = &GCSStore{}

// GCSStore keeps each key as an object named prefix+key in a bucket.
type GCSStore struct {
	client *gcs.Client // nil when the caller owns the client
	bucket *gcs.BucketHandle
	prefix string
}

func NewGCSStore(bucket *gcs.BucketHandle, prefix string) *GCSStore {
	return &GCSStore{bucket: bucket, prefix: prefix}
}

func (s *GCSStore) Initialize() error { return nil }

func (s *GCSStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *GCSStore) Get(ctx context.Context, key string) (string, error) {
	name := s.prefix + key
	r, err := s.bucket.Object(name).NewReader(ctx)
	if stderrs.Is(err, gcs.ErrObjectNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "opening object %s", name)
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrapf(err, "reading contents of object %s", name)
	}
	return string(b), nil
}

func (s *GCSStore) Put(ctx context.Context, key, value string) error {
	name := s.prefix + key
	w := s.bucket.Object(name).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := io.WriteString(w, value); err != nil {
		w.Close()
		return errors.Wrapf(err, "writing object %s", name)
	}
	return errors.Wrapf(w.Close(), "finalizing object %s", name)
}

// List produces keys in lexicographic order.
func (s *GCSStore) List(ctx context.Context, f func(string) error) error {
	iter := s.bucket.Objects(ctx, &gcs.Query{Prefix: s.prefix})
	for {
		obj, err := iter.Next()
		if stderrs.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "iterating objects")
		}
		key := strings.TrimPrefix(obj.Name, s.prefix)
		if key == "" {
			continue
		}
		if err := f(key); err != nil {
			return err
		}
	}
}

func init() {
	Register("gcs", func(ctx context.Context, cfg *config.Config) (Store, error) {
		if cfg.Store.Bucket == "" {
			return nil, errors.New("store.bucket is required for the gcs store")
		}

		var opts []option.ClientOption
		if cfg.Store.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Store.CredentialsFile))
		}

		client, err := gcs.NewClient(ctx, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "creating storage client")
		}

		s := NewGCSStore(client.Bucket(cfg.Store.Bucket), cfg.Store.Prefix)
		s.client = client
		return s, nil
	})
}
