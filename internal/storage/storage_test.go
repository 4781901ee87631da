package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	gcs "cloud.google.com/go/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romangod6/kvblog/config"
	"github.com/romangod6/kvblog/internal/utils"
)

// readWrite exercises the Store contract against an empty store.
func readWrite(ctx context.Context, t *testing.T, s Store) {
	t.Helper()

	require.NoError(t, s.Initialize())

	_, err := s.Get(ctx, "000001")
	require.ErrorIs(t, err, ErrNotFound)

	keys, err := Keys(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, keys)

	want := map[string]string{
		"000003": `{"title":"c"}`,
		"000001": `{"title":"a"}`,
		"000002": "",
	}
	for k, v := range want {
		require.NoError(t, s.Put(ctx, k, v))
	}

	for k, v := range want {
		got, err := s.Get(ctx, k)
		require.NoError(t, err, k)
		assert.Equal(t, v, got, k)
	}

	keys, err = Keys(ctx, s)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"000001", "000002", "000003"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	// Overwrite.
	require.NoError(t, s.Put(ctx, "000001", `{"title":"z"}`))
	got, err := s.Get(ctx, "000001")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"z"}`, got)

	// A callback error stops enumeration.
	stop := errors.New("stop")
	var seen int
	err = s.List(ctx, func(string) error {
		seen++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
}

func TestMemoryStore(t *testing.T) {
	readWrite(context.Background(), t, NewMemoryStore())
}

func TestMemoryStoreCanceledList(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Put(ctx, "a", "1"))
	cancel()

	err := s.List(ctx, func(string) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileStore(t *testing.T) {
	readWrite(context.Background(), t, NewFileStore(filepath.Join(t.TempDir(), "articles")))
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(t.TempDir())
	require.NoError(t, s.Initialize())

	for _, key := range []string{"", "../x", "a/b", ".hidden"} {
		assert.Error(t, s.Put(ctx, key, "v"), key)
	}
}

func TestFileStoreIgnoresTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore(dir)
	require.NoError(t, s.Put(ctx, "000001", "v"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-000002-123"), []byte("partial"), 0644))

	keys, err := Keys(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001"}, keys)
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer s.Close()

	readWrite(context.Background(), t, s)
}

func TestPostgresStore(t *testing.T) {
	const connVar = "BLOG_PG_TESTING_CONN"
	connstr := os.Getenv(connVar)
	if connstr == "" {
		t.Skipf("to run %s, set %s to a valid Postgresql connection string", t.Name(), connVar)
	}

	table := fmt.Sprintf("kv_test_%d", os.Getpid())
	s, err := NewPostgresStore(connstr, table)
	require.NoError(t, err)
	defer func() {
		s.db.Exec("DROP TABLE " + s.table)
		s.Close()
	}()

	readWrite(context.Background(), t, s)
}

func TestGCSStore(t *testing.T) {
	const bucketVar = "BLOG_GCS_TESTING_BUCKET"
	bucket := os.Getenv(bucketVar)
	if bucket == "" {
		t.Skipf("to run %s, set %s to a writable bucket name", t.Name(), bucketVar)
	}

	ctx := context.Background()
	client, err := gcs.NewClient(ctx)
	require.NoError(t, err)
	defer client.Close()

	prefix := fmt.Sprintf("kvblog-test-%d/", os.Getpid())
	readWrite(ctx, t, NewGCSStore(client.Bucket(bucket), prefix))
}

func TestCachedStore(t *testing.T) {
	s, err := NewCachedStore(NewMemoryStore(), 2)
	require.NoError(t, err)
	readWrite(context.Background(), t, s)
}

func TestCachedStoreServesFromCache(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	s, err := NewCachedStore(inner, 10)
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "k", "v1"))

	// Bypass the cache; the cached value is still served.
	require.NoError(t, inner.Put(ctx, "k", "v2"))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)
}

func TestLoggingStore(t *testing.T) {
	var buf bytes.Buffer
	s := NewLoggingStore(NewMemoryStore(), utils.NewWriterLogger(&buf, true))
	readWrite(context.Background(), t, s)

	out := buf.String()
	assert.Contains(t, out, "store Put 000001")
	assert.Contains(t, out, "store Get 000001: not found")
	assert.Contains(t, out, "store List: 3 keys")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	var cfg config.Config
	cfg.Store.Type = "memory"
	cfg.Store.CacheSize = 16
	cfg.Store.LogOperations = true

	s, err := Open(ctx, &cfg, utils.Discard())
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &CachedStore{}, s)
	readWrite(ctx, t, s)

	cfg.Store.Type = "nope"
	_, err = Open(ctx, &cfg, utils.Discard())
	assert.Error(t, err)

	cfg.Store.Type = "file"
	cfg.Store.Path = ""
	_, err = Open(ctx, &cfg, utils.Discard())
	assert.Error(t, err)
}

func TestTypes(t *testing.T) {
	assert.Equal(t, []string{"file", "gcs", "memory", "postgres", "sqlite"}, Types())
}
