package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, hit, "NullCache.Get should always miss")
	assert.Nil(t, data)

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Hour))
	_, hit, _ = c.Get(ctx, "key")
	assert.False(t, hit, "NullCache should not store data")

	assert.NoError(t, c.Delete(ctx, "key"))
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	_, hit, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "key", []byte("%PDF-1.3"), time.Hour))
	data, hit, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("%PDF-1.3"), data)

	require.NoError(t, c.Set(ctx, "key", []byte("v2"), 0))
	data, _, _ = c.Get(ctx, "key")
	assert.Equal(t, []byte("v2"), data, "Set should overwrite")

	require.NoError(t, c.Delete(ctx, "key"))
	_, hit, _ = c.Get(ctx, "key")
	assert.False(t, hit, "entry should be gone after Delete")
	assert.NoError(t, c.Delete(ctx, "key"), "deleting a missing key is not an error")
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	require.NoError(t, c.Set(ctx, "key", []byte("x"), time.Minute))

	now = now.Add(30 * time.Second)
	_, hit, _ := c.Get(ctx, "key")
	assert.True(t, hit, "entry should live within its ttl")

	now = now.Add(time.Minute)
	_, hit, _ = c.Get(ctx, "key")
	assert.False(t, hit, "entry should expire")
	_, err = os.Stat(c.path("key"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "expired entry should be removed")
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	path := c.path("key")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, hit, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), 0))
	}
	n, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = c.Clear()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, hit, _ := c.Get(ctx, "a")
	assert.False(t, hit)
	n, err = c.Len()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	assert.Equal(t, h1, Hash([]byte("hello")), "Hash should be deterministic")
	assert.NotEqual(t, h1, Hash([]byte("world")))
	assert.Len(t, h1, 64)

	j1, err := HashJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	j2, _ := HashJSON(map[string]int{"a": 1})
	assert.Equal(t, j1, j2)

	_, err = HashJSON(func() {})
	assert.Error(t, err)
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	pdf := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "pdf", VizType: "bracket"})
	svg := k.ArtifactKey("abc", ArtifactKeyOpts{Format: "svg", VizType: "bracket"})
	other := k.ArtifactKey("def", ArtifactKeyOpts{Format: "pdf", VizType: "bracket"})

	assert.NotEqual(t, pdf, svg, "format should change the key")
	assert.NotEqual(t, pdf, other, "bracket hash should change the key")
	assert.Equal(t, pdf, k.ArtifactKey("abc", ArtifactKeyOpts{Format: "pdf", VizType: "bracket"}))
	assert.Regexp(t, `^artifact:[0-9a-f]{64}$`, pdf)
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(nil, "staging:")
	opts := ArtifactKeyOpts{Format: "png"}

	assert.Equal(t, "staging:"+inner.ArtifactKey("h", opts), scoped.ArtifactKey("h", opts))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     Config
		want    any
		wantErr error
	}{
		{"empty selects null", Config{}, &NullCache{}, nil},
		{"empty with dir selects file", Config{Dir: dir}, &FileCache{}, nil},
		{"none", Config{Backend: "none", Dir: dir}, &NullCache{}, nil},
		{"file", Config{Backend: "FILE", Dir: dir}, &FileCache{}, nil},
		{"file without dir", Config{Backend: "file"}, nil, ErrMissingAddress},
		{"redis without url", Config{Backend: "redis"}, nil, ErrMissingAddress},
		{"mongo without uri", Config{Backend: "mongo"}, nil, ErrMissingAddress},
		{"unknown", Config{Backend: "memcached"}, nil, ErrUnknownBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			defer c.Close()
			assert.IsType(t, tt.want, c)
		})
	}
}

func TestRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0")
	require.Error(t, err)
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "redis", be.Backend)
	assert.Equal(t, "ping", be.Op)
}

func TestRedisBadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "http://not-redis")
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "open", be.Op)
}
