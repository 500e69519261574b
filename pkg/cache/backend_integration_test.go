//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with a live server:
//
//	BRACKETGEN_TEST_REDIS_URL=redis://localhost:6379/0 \
//	BRACKETGEN_TEST_MONGO_URI=mongodb://localhost:27017 \
//	go test -tags integration ./pkg/cache/...

func exerciseBackend(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	_, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, key, []byte("payload"), time.Minute))
	data, hit, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("payload"), data)

	require.NoError(t, c.Delete(ctx, key))
	_, hit, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCacheIntegration(t *testing.T) {
	url := os.Getenv("BRACKETGEN_TEST_REDIS_URL")
	if url == "" {
		t.Skip("BRACKETGEN_TEST_REDIS_URL not set")
	}
	c, err := NewRedisCache(context.Background(), url)
	require.NoError(t, err)
	defer c.Close()
	exerciseBackend(t, c)
}

func TestMongoCacheIntegration(t *testing.T) {
	uri := os.Getenv("BRACKETGEN_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("BRACKETGEN_TEST_MONGO_URI not set")
	}
	c, err := NewMongoCache(context.Background(), uri, "bracketgen_test", "artifacts")
	require.NoError(t, err)
	defer c.Close()
	exerciseBackend(t, c)
}
