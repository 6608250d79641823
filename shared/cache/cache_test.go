package cache_test

import (
	"backoffice/infras/otel/mocks"
	"backoffice/shared/cache"
	cacheMocks "backoffice/shared/cache/mocks"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "calendar:range:2025-06-01:2025-06-30", cache.BuildKey("calendar", "range", "2025-06-01", "2025-06-30"))
	assert.Equal(t, "tags", cache.BuildKey("tags"))
}

func TestRedisCache_GetReportsLookupFamily(t *testing.T) {
	ctrl := gomock.NewController(t)
	observer := cacheMocks.NewMockLookupObserver(ctrl)
	observer.EXPECT().CacheLookup("tags", false)

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	c := cache.NewRedisCache(client, mocks.NewOtel(), observer)

	var out []string
	err := c.Get(context.Background(), cache.BuildKey("tags", "all"), &out)

	require.Error(t, err)
	assert.False(t, errors.Is(err, cache.Nil))
}
