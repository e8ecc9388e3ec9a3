package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Addr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "localhost:6379", Options{Host: "localhost"}.Addr())
	assert.Equal(t, "redis:6380", Options{Host: "redis", Port: "6380"}.Addr())
	assert.False(t, Options{}.Enabled())
}

func TestNewRedisClient_Success(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(context.Background(), Options{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	defer func() { _ = rdb.Close() }()

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Disabled(t *testing.T) {
	t.Parallel()

	rdb, err := NewRedisClient(context.Background(), Options{})
	assert.Error(t, err)
	assert.Nil(t, rdb)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	rdb, err := NewRedisClient(context.Background(), Options{Host: host, Port: port})
	assert.Error(t, err)
	assert.Nil(t, rdb)
}
