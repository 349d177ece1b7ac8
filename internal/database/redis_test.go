package database

import (
	"context"
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stemsi/student-records/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_NotConfigured(t *testing.T) {
	rdb, err := NewRedisClient(context.Background(), &config.Config{}, zerolog.New(io.Discard))
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestNewRedisClient_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{RedisURL: "redis://" + mr.Addr() + "/0"}
	rdb, err := NewRedisClient(context.Background(), cfg, zerolog.New(io.Discard))
	require.NoError(t, err)
	require.NotNil(t, rdb)
	defer rdb.Close()

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_BadURL(t *testing.T) {
	cfg := &config.Config{RedisURL: "not a url"}
	_, err := NewRedisClient(context.Background(), cfg, zerolog.New(io.Discard))
	assert.Error(t, err)
}
