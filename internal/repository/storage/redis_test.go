package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRedisStorage(t *testing.T) {
	t.Run("Fails when nothing listens", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		// When: connecting to a closed port
		redisStorage, err := NewRedisStorage(ctx, "127.0.0.1:1")

		// Then: the connection error is returned
		require.Error(t, err)
		require.Nil(t, redisStorage)
	})
}
