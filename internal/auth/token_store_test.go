package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenStore_StoreRefreshTokenFailsWithoutRedis(t *testing.T) {
	store := NewTokenStore(nil)

	// Unlike cached lookups, a refresh token write must not be swallowed:
	// a token that was never persisted would 401 on every later refresh.
	err := store.StoreRefreshToken(context.Background(), "token-id", 1, "test@example.com", time.Minute)
	assert.Error(t, err)
}
