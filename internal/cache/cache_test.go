package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_NilClientFailsSafe(t *testing.T) {
	ctx := context.Background()
	var c *Client

	data, err := c.Get(ctx, "key")
	assert.Nil(t, data)
	assert.NoError(t, err)

	assert.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "key"))
}

func TestClient_SetStrictReportsUnavailable(t *testing.T) {
	ctx := context.Background()
	var c *Client

	err := c.SetStrict(ctx, "key", []byte("value"), time.Minute)
	assert.ErrorIs(t, err, ErrUnavailable)

	empty := &Client{}
	err = empty.SetStrict(ctx, "key", []byte("value"), time.Minute)
	assert.ErrorIs(t, err, ErrUnavailable)
}
