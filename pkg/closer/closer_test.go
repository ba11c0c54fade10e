package closer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloser_ClosesInLIFOOrder(t *testing.T) {
	c := NewCloser(0)

	var order []string
	for _, name := range []string{"db", "cache", "server"} {
		name := name
		c.Add(func(ctx context.Context) error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"server", "cache", "db"}, order)
}

func TestCloser_AggregatesErrors(t *testing.T) {
	c := NewCloser(0)

	c.Add(func(ctx context.Context) error { return errors.New("db close failed") })
	c.Add(func(ctx context.Context) error { return nil })
	c.Add(func(ctx context.Context) error { return errors.New("server close failed") })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db close failed")
	assert.Contains(t, err.Error(), "server close failed")
}

func TestCloser_CloseIsIdempotent(t *testing.T) {
	c := NewCloser(0)

	var calls int
	c.Add(func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCloser_ForcesRemainingOnContextCancel(t *testing.T) {
	c := NewCloser(time.Second)

	var forced bool
	c.Add(func(ctx context.Context) error {
		forced = true
		return nil
	})
	c.Add(func(ctx context.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted")
	assert.True(t, forced, "remaining funcs must still be closed forcibly")
}
