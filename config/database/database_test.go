package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shortInterval(t *testing.T) {
	t.Helper()
	prev := pingInterval
	pingInterval = time.Millisecond
	t.Cleanup(func() { pingInterval = prev })
}

func TestPingWithRetryRecovers(t *testing.T) {
	shortInterval(t)

	calls := 0
	err := pingWithRetry(context.Background(), "test", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestPingWithRetryGivesUp(t *testing.T) {
	shortInterval(t)

	calls := 0
	boom := errors.New("connection refused")
	err := pingWithRetry(context.Background(), "test", func(context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, pingAttempts, calls)
}

func TestPingWithRetryStopsOnCancel(t *testing.T) {
	prev := pingInterval
	pingInterval = time.Hour
	t.Cleanup(func() { pingInterval = prev })

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := pingWithRetry(ctx, "test", func(context.Context) error {
		calls++
		cancel()
		return errors.New("down")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "0001_init.up.sql")
	assert.Contains(t, names, "0001_init.down.sql")
}
