package store

import (
	"context"
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenUnknownDriver(t *testing.T) {
	s, err := Open(context.Background(), &config.Config{Driver: "redis"})
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), `"redis"`)
}

func TestCloseWithoutConnection(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.Close())
}
