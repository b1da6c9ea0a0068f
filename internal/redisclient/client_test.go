package redisclient

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), Config{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = New(context.Background(), Config{URL: "http://nope"})
	require.Error(t, err)
}
