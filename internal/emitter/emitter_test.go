package emitter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEmitter(t *testing.T) {
	e := New(2)
	first := errors.New("first")
	e.Emit(first)
	e.Emit(nil)
	e.Emit(errors.New("second"))
	e.Emit(errors.New("dropped"))

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan error, 3)
	done := make(chan struct{})
	go func() {
		e.Listen(ctx, func(err error) { received <- err })
		close(done)
	}()

	require.ErrorIs(t, <-received, first)
	require.EqualError(t, <-received, "second")
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
	require.Empty(t, received)
}
