// Package emitter is the process wide channel for errors that have no caller
// left to return to, such as single writes of a batch that already failed.
package emitter

import (
	"context"

	log "github.com/sirupsen/logrus"
)

const DefaultBuffer = 64

type Emitter struct {
	errs chan error
}

func New(buffer int) *Emitter {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Emitter{errs: make(chan error, buffer)}
}

// Emit never blocks. When the buffer is full the error is logged and dropped.
func (e *Emitter) Emit(err error) {
	if err == nil {
		return
	}
	select {
	case e.errs <- err:
	default:
		log.Warnf("error channel is full, dropping: %v", err)
	}
}

// Listen calls fn for every emitted error until ctx is done.
func (e *Emitter) Listen(ctx context.Context, fn func(error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-e.errs:
			fn(err)
		}
	}
}
