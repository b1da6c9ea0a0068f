// Package feed keeps per-user event subscriptions live: every subscriber gets
// the current snapshot at once and again whenever the owner's events change.
package feed

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/kiruthikag2611/Planify/internal/storage"
	log "github.com/sirupsen/logrus"
)

const loadTimeout = 10 * time.Second

type Loader func(ctx context.Context, f storage.Filter) ([]storage.Event, error)

type (
	DataFunc  func([]storage.Event)
	ErrorFunc func(error)
)

type Hub struct {
	load     Loader
	notifier Notifier

	mu   sync.Mutex
	seq  int
	subs map[int]*subscription
}

// subscription is refreshed by its own goroutine so a slow consumer only
// delays itself. dirty coalesces change signals that arrive while a refresh
// is running.
type subscription struct {
	filter    storage.Filter
	onData    DataFunc
	onError   ErrorFunc
	dirty     chan struct{}
	stop      chan struct{}
	last      []storage.Event
	delivered bool
}

func NewHub(load Loader, notifier Notifier) *Hub {
	return &Hub{load: load, notifier: notifier, subs: make(map[int]*subscription)}
}

// Run dispatches change signals until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	return h.notifier.Listen(ctx, h.refreshOwner)
}

// Changed announces that the events of ownerID were written.
func (h *Hub) Changed(ctx context.Context, ownerID string) {
	if err := h.notifier.Publish(ctx, ownerID); err != nil {
		log.Warnf("failed to publish change of %s: %v", ownerID, err)
	}
}

// Subscribe delivers the current snapshot before returning. The returned
// function stops delivery; it is also called when ctx is done. Callbacks run
// without hub locks held and may call the returned function.
func (h *Hub) Subscribe(ctx context.Context, f storage.Filter, onData DataFunc, onError ErrorFunc) func() {
	sub := &subscription{
		filter:  f,
		onData:  onData,
		onError: onError,
		dirty:   make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}

	h.mu.Lock()
	h.seq++
	id := h.seq
	h.subs[id] = sub
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(sub.stop)
		})
	}

	sub.refresh(ctx, h.load)
	go sub.run(ctx, h.load)
	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-sub.stop:
		}
	}()
	return unsubscribe
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// refreshOwner marks the owner's subscriptions dirty and never blocks.
func (h *Hub) refreshOwner(ownerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		if s.filter.OwnerID != ownerID {
			continue
		}
		select {
		case s.dirty <- struct{}{}:
		default:
		}
	}
}

func (s *subscription) run(ctx context.Context, load Loader) {
	for {
		select {
		case <-s.stop:
			return
		case <-s.dirty:
			s.refresh(ctx, load)
		}
	}
}

func (s *subscription) stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

func (s *subscription) refresh(ctx context.Context, load Loader) {
	if s.stopped() {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
	defer cancel()
	events, err := load(ctx, s.filter)
	if s.stopped() {
		return
	}
	if err != nil {
		if s.onError != nil {
			s.onError(err)
		}
		return
	}
	if s.delivered && reflect.DeepEqual(s.last, events) {
		return
	}
	s.last = events
	s.delivered = true
	s.onData(events)
}
