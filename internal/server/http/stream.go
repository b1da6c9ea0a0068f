package internalhttp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kiruthikag2611/Planify/internal/storage"
	log "github.com/sirupsen/logrus"
)

type streamMessage struct {
	event string
	data  interface{}
}

// streamEvents sends the caller's events as server-sent events: one "events"
// message per changed snapshot and an "error" message per failed read. The
// subscription ends with the request.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, fmt.Errorf("streaming is not supported"))
		return
	}
	ctx := r.Context()

	messages := make(chan streamMessage, 16)
	send := func(m streamMessage) {
		select {
		case messages <- m:
		case <-ctx.Done():
		}
	}
	unsubscribe := s.app.Subscribe(ctx, user(r), filterFrom(r),
		func(events []storage.Event) {
			send(streamMessage{event: "events", data: map[string][]storage.Event{"events": events}})
		},
		func(err error) {
			_, resp := describeError(err)
			send(streamMessage{event: "error", data: resp})
		},
	)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case m := <-messages:
			data, err := json.Marshal(m.data)
			if err != nil {
				log.Errorf("failed to encode stream message: %v", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", m.event, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
