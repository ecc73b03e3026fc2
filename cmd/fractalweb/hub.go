package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// event is one notification pushed to browsers.
type event struct {
	// Type is "busy" or "done".
	Type string `json:"type"`

	// Target is the strategy name of the target that changed state.
	Target string `json:"target"`

	// Busy is the aggregate count of targets still rendering.
	Busy int `json:"busy"`
}

// hub fans render notifications out to connected websocket clients.
type hub struct {
	mu   sync.Mutex
	subs map[chan event]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan event]struct{})}
}

// broadcast delivers an event to every subscriber. Slow clients drop
// events instead of blocking the render callbacks.
func (h *hub) broadcast(ev event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *hub) subscribe() chan event {
	ch := make(chan event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(ch chan event) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// handler upgrades the connection and streams events until the client
// goes away. The stream is read-only busy/done state without
// credentials, so connections are accepted from any origin.
func (h *hub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.Close(websocket.StatusNormalClosure, "")

		ch := h.subscribe()
		defer h.unsubscribe(ch)

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-ch:
				data, err := json.Marshal(ev)
				if err != nil {
					log.Println(err)
					return
				}
				writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				err = c.Write(writeCtx, websocket.MessageText, data)
				cancel()
				if err != nil {
					return
				}
			}
		}
	}
}
