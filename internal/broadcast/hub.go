package broadcast

import (
	"sync"

	"RiskCockpit/internal/model"
)

// Event is one fan-out message for streaming clients.
type Event struct {
	Type    string `json:"type"` // "state_update" or "team_data_update"
	Payload any    `json:"payload"`
}

// Hub buffers events to subscribed observers (the SSE transport). Slow
// subscribers drop events rather than stall settlement.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers an observer channel. Call the returned cancel func
// when the client disconnects.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) publish(evt Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- evt:
		default: // drop for slow consumers
		}
	}
}

// SessionUpdate implements Broadcaster.
func (h *Hub) SessionUpdate(snap model.SessionSnapshot) {
	h.publish(Event{Type: "state_update", Payload: snap})
}

// TeamUpdate implements Broadcaster.
func (h *Hub) TeamUpdate(team string, l model.Ledger) {
	h.publish(Event{Type: "team_data_update", Payload: map[string]any{"name": team, "data": l}})
}
