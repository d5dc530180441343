package broadcast

import (
	"testing"

	"RiskCockpit/internal/model"
)

func TestHub_DeliversToSubscribers(t *testing.T) {
	h := NewHub()
	events, cancel := h.Subscribe()
	defer cancel()

	h.SessionUpdate(model.SessionSnapshot{SessionID: "s1", Round: 3})
	evt := <-events
	if evt.Type != "state_update" {
		t.Fatalf("expected state_update, got %s", evt.Type)
	}
	snap, ok := evt.Payload.(model.SessionSnapshot)
	if !ok || snap.Round != 3 {
		t.Errorf("unexpected payload: %+v", evt.Payload)
	}

	h.TeamUpdate("alpha", model.Ledger{Team: "alpha"})
	evt = <-events
	if evt.Type != "team_data_update" {
		t.Errorf("expected team_data_update, got %s", evt.Type)
	}
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	h := NewHub()
	events, cancel := h.Subscribe()
	cancel()
	h.SessionUpdate(model.SessionSnapshot{})
	select {
	case evt := <-events:
		t.Errorf("cancelled subscriber received %+v", evt)
	default:
	}
}

func TestHub_SlowSubscriberDrops(t *testing.T) {
	h := NewHub()
	events, cancel := h.Subscribe()
	defer cancel()

	// Overfill the buffer; publish must not block.
	for i := 0; i < 50; i++ {
		h.SessionUpdate(model.SessionSnapshot{Round: i})
	}
	if len(events) != cap(events) {
		t.Errorf("expected a full buffer, got %d/%d", len(events), cap(events))
	}
}
