package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestEmitFansOutToLocalSubscribers(t *testing.T) {
	pub := NewLocalPublisher("render")
	ch := pub.Subscribe("test", 4)
	defer pub.Unsubscribe("test")

	data := FragmentRenderedData{Tag: "break", Bytes: 19}
	if err := pub.Emit(context.Background(), FragmentRendered, "req-1", data); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	select {
	case env := <-ch:
		if env.Type != FragmentRendered {
			t.Errorf("type = %q, want %q", env.Type, FragmentRendered)
		}
		if env.Source != "render" {
			t.Errorf("source = %q, want %q", env.Source, "render")
		}
		if env.RequestID != "req-1" {
			t.Errorf("request_id = %q, want %q", env.RequestID, "req-1")
		}
		if env.ID == "" {
			t.Error("envelope ID should be set")
		}

		var payload FragmentRenderedData
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if payload != data {
			t.Errorf("payload = %+v, want %+v", payload, data)
		}
	default:
		t.Fatal("expected an envelope on the subscriber channel")
	}
}

func TestEmitDropsWhenSubscriberFull(t *testing.T) {
	pub := NewLocalPublisher("render")
	ch := pub.Subscribe("slow", 1)
	defer pub.Unsubscribe("slow")

	for i := 0; i < 3; i++ {
		if err := pub.Emit(context.Background(), FragmentRejected, "", FragmentRejectedData{Tag: "mark", Error: "x"}); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}

	if len(ch) != 1 {
		t.Errorf("buffered = %d, want 1", len(ch))
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	pub := NewLocalPublisher("render")
	ch := pub.Subscribe("gone", 0)
	pub.Unsubscribe("gone")

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Unsubscribe")
	}

	// Emitting with no subscribers must not fail.
	if err := pub.Emit(context.Background(), PresetsReloaded, "", PresetsReloadedData{Dir: "/tmp"}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
}

func TestEventTypeConstants(t *testing.T) {
	types := []EventType{FragmentRendered, FragmentRejected, PresetsReloaded}

	seen := make(map[EventType]bool)
	for _, et := range types {
		if et == "" {
			t.Error("empty event type constant")
		}
		if seen[et] {
			t.Errorf("duplicate event type: %q", et)
		}
		seen[et] = true
	}
}
