package ws

import (
	"encoding/json"
	"testing"

	"gaia_backend/internal/domain"
)

func TestHubPublishToOwnerOnly(t *testing.T) {
	hub := NewHub()

	ana := NewClient(1, nil, hub)
	bob := NewClient(2, nil, hub)
	hub.Register(ana)
	hub.Register(bob)

	task := &domain.Task{ID: 5, UserID: 1, Title: "write spec", Status: domain.StatusTodo}
	hub.Publish(1, Event{Type: "task_created", Task: task})

	select {
	case msg := <-ana.Send:
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ev.Type != "task_created" || ev.Task.ID != 5 {
			t.Fatalf("event = %+v", ev)
		}
	default:
		t.Fatalf("owner received nothing")
	}

	select {
	case msg := <-bob.Send:
		t.Fatalf("other user received %s", msg)
	default:
	}
}

func TestHubMultipleTabs(t *testing.T) {
	hub := NewHub()

	tab1 := NewClient(1, nil, hub)
	tab2 := NewClient(1, nil, hub)
	hub.Register(tab1)
	hub.Register(tab2)

	if hub.ClientCount() != 2 {
		t.Fatalf("count = %d; want 2", hub.ClientCount())
	}

	hub.Publish(1, Event{Type: "task_deleted", TaskID: 3})

	for i, tab := range []*Client{tab1, tab2} {
		select {
		case <-tab.Send:
		default:
			t.Fatalf("tab %d received nothing", i+1)
		}
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()

	c := NewClient(1, nil, hub)
	hub.Register(c)
	hub.Unregister(c)

	if hub.ClientCount() != 0 {
		t.Fatalf("count = %d; want 0", hub.ClientCount())
	}

	// publish after disconnect must not panic or block
	hub.Publish(1, Event{Type: "task_deleted", TaskID: 1})
}
