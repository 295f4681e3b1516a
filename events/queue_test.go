package events

import (
	"sync"
	"testing"
)

func TestQueuePushConsumeFIFO(t *testing.T) {
	q := NewQueue()

	for i := 1; i <= 5; i++ {
		q.Push(Event{Type: EventParameterChanged, Payload: i})
	}

	got := q.Consume()
	if len(got) != 5 {
		t.Fatalf("expected 5 events, got %d", len(got))
	}
	for i, ev := range got {
		if ev.Payload.(int) != i+1 {
			t.Errorf("event %d out of order: %v", i, ev.Payload)
		}
	}
}

func TestQueueConsumeEmptyReturnsNil(t *testing.T) {
	q := NewQueue()
	if got := q.Consume(); got != nil {
		t.Errorf("expected nil on empty queue, got %v", got)
	}
}

func TestQueueConsumeDrains(t *testing.T) {
	q := NewQueue()
	q.Push(Event{Type: EventStateEntered})
	q.Consume()

	if got := q.Consume(); got != nil {
		t.Errorf("second consume should be empty, got %v", got)
	}
}

func TestQueueOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()
	total := QueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(Event{Type: EventParameterChanged, Payload: i})
	}

	got := q.Consume()
	if len(got) != QueueSize {
		t.Fatalf("expected %d events after overflow, got %d", QueueSize, len(got))
	}
	if got[len(got)-1].Payload.(int) != total-1 {
		t.Errorf("newest event lost: last payload %v", got[len(got)-1].Payload)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers = 8
	const perProducer = 16 // stays under QueueSize so nothing is dropped

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(Event{Type: EventParameterChanged, Payload: p})
			}
		}(p)
	}
	wg.Wait()

	got := q.Consume()
	if len(got) != producers*perProducer {
		t.Errorf("expected %d events, got %d", producers*perProducer, len(got))
	}
}

// typedHandler records events for declared types
type typedHandler struct {
	types  []EventType
	events []Event
}

func (h *typedHandler) HandleEvent(ev Event) { h.events = append(h.events, ev) }
func (h *typedHandler) EventTypes() []EventType { return h.types }

func TestRouterDispatchesByType(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	stateHandler := &typedHandler{types: []EventType{EventStateEntered}}
	paramHandler := &typedHandler{types: []EventType{EventParameterChanged}}
	r.Register(stateHandler)
	r.Register(paramHandler)

	q.Push(Event{Type: EventStateEntered})
	q.Push(Event{Type: EventParameterChanged})
	q.Push(Event{Type: EventParameterChanged})
	r.DispatchAll()

	if len(stateHandler.events) != 1 {
		t.Errorf("state handler got %d events, want 1", len(stateHandler.events))
	}
	if len(paramHandler.events) != 2 {
		t.Errorf("param handler got %d events, want 2", len(paramHandler.events))
	}
}

func TestRouterRegisterAllReceivesEverything(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	sink := &typedHandler{}
	r.RegisterAll(sink)

	q.Push(Event{Type: EventStateEntered})
	q.Push(Event{Type: EventTransitionCompleted})
	q.Push(Event{Type: EventParameterMapped})
	r.DispatchAll()

	if len(sink.events) != 3 {
		t.Errorf("catch-all handler got %d events, want 3", len(sink.events))
	}
}

func TestRouterHasHandlers(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	if r.HasHandlers(EventStateEntered) {
		t.Error("fresh router reports handlers")
	}
	r.Register(&typedHandler{types: []EventType{EventStateEntered}})
	if !r.HasHandlers(EventStateEntered) {
		t.Error("registered type not reported")
	}
	if r.HasHandlers(EventParameterMapped) {
		t.Error("unregistered type reported")
	}
	r.RegisterAll(&typedHandler{})
	if !r.HasHandlers(EventParameterMapped) {
		t.Error("catch-all should make every type handled")
	}
}

func TestRouterMultipleHandlersInRegistrationOrder(t *testing.T) {
	q := NewQueue()
	r := NewRouter(q)

	var order []string
	first := &orderedHandler{name: "first", order: &order}
	second := &orderedHandler{name: "second", order: &order}
	r.Register(first)
	r.Register(second)

	q.Push(Event{Type: EventStateEntered})
	r.DispatchAll()

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("dispatch order: %v", order)
	}
}

type orderedHandler struct {
	name  string
	order *[]string
}

func (h *orderedHandler) HandleEvent(Event) { *h.order = append(*h.order, h.name) }
func (h *orderedHandler) EventTypes() []EventType {
	return []EventType{EventStateEntered}
}
