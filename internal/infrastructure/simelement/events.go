package simelement

import (
	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
)

// AddEventListener registers fn for events of type t.
func (e *Element) AddEventListener(t entity.EventType, fn Listener) {
	e.listeners[t] = append(e.listeners[t], fn)
}

// AddAnyListener registers fn for every dispatched event.
func (e *Element) AddAnyListener(fn Listener) {
	e.catchAll = append(e.catchAll, fn)
}

// DispatchEvent records ev and runs typed listeners before catch-all ones.
func (e *Element) DispatchEvent(ev port.HostEvent) {
	e.events = append(e.events, ev)
	for _, fn := range e.listeners[ev.Type()] {
		fn(ev)
	}
	for _, fn := range e.catchAll {
		fn(ev)
	}
}

// Events returns every event dispatched so far.
func (e *Element) Events() []port.HostEvent {
	out := make([]port.HostEvent, len(e.events))
	copy(out, e.events)
	return out
}

// EventTypes returns the type of every event dispatched so far.
func (e *Element) EventTypes() []entity.EventType {
	out := make([]entity.EventType, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.Type()
	}
	return out
}

// DrainEvents returns and clears the event log.
func (e *Element) DrainEvents() []port.HostEvent {
	out := e.events
	e.events = nil
	return out
}
