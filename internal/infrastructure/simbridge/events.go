package simbridge

import (
	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
)

type delivery struct {
	guestID   entity.GuestInstanceID
	eventType string
	payload   map[string]any
}

// enqueue queues a typed event for g. Callers hold b.mu.
func (b *Bridge) enqueue(g *guest, ev entity.GuestEvent) {
	eventType, payload := entity.EncodeGuestEvent(ev)
	b.queue = append(b.queue, delivery{guestID: g.id, eventType: eventType, payload: payload})
}

// Emit queues a raw event as if the guest had produced it. Unlike bridge
// commands it accepts any type and payload.
func (b *Bridge) Emit(id entity.GuestInstanceID, eventType string, payload map[string]any) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.guests[id]; !ok {
		return false
	}
	b.queue = append(b.queue, delivery{guestID: id, eventType: eventType, payload: payload})
	return true
}

// Pending returns the number of undelivered events.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Pump delivers queued events in order until the queue is empty, including
// events queued by handlers. It returns the number of deliveries made.
// Events of guests without a handler are dropped.
func (b *Bridge) Pump() int {
	delivered := 0
	for {
		d, handler, ok := b.next()
		if !ok {
			return delivered
		}
		if handler == nil {
			continue
		}
		handler(d.eventType, d.payload)
		delivered++
	}
}

func (b *Bridge) next() (delivery, port.GuestEventHandler, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.queue) == 0 {
		return delivery{}, nil, false
	}
	d := b.queue[0]
	b.queue = b.queue[1:]

	g, ok := b.guests[d.guestID]
	if !ok {
		return d, nil, true
	}
	handler := g.handler
	if g.destroyed && d.eventType == string(entity.EventDestroyed) {
		delete(b.guests, d.guestID)
	}
	return d, handler, true
}
