package simelement

import "github.com/bnema/guestview/internal/application/port"

type observer struct {
	name   string
	fn     func(oldValue string)
	queue  []string
	active bool
}

func (o *observer) TakeRecords() {
	o.queue = nil
}

func (o *observer) Disconnect() {
	o.active = false
	o.queue = nil
}

// ObserveAttribute registers a queued observer for name.
func (e *Element) ObserveAttribute(name string, fn func(oldValue string)) port.AttributeObserver {
	o := &observer{name: name, fn: fn, active: true}
	e.observers = append(e.observers, o)
	return o
}

// Pending returns the number of queued, undelivered records.
func (e *Element) Pending() int {
	n := 0
	for _, o := range e.observers {
		n += len(o.queue)
	}
	return n
}

// Flush delivers queued records in registration order until no observer has
// pending records, including records queued during delivery. It returns the
// number of records delivered.
func (e *Element) Flush() int {
	delivered := 0
	for {
		progressed := false
		for _, o := range e.observers {
			if !o.active || len(o.queue) == 0 {
				continue
			}
			old := o.queue[0]
			o.queue = o.queue[1:]
			o.fn(old)
			delivered++
			progressed = true
		}
		if !progressed {
			return delivered
		}
	}
}
