package guestview

import (
	"net/url"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
)

const testBase = "https://host.test/app/index.html"

// fakeElement is a minimal host element. Observer records queue until
// flush; attribute-change notifications are synchronous once a controller
// is hooked.
type fakeElement struct {
	attrs     map[string]string
	base      *url.URL
	rect      entity.Rect
	computed  entity.Size
	client    entity.Size
	zoom      float64
	observers []*fakeObserver
	events    []port.HostEvent
	listeners []func(port.HostEvent)
	onChange  func(name, oldValue, newValue string)
}

type fakeObserver struct {
	name   string
	fn     func(string)
	queue  []string
	active bool
}

func (o *fakeObserver) TakeRecords() { o.queue = nil }

func (o *fakeObserver) Disconnect() {
	o.active = false
	o.queue = nil
}

func newFakeElement(attrs map[string]string) *fakeElement {
	base, _ := url.Parse(testBase)
	el := &fakeElement{attrs: map[string]string{}, base: base, zoom: 1}
	for k, v := range attrs {
		el.attrs[k] = v
	}
	return el
}

func (e *fakeElement) hook(c *Controller) { e.onChange = c.AttributeChanged }

func (e *fakeElement) GetAttribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *fakeElement) HasAttribute(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

func (e *fakeElement) SetAttribute(name, value string) {
	old := e.attrs[name]
	e.attrs[name] = value
	e.notify(name, old, value)
}

func (e *fakeElement) RemoveAttribute(name string) {
	old, ok := e.attrs[name]
	if !ok {
		return
	}
	delete(e.attrs, name)
	e.notify(name, old, "")
}

func (e *fakeElement) notify(name, old, value string) {
	for _, o := range e.observers {
		if o.active && o.name == name {
			o.queue = append(o.queue, old)
		}
	}
	if e.onChange != nil {
		e.onChange(name, old, value)
	}
}

func (e *fakeElement) ObserveAttribute(name string, fn func(string)) port.AttributeObserver {
	o := &fakeObserver{name: name, fn: fn, active: true}
	e.observers = append(e.observers, o)
	return o
}

// flush delivers pending observer records, including those queued while
// delivering.
func (e *fakeElement) flush() {
	for {
		progressed := false
		for _, o := range e.observers {
			if !o.active || len(o.queue) == 0 {
				continue
			}
			old := o.queue[0]
			o.queue = o.queue[1:]
			o.fn(old)
			progressed = true
		}
		if !progressed {
			return
		}
	}
}

func (e *fakeElement) ResolveURL(raw string) string {
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return e.base.ResolveReference(ref).String()
}

func (e *fakeElement) DocumentZoomFactor() float64     { return e.zoom }
func (e *fakeElement) BoundingClientRect() entity.Rect { return e.rect }
func (e *fakeElement) ComputedSize() entity.Size       { return e.computed }
func (e *fakeElement) ClientSize() entity.Size         { return e.client }

func (e *fakeElement) DispatchEvent(ev port.HostEvent) {
	e.events = append(e.events, ev)
	for _, fn := range e.listeners {
		fn(ev)
	}
}

func (e *fakeElement) listen(fn func(port.HostEvent)) {
	e.listeners = append(e.listeners, fn)
}

func (e *fakeElement) eventTypes() []entity.EventType {
	out := make([]entity.EventType, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.Type()
	}
	return out
}
