// Package simelement provides an in-memory host element for driving guest
// view controllers without a UI framework.
package simelement

import (
	"net/url"
	"sort"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
)

// Listener receives host events dispatched on the element.
type Listener = func(ev port.HostEvent)

// ChangeFunc mirrors the host framework's synchronous attribute-change
// notification.
type ChangeFunc = func(name, oldValue, newValue string)

// Element implements port.HostElement. Attribute observers are queued and
// only delivered by Flush, like mutation records delivered at the end of a
// task. It is not safe for concurrent use.
type Element struct {
	attrs map[string]string

	base       *url.URL
	zoom       float64
	rect       entity.Rect
	computed   entity.Size
	clientSize entity.Size

	observers []*observer
	onChange  ChangeFunc

	listeners map[entity.EventType][]Listener
	catchAll  []Listener
	events    []port.HostEvent
}

var _ port.SimulatedElement = (*Element)(nil)

// Option configures an Element.
type Option func(*Element)

// WithBaseURL sets the document base used by ResolveURL.
func WithBaseURL(base *url.URL) Option {
	return func(e *Element) { e.base = base }
}

// WithSize sets the bounding box, computed size and client size at once.
func WithSize(size entity.Size) Option {
	return func(e *Element) { e.Resize(size) }
}

// WithDocumentZoom sets the embedding document zoom factor.
func WithDocumentZoom(factor float64) Option {
	return func(e *Element) { e.zoom = factor }
}

// WithAttributes seeds attributes present before the controller exists.
func WithAttributes(attrs map[string]string) Option {
	return func(e *Element) {
		for k, v := range attrs {
			e.attrs[k] = v
		}
	}
}

// New creates an element with no attributes, a zero-size box and a zoom
// factor of 1.
func New(opts ...Option) *Element {
	e := &Element{
		attrs:     make(map[string]string),
		zoom:      entity.ZoomDefault,
		listeners: make(map[entity.EventType][]Listener),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnAttributeChanged installs the synchronous change notification.
func (e *Element) OnAttributeChanged(fn ChangeFunc) {
	e.onChange = fn
}

func (e *Element) GetAttribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

func (e *Element) SetAttribute(name, value string) {
	old := e.attrs[name]
	e.attrs[name] = value
	e.changed(name, old, value)
}

func (e *Element) RemoveAttribute(name string) {
	old, ok := e.attrs[name]
	if !ok {
		return
	}
	delete(e.attrs, name)
	e.changed(name, old, "")
}

func (e *Element) changed(name, oldValue, newValue string) {
	for _, o := range e.observers {
		if o.active && o.name == name {
			o.queue = append(o.queue, oldValue)
		}
	}
	if e.onChange != nil {
		e.onChange(name, oldValue, newValue)
	}
}

// Attributes returns a copy of the attribute map.
func (e *Element) Attributes() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// AttributeNames lists present attributes in sorted order.
func (e *Element) AttributeNames() []string {
	names := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ResolveURL resolves raw against the base URL. Unparseable input and
// elements without a base return raw unchanged.
func (e *Element) ResolveURL(raw string) string {
	if e.base == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return e.base.ResolveReference(ref).String()
}

func (e *Element) DocumentZoomFactor() float64 { return e.zoom }

func (e *Element) BoundingClientRect() entity.Rect { return e.rect }

func (e *Element) ComputedSize() entity.Size { return e.computed }

func (e *Element) ClientSize() entity.Size { return e.clientSize }

// SetBoundingClientRect overrides the layout box only.
func (e *Element) SetBoundingClientRect(rect entity.Rect) { e.rect = rect }

// SetComputedSize overrides the computed style size only.
func (e *Element) SetComputedSize(size entity.Size) { e.computed = size }

// Resize updates every geometry source to size, as a completed layout would.
func (e *Element) Resize(size entity.Size) {
	e.rect = entity.Rect{X: e.rect.X, Y: e.rect.Y, Width: float64(size.Width), Height: float64(size.Height)}
	e.computed = size
	e.clientSize = size
}
