package port

import (
	"github.com/bnema/guestview/internal/domain/entity"
)

// HostEvent is an event dispatched on the host element.
type HostEvent interface {
	Type() entity.EventType
	Cancelable() bool
	// PreventDefault marks a cancelable event as cancelled. It is a no-op
	// on events that are not cancelable.
	PreventDefault()
	DefaultPrevented() bool
}

// AttributeObserver is a registration made with HostElement.ObserveAttribute.
type AttributeObserver interface {
	// TakeRecords drops every queued, not yet delivered change record.
	TakeRecords()
	// Disconnect stops delivery.
	Disconnect()
}

// HostElement is the container element that embeds a guest. Implementations
// belong to the host UI framework; the guest view controller only reads and
// writes attributes, queries geometry and dispatches events through it.
type HostElement interface {
	// --- Attributes ---

	GetAttribute(name string) (string, bool)
	HasAttribute(name string) bool
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	// ObserveAttribute delivers the previous raw value every time the named
	// attribute is written. Delivery may be deferred until the framework
	// flushes its observer queue.
	ObserveAttribute(name string, fn func(oldValue string)) AttributeObserver

	// --- Document ---

	// ResolveURL resolves raw against the document base URL.
	ResolveURL(raw string) string
	// DocumentZoomFactor is the zoom factor of the embedding document.
	DocumentZoomFactor() float64

	// --- Geometry ---

	BoundingClientRect() entity.Rect
	// ComputedSize is the computed style width/height, used when layout
	// has not produced a bounding box yet.
	ComputedSize() entity.Size
	ClientSize() entity.Size

	// --- Events ---

	DispatchEvent(ev HostEvent)
}
