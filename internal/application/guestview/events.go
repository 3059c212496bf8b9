package guestview

import (
	"errors"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
	"github.com/bnema/guestview/internal/logging"
)

// Event is a host-visible event carrying a typed guest payload.
type Event struct {
	eventType        entity.EventType
	detail           entity.GuestEvent
	cancelable       bool
	defaultPrevented bool
}

var _ port.HostEvent = (*Event)(nil)

func newEvent(detail entity.GuestEvent) *Event {
	return &Event{eventType: detail.EventType(), detail: detail, cancelable: true}
}

// Type returns the event type.
func (e *Event) Type() entity.EventType { return e.eventType }

// Detail returns the typed payload. Nil for resize events.
func (e *Event) Detail() entity.GuestEvent { return e.detail }

// Cancelable reports whether PreventDefault has an effect.
func (e *Event) Cancelable() bool { return e.cancelable }

// PreventDefault cancels the event's default action.
func (e *Event) PreventDefault() {
	if e.cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether the event was cancelled.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// DialogEvent is dispatched for javascript dialogs. Listeners answer with OK
// or Cancel, during dispatch or later; uncancelled events are answered with
// Cancel once dispatch returns.
type DialogEvent struct {
	Event
	dialog   entity.Dialog
	respond  func(accepted bool, response string)
	answered bool
}

func newDialogEvent(d entity.Dialog, respond func(bool, string)) *DialogEvent {
	return &DialogEvent{Event: *newEvent(d), dialog: d, respond: respond}
}

// Dialog returns the dialog payload.
func (e *DialogEvent) Dialog() entity.Dialog { return e.dialog }

// Answered reports whether a response was already sent to the guest.
func (e *DialogEvent) Answered() bool { return e.answered }

// OK accepts the dialog with an optional prompt response.
func (e *DialogEvent) OK(response string) {
	e.PreventDefault()
	e.answer(true, response)
}

// Cancel rejects the dialog.
func (e *DialogEvent) Cancel() {
	e.PreventDefault()
	e.answer(false, "")
}

func (e *DialogEvent) answer(accepted bool, response string) {
	if e.answered {
		return
	}
	e.answered = true
	e.respond(accepted, response)
}

// ResizeEvent reports the host element's new size. It is not cancelable.
type ResizeEvent struct {
	Event
	NewWidth  int
	NewHeight int
}

func newResizeEvent(size entity.Size) *ResizeEvent {
	return &ResizeEvent{
		Event:     Event{eventType: entity.EventResize},
		NewWidth:  size.Width,
		NewHeight: size.Height,
	}
}

// handleGuestEvent translates one bridge delivery. Deliveries are processed
// synchronously, in order.
func (c *Controller) handleGuestEvent(source entity.GuestInstanceID, eventType string, payload map[string]any) {
	log := c.logger()

	ev, err := entity.DecodeGuestEvent(eventType, payload)
	if err != nil {
		if errors.Is(err, entity.ErrUnknownEvent) {
			log.Debug().Str("type", eventType).Int("guest_id", int(source)).Msg("ignoring unknown guest event")
		}
		return
	}

	stale := !c.hasGuest || source != c.guestID
	switch ev.(type) {
	case entity.NavigationCommitted, entity.ZoomChanged, entity.TitleSet:
		if stale {
			log.Debug().Str("type", eventType).Int("guest_id", int(source)).Msg("ignoring event from stale guest")
			return
		}
	}

	switch e := ev.(type) {
	case entity.NavigationCommitted:
		c.onNavigationCommitted(e)
	case entity.ZoomChanged:
		c.nav.ZoomFactor = e.NewZoomFactor
		log.Debug().Float64("zoom", e.NewZoomFactor).Msg("zoom changed")
	default:
		c.dispatchGuestEvent(source, ev)
	}
}

func (c *Controller) onNavigationCommitted(e entity.NavigationCommitted) {
	c.nav.EntryIndex = e.EntryIndex
	c.nav.EntryCount = e.EntryCount
	c.nav.ProcessID = e.ProcessID

	log := c.logger()
	if !e.IsTopLevel || e.URL == c.src.URL() {
		return
	}

	// Touching src navigates; remember the write-back so the observer drops it.
	c.src.Set(e.URL)
	c.writtenBack = c.src.URL()
	log.Debug().
		Str("url", logging.TruncateURL(e.URL, logURLMaxLen)).
		Int("entry_index", e.EntryIndex).
		Int("entry_count", e.EntryCount).
		Msg("navigation committed, src synced")
}

func (c *Controller) dispatchGuestEvent(source entity.GuestInstanceID, ev entity.GuestEvent) {
	var (
		hostEvent port.HostEvent
		dialog    *DialogEvent
	)

	switch e := ev.(type) {
	case entity.Dialog:
		dialog = newDialogEvent(e, func(accepted bool, response string) {
			c.bridge.DialogClosed(source, accepted, response)
		})
		hostEvent = dialog
	case entity.TitleSet:
		c.nav.Title = e.Title
		hostEvent = newEvent(ev)
	default:
		hostEvent = newEvent(ev)
	}

	c.element.DispatchEvent(hostEvent)

	cancelled := hostEvent.DefaultPrevented()
	c.logger().Debug().
		Str("type", string(ev.EventType())).
		Bool("cancelled", cancelled).
		Msg("guest event dispatched")

	if !cancelled && dialog != nil {
		dialog.Cancel()
	}
}
