package guestview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
)

var dialogPayload = map[string]any{
	"origin_url":          "https://example.com",
	"accept_lang":         "en-US",
	"message_type":        "prompt",
	"message_text":        "Name?",
	"default_prompt_text": "anon",
}

func TestEvents_DialogDefaultsToCancel(t *testing.T) {
	h := newHarness(t, nil)
	h.withGuest(t)

	h.bridge.EXPECT().DialogClosed(testGuest, false, "")
	h.deliver(entity.EventDialog, dialogPayload)

	require.Len(t, h.el.events, 1)
	ev, ok := h.el.events[0].(*DialogEvent)
	require.True(t, ok)
	assert.Equal(t, "Name?", ev.Dialog().MessageText)
	assert.True(t, ev.Answered())
}

func TestEvents_DialogOKDuringDispatch(t *testing.T) {
	h := newHarness(t, nil)
	h.withGuest(t)
	h.el.listen(func(ev port.HostEvent) {
		if d, ok := ev.(*DialogEvent); ok {
			d.OK("bob")
			d.Cancel() // already answered
		}
	})

	h.bridge.EXPECT().DialogClosed(testGuest, true, "bob")
	h.deliver(entity.EventDialog, dialogPayload)

	assert.True(t, h.el.events[0].DefaultPrevented())
}

func TestEvents_DialogAnsweredLater(t *testing.T) {
	h := newHarness(t, nil)
	h.withGuest(t)

	var held *DialogEvent
	h.el.listen(func(ev port.HostEvent) {
		if d, ok := ev.(*DialogEvent); ok {
			d.PreventDefault()
			held = d
		}
	})
	h.deliver(entity.EventDialog, dialogPayload)
	require.NotNil(t, held)
	assert.False(t, held.Answered())

	h.bridge.EXPECT().DialogClosed(testGuest, false, "")
	held.Cancel()
}

func TestEvents_GenericEventCopiesRegisteredFields(t *testing.T) {
	h := newHarness(t, nil)
	h.withGuest(t)

	h.deliver(entity.EventDidFailLoad, map[string]any{
		"url":               "https://down.test/",
		"is_top_level":      true,
		"error_code":        -105,
		"error-description": "NAME_NOT_RESOLVED",
		"unrelated":         "dropped",
	})

	require.Len(t, h.el.events, 1)
	ev := h.el.events[0].(*Event)
	assert.True(t, ev.Cancelable())
	assert.Equal(t, entity.DidFailLoad{
		URL:              "https://down.test/",
		IsTopLevel:       true,
		ErrorCode:        -105,
		ErrorDescription: "NAME_NOT_RESOLVED",
	}, ev.Detail())
}

func TestEvents_TitleSetUpdatesEvenWhenCancelled(t *testing.T) {
	h := newHarness(t, nil)
	h.withGuest(t)
	h.el.listen(func(ev port.HostEvent) { ev.PreventDefault() })

	h.deliver(entity.EventTitleSet, map[string]any{"title": "Hello", "explicit_set": true})

	assert.Equal(t, "Hello", h.c.Title())
	assert.Equal(t, []entity.EventType{entity.EventTitleSet}, h.el.eventTypes())
}

func TestEvents_ZoomChangedIsNotDispatched(t *testing.T) {
	h := newHarness(t, nil)
	h.withGuest(t)

	h.deliver(entity.EventZoomChanged, map[string]any{"old_zoom_factor": 1.0, "new_zoom_factor": 1.5})

	assert.InDelta(t, 1.5, h.c.Zoom(), 1e-9)
	assert.Empty(t, h.el.events)
}

func TestEvents_UnknownEventIgnored(t *testing.T) {
	h := newHarness(t, nil)
	h.withGuest(t)

	h.deliver("found-in-page", map[string]any{"matches": 3})
	assert.Empty(t, h.el.events)
}

func TestEvents_DeliveryOrderPreserved(t *testing.T) {
	h := newHarness(t, nil)
	h.withGuest(t)

	for _, typ := range []entity.EventType{
		entity.EventDidStartLoading,
		entity.EventConsole,
		entity.EventNewWindow,
		entity.EventDidStopLoading,
		entity.EventCrashed,
	} {
		h.deliver(typ, map[string]any{})
	}

	assert.Equal(t, []entity.EventType{
		entity.EventDidStartLoading,
		entity.EventConsole,
		entity.EventNewWindow,
		entity.EventDidStopLoading,
		entity.EventCrashed,
	}, h.el.eventTypes())
}

func TestEvents_ResizeEventNotCancelable(t *testing.T) {
	ev := newResizeEvent(entity.Size{Width: 3, Height: 4})
	ev.PreventDefault()

	assert.False(t, ev.Cancelable())
	assert.False(t, ev.DefaultPrevented())
	assert.Nil(t, ev.Detail())
	assert.Equal(t, entity.EventResize, ev.Type())
}
