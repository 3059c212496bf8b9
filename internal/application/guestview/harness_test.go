package guestview

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/application/port/mocks"
	"github.com/bnema/guestview/internal/domain/entity"
)

const (
	testHandle entity.BridgeHandleID  = 5
	testGuest  entity.GuestInstanceID = 1
)

type harness struct {
	bridge  *mocks.MockGuestBridge
	el      *fakeElement
	c       *Controller
	reg     *Registry
	handler port.GuestEventHandler
	resize  port.ResizeCallback
}

func newHarness(t *testing.T, attrs map[string]string) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	bridge := mocks.NewMockGuestBridge(ctrl)
	el := newFakeElement(attrs)
	reg := NewRegistry(context.Background(), bridge)
	c := reg.Create(el)
	el.hook(c)
	return &harness{bridge: bridge, el: el, c: c, reg: reg}
}

// expectCreate expects one guest creation returning id and captures the
// event handler registered for it.
func (h *harness) expectCreate(id entity.GuestInstanceID) *gomock.Call {
	h.bridge.EXPECT().
		SetEventHandler(id, gomock.Any()).
		Do(func(_ entity.GuestInstanceID, fn port.GuestEventHandler) { h.handler = fn })
	return h.bridge.EXPECT().CreateGuest(gomock.Any()).Return(id, nil)
}

// expectHandle expects the resize registration made by SetBridgeHandle.
func (h *harness) expectHandle(handle entity.BridgeHandleID) {
	h.bridge.EXPECT().
		RegisterResizeCallback(handle, gomock.Any()).
		Do(func(_ entity.BridgeHandleID, cb port.ResizeCallback) { h.resize = cb })
}

// withGuest brings the controller to the attached-with-guest state on
// https://example.com with guest testGuest bound to testHandle.
func (h *harness) withGuest(t *testing.T) {
	t.Helper()
	h.expectHandle(testHandle)
	h.c.SetBridgeHandle(testHandle)

	h.el.attrs[AttrSrc] = "https://example.com"
	h.expectCreate(testGuest)
	h.bridge.EXPECT().AttachGuest(testHandle, testGuest, gomock.Any()).Return(true)
	h.c.ElementAttached()
}

func (h *harness) deliver(eventType entity.EventType, payload map[string]any) {
	h.handler(string(eventType), payload)
}
