package simbridge

import (
	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
)

// Bridge method names as recorded in the call log.
const (
	MethodCreateGuest            = "createGuest"
	MethodDestroyGuest           = "destroyGuest"
	MethodAttachGuest            = "attachGuest"
	MethodSetEventHandler        = "setEventHandler"
	MethodRegisterResizeCallback = "registerResizeCallback"
	MethodSetAutoSize            = "setAutoSize"
	MethodGo                     = "go"
	MethodLoadURL                = "loadUrl"
	MethodReload                 = "reload"
	MethodStop                   = "stop"
	MethodSetZoom                = "setZoom"
	MethodFind                   = "find"
	MethodStopFinding            = "stopFinding"
	MethodInsertCSS              = "insertCSS"
	MethodExecuteScript          = "executeScript"
	MethodOpenDevTools           = "openDevTools"
	MethodCloseDevTools          = "closeDevTools"
	MethodIsDevToolsOpened       = "isDevToolsOpened"
	MethodDialogClosed           = "dialogClosed"
)

// Call is one recorded bridge invocation.
type Call = port.BridgeCall

func (b *Bridge) record(method string, id entity.GuestInstanceID, args ...any) {
	b.calls = append(b.calls, Call{Method: method, GuestID: id, Args: args})
}

// Calls returns every recorded call.
func (b *Bridge) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// TakeCalls returns the calls recorded since the previous TakeCalls.
func (b *Bridge) TakeCalls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.calls[b.taken:]
	b.taken = len(b.calls)
	return append([]Call(nil), out...)
}

// CallNames lists method names of calls.
func CallNames(calls []Call) []string {
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Method
	}
	return names
}
