// Package port defines application-layer interfaces for external capabilities.
// Ports keep the guest view controller independent of the native bridge and
// of the host UI framework that owns the element.
package port

import (
	"github.com/bnema/guestview/internal/domain/entity"
)

//go:generate mockgen -source=guest_bridge.go -destination=mocks/mock_guest_bridge.go -package=mocks

// GuestEventHandler receives guest-originated events. The native side
// delivers them in order, one at a time, on the embedder's thread.
type GuestEventHandler func(eventType string, payload map[string]any)

// ResizeCallback is invoked by the native side when the host element's
// native surface changes size.
type ResizeCallback func(newSize entity.Size)

// GuestBridge abstracts the native layer that owns guest processes.
// All calls are fire-and-forget requests: completion is observed through
// events delivered to the registered GuestEventHandler.
type GuestBridge interface {
	// --- Lifecycle ---

	// CreateGuest requests a new guest instance.
	CreateGuest(params entity.CreateGuestParams) (entity.GuestInstanceID, error)

	// DestroyGuest releases a guest. Unknown ids are ignored.
	DestroyGuest(id entity.GuestInstanceID)

	// AttachGuest binds a guest to the native surface identified by handle.
	// Returns false if the binding could not be made.
	AttachGuest(handle entity.BridgeHandleID, id entity.GuestInstanceID, params entity.AttachParams) bool

	// SetEventHandler registers the receiver for events of one guest.
	SetEventHandler(id entity.GuestInstanceID, handler GuestEventHandler)

	// RegisterResizeCallback tracks size changes of a native surface.
	RegisterResizeCallback(handle entity.BridgeHandleID, callback ResizeCallback)

	// SetAutoSize forwards autosize constraints or a new normal size.
	SetAutoSize(id entity.GuestInstanceID, params entity.AutoSizeParams)

	// --- Navigation ---

	Go(id entity.GuestInstanceID, relativeIndex int)
	LoadURL(id entity.GuestInstanceID, url string)
	Reload(id entity.GuestInstanceID, ignoreCache bool)
	Stop(id entity.GuestInstanceID)

	// --- Content ---

	SetZoom(id entity.GuestInstanceID, factor float64)
	Find(id entity.GuestInstanceID, requestID int, text string, options entity.FindOptions)
	StopFinding(id entity.GuestInstanceID, action entity.StopFindingAction)
	InsertCSS(id entity.GuestInstanceID, css string)
	ExecuteScript(id entity.GuestInstanceID, script string)

	// --- DevTools ---

	OpenDevTools(id entity.GuestInstanceID)
	CloseDevTools(id entity.GuestInstanceID)
	IsDevToolsOpened(id entity.GuestInstanceID) bool

	// DialogClosed reports the embedder's answer to a javascript dialog.
	DialogClosed(id entity.GuestInstanceID, accepted bool, response string)
}
