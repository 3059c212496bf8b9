package entity

// ViewInstanceID identifies a host element controller. Allocated by the
// registry that owns the controller, never reused within that registry.
type ViewInstanceID int

// GuestInstanceID is the opaque identifier the native bridge assigns to a guest.
type GuestInstanceID int

// BridgeHandleID identifies the native surface a guest is attached to.
type BridgeHandleID int

// NavigationState is the navigation snapshot reported by the guest.
// Only guest-originated events mutate it.
type NavigationState struct {
	EntryIndex int
	EntryCount int
	ProcessID  int
	ZoomFactor float64
	Title      string
}

// NewNavigationState returns the state of a controller that has not heard
// from any guest yet.
func NewNavigationState() NavigationState {
	return NavigationState{ZoomFactor: ZoomDefault}
}

// CanGoBack returns true if there is a history entry behind the current one.
func (s NavigationState) CanGoBack() bool {
	return s.EntryCount > 1 && s.EntryIndex > 0
}

// CanGoForward returns true if there is a history entry after the current one.
func (s NavigationState) CanGoForward() bool {
	return s.EntryIndex >= 0 && s.EntryIndex < s.EntryCount-1
}

// CreateGuestParams is passed to the bridge when requesting a new guest.
// The native side currently takes no creation options beyond the partition.
type CreateGuestParams struct {
	Partition string
}

// AttachParams is the snapshot sent to the bridge when a guest is bound to
// the native surface of its host element.
type AttachParams struct {
	ViewInstanceID    ViewInstanceID
	UserAgentOverride string
	ZoomFactor        float64
	// Attributes holds the effective value of every recognized property,
	// keyed by property name. Values are string, bool or int depending on
	// the binding kind.
	Attributes    map[string]any
	ElementWidth  int
	ElementHeight int
}

// AutoSizeParams is sent to the bridge for autosize negotiation. Either the
// constraint fields or Normal are meaningful: Normal is set only for
// host-element resize notifications.
type AutoSizeParams struct {
	EnableAutoSize bool
	Min            Size
	Max            Size
	Normal         *Size
}

// IsResize reports whether the params carry a host-element resize.
func (p AutoSizeParams) IsResize() bool {
	return p.Normal != nil
}
