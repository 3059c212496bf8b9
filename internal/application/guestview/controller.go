// Package guestview implements the controller that embeds a guest view in a
// host element: attribute bindings, the guest lifecycle, translation of guest
// events into host events, autosize negotiation and the command API.
//
// A Controller is not safe for concurrent use. The host framework, the native
// bridge and resize callbacks must all call into it from the same thread.
package guestview

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
	"github.com/bnema/guestview/internal/logging"
)

const logURLMaxLen = 80

// Controller owns the single guest of one host element.
type Controller struct {
	ctx     context.Context
	bridge  port.GuestBridge
	element port.HostElement

	viewID entity.ViewInstanceID

	guestID  entity.GuestInstanceID
	hasGuest bool

	bridgeHandle    entity.BridgeHandleID
	hasBridgeHandle bool

	attached              bool
	beforeFirstNavigation bool
	// writtenBack is the resolved URL last synced into src from a commit.
	writtenBack string

	nav entity.NavigationState

	attributes map[string]Attribute
	names      []string

	src       *URLAttribute
	autosize  *BooleanAttribute
	minWidth  *DimensionAttribute
	maxWidth  *DimensionAttribute
	minHeight *DimensionAttribute
	maxHeight *DimensionAttribute
	userAgent *StringAttribute
	partition *StringAttribute
}

func newController(
	ctx context.Context,
	id entity.ViewInstanceID,
	bridge port.GuestBridge,
	el port.HostElement,
	passthrough []string,
) *Controller {
	ctx = logging.WithViewID(logging.WithComponent(ctx, "guestview"), int(id))

	c := &Controller{
		ctx:                   ctx,
		bridge:                bridge,
		element:               el,
		viewID:                id,
		beforeFirstNavigation: true,
		nav:                   entity.NewNavigationState(),
		attributes:            make(map[string]Attribute, len(bindingTable)+len(passthrough)),
	}
	c.setupAttributes(passthrough)
	c.setupFocusPropagation()

	c.logger().Debug().Int("attributes", len(c.attributes)).Msg("controller created")
	return c
}

func (c *Controller) logger() *zerolog.Logger {
	return logging.FromContext(c.ctx)
}

func (c *Controller) setupAttributes(passthrough []string) {
	for name, spec := range bindingTable {
		var onMutation func()
		if spec.autosize {
			onMutation = c.negotiateAutoSize
		}
		base := newAttribute(name, c.element, onMutation)

		switch spec.kind {
		case KindURL:
			a := &URLAttribute{attribute: base, onChange: func(_, _ string) { c.parseSrc() }}
			a.observe(c.acceptSrcRecord)
			c.src = a
			c.attributes[name] = a
		case KindBoolean:
			a := &BooleanAttribute{attribute: base}
			if name == AttrAutosize {
				c.autosize = a
			}
			c.attributes[name] = a
		case KindDimension:
			a := &DimensionAttribute{attribute: base}
			switch name {
			case AttrMinWidth:
				c.minWidth = a
			case AttrMaxWidth:
				c.maxWidth = a
			case AttrMinHeight:
				c.minHeight = a
			case AttrMaxHeight:
				c.maxHeight = a
			}
			c.attributes[name] = a
		default:
			a := &StringAttribute{attribute: base}
			switch name {
			case AttrUserAgent:
				c.userAgent = a
			case AttrPartition:
				c.partition = a
			}
			c.attributes[name] = a
		}
	}

	for _, name := range passthrough {
		if name == "" {
			continue
		}
		if _, exists := c.attributes[name]; exists {
			continue
		}
		c.attributes[name] = &StringAttribute{attribute: newAttribute(name, c.element, nil)}
	}

	c.names = make([]string, 0, len(c.attributes))
	for name := range c.attributes {
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
}

// setupFocusPropagation makes the element focusable so focus can be
// forwarded to the native surface.
func (c *Controller) setupFocusPropagation() {
	if !c.element.HasAttribute(attrTabIndex) {
		c.element.SetAttribute(attrTabIndex, "-1")
	}
}

// acceptSrcRecord drops records while src still holds the URL the guest
// committed. Any record seen after src moves away is a real navigation.
func (c *Controller) acceptSrcRecord() bool {
	if c.writtenBack != "" && c.src.URL() == c.writtenBack {
		c.logger().Debug().Msg("src write-back observed, not navigating")
		return false
	}
	c.writtenBack = ""
	return true
}

// ViewInstanceID returns the id allocated to this controller.
func (c *Controller) ViewInstanceID() entity.ViewInstanceID {
	return c.viewID
}

// GuestInstanceID returns the current guest, if any.
func (c *Controller) GuestInstanceID() (entity.GuestInstanceID, bool) {
	return c.guestID, c.hasGuest
}

// BridgeHandle returns the native surface handle, if known.
func (c *Controller) BridgeHandle() (entity.BridgeHandleID, bool) {
	return c.bridgeHandle, c.hasBridgeHandle
}

// IsAttached reports whether the host element is connected to the live tree.
func (c *Controller) IsAttached() bool {
	return c.attached
}

// BeforeFirstNavigation reports whether no guest creation was attempted
// since construction or the last reset.
func (c *Controller) BeforeFirstNavigation() bool {
	return c.beforeFirstNavigation
}

// State returns a snapshot of the guest-reported navigation state.
func (c *Controller) State() entity.NavigationState {
	return c.nav
}

// Attribute returns the binding for a property.
func (c *Controller) Attribute(name string) (Attribute, bool) {
	a, ok := c.attributes[name]
	return a, ok
}

// AttributeNames lists the recognized properties in sorted order.
func (c *Controller) AttributeNames() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Src returns the resolved navigation target.
func (c *Controller) Src() string {
	return c.src.URL()
}

// SetSrc writes the navigation target property.
func (c *Controller) SetSrc(url string) {
	c.src.Set(url)
}

// --- Host framework callbacks ---

// AttributeChanged is the host framework's synchronous attribute-change
// notification. The navigation target is handled by its own observer and
// is skipped here.
func (c *Controller) AttributeChanged(name, oldValue, newValue string) {
	a, ok := c.attributes[name]
	if !ok || a.ignoringMutation() {
		return
	}
	if a.Kind() == KindURL {
		return
	}
	c.logger().Trace().
		Str("attribute", name).
		Str("old", oldValue).
		Str("new", newValue).
		Msg("attribute mutation")
	a.HandleMutation(oldValue, newValue)
}

// ElementAttached is called when the host element joins the live tree.
// Repeated calls while attached are ignored.
func (c *Controller) ElementAttached() {
	if c.attached {
		return
	}
	c.attached = true
	c.logger().Debug().Msg("element attached")
	c.parseAttributes()
}

// ElementDetached is called when the host element leaves the live tree.
func (c *Controller) ElementDetached() {
	c.attached = false
	c.logger().Debug().Msg("element detached")
	c.reset()
}

// SetBridgeHandle records the native surface handle. Only the first call has
// an effect: it registers the resize callback and attaches a guest that was
// created while the handle was unknown.
func (c *Controller) SetBridgeHandle(handle entity.BridgeHandleID) {
	log := c.logger()
	if c.hasBridgeHandle {
		log.Debug().
			Int("handle", int(c.bridgeHandle)).
			Int("ignored", int(handle)).
			Msg("bridge handle already set")
		return
	}
	c.bridgeHandle = handle
	c.hasBridgeHandle = true
	log.Debug().Int("handle", int(handle)).Msg("bridge handle set")

	c.bridge.RegisterResizeCallback(handle, c.onElementResize)
	if !c.hasGuest {
		return
	}
	c.attachWindow()
}

// --- Lifecycle ---

func (c *Controller) parseAttributes() {
	if !c.attached {
		return
	}
	c.parseSrc()
}

// parseSrc creates the guest on first navigation or forwards the target to
// an existing guest.
func (c *Controller) parseSrc() {
	if !c.attached {
		return
	}
	src := c.src.URL()
	if src == "" {
		return
	}
	if !c.hasGuest {
		if c.beforeFirstNavigation {
			c.beforeFirstNavigation = false
			c.createGuest()
		}
		return
	}
	c.LoadURL(src)
}

func (c *Controller) createGuest() {
	log := c.logger()

	id, err := c.bridge.CreateGuest(entity.CreateGuestParams{Partition: c.partition.String()})
	if err != nil {
		log.Warn().Err(fmt.Errorf("%w: %w", entity.ErrGuestCreateFailed, err)).Msg("guest not created")
		return
	}
	c.bridge.SetEventHandler(id, func(eventType string, payload map[string]any) {
		c.handleGuestEvent(id, eventType, payload)
	})

	if !c.attached {
		// Detached while the guest was being created.
		log.Debug().Int("guest_id", int(id)).Msg("destroying stale guest")
		c.bridge.DestroyGuest(id)
		c.beforeFirstNavigation = true
		return
	}
	if c.hasGuest {
		// A nested creation already won; keep the invariant of one guest.
		log.Warn().Int("guest_id", int(id)).Int("current", int(c.guestID)).Msg("destroying duplicate guest")
		c.bridge.DestroyGuest(id)
		return
	}

	c.guestID = id
	c.hasGuest = true
	log.Info().Int("guest_id", int(id)).Msg("guest created")
	c.attachWindow()
}

// attachWindow binds the current guest to the native surface.
func (c *Controller) attachWindow() bool {
	log := c.logger()
	if !c.hasGuest {
		return false
	}
	if !c.attached {
		return false
	}
	if !c.hasBridgeHandle {
		log.Debug().Err(entity.ErrBridgeHandleUnknown).Int("guest_id", int(c.guestID)).Msg("attach deferred")
		return false
	}

	params := c.buildAttachParams()
	ok := c.bridge.AttachGuest(c.bridgeHandle, c.guestID, params)
	log.Debug().
		Int("guest_id", int(c.guestID)).
		Int("handle", int(c.bridgeHandle)).
		Bool("ok", ok).
		Msg("attach window")
	return ok
}

func (c *Controller) buildAttachParams() entity.AttachParams {
	attrs := make(map[string]any, len(c.attributes))
	for _, name := range c.names {
		attrs[name] = c.attributes[name].Get()
	}

	rect := c.element.BoundingClientRect().Size()
	width, height := rect.Width, rect.Height
	if width == 0 || height == 0 {
		computed := c.element.ComputedSize()
		if width == 0 {
			width = computed.Width
		}
		if height == 0 {
			height = computed.Height
		}
	}

	return entity.AttachParams{
		ViewInstanceID:    c.viewID,
		UserAgentOverride: c.userAgent.String(),
		ZoomFactor:        c.element.DocumentZoomFactor(),
		Attributes:        attrs,
		ElementWidth:      width,
		ElementHeight:     height,
	}
}

// reset destroys the guest after detachment so a re-attach starts fresh.
// The navigation snapshot is left to the next guest's events.
func (c *Controller) reset() {
	c.writtenBack = ""
	c.beforeFirstNavigation = true
	if !c.hasGuest {
		return
	}
	id := c.guestID
	c.bridge.DestroyGuest(id)
	c.hasGuest = false
	c.guestID = 0
	c.logger().Info().Int("guest_id", int(id)).Msg("guest destroyed")
}

// close detaches and stops observing the element.
func (c *Controller) close() {
	if c.attached || c.hasGuest {
		c.ElementDetached()
	}
	c.src.disconnect()
}
