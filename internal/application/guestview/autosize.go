package guestview

import (
	"github.com/bnema/guestview/internal/domain/entity"
)

// AutoSizeConstraints returns the constraints currently configured on the
// element.
func (c *Controller) AutoSizeConstraints() entity.AutoSizeParams {
	return entity.AutoSizeParams{
		EnableAutoSize: c.autosize.Enabled(),
		Min:            entity.Size{Width: c.minWidth.Int(), Height: c.minHeight.Int()},
		Max:            entity.Size{Width: c.maxWidth.Int(), Height: c.maxHeight.Int()},
	}
}

// negotiateAutoSize forwards the full constraint set after any of the
// autosize properties changed.
func (c *Controller) negotiateAutoSize() {
	if !c.hasGuest {
		return
	}
	params := c.AutoSizeConstraints()
	c.logger().Debug().
		Bool("enabled", params.EnableAutoSize).
		Int("min_width", params.Min.Width).
		Int("min_height", params.Min.Height).
		Int("max_width", params.Max.Width).
		Int("max_height", params.Max.Height).
		Msg("autosize negotiation")
	c.bridge.SetAutoSize(c.guestID, params)
}

// onElementResize handles native resize callbacks: a resize event is always
// dispatched, the guest is told about its new normal size only if it exists.
func (c *Controller) onElementResize(newSize entity.Size) {
	if client := c.element.ClientSize(); !client.IsZero() {
		newSize = client
	}

	c.element.DispatchEvent(newResizeEvent(newSize))

	if !c.hasGuest {
		return
	}
	normal := newSize
	c.bridge.SetAutoSize(c.guestID, entity.AutoSizeParams{Normal: &normal})
}
