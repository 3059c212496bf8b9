package guestview

import (
	"github.com/bnema/guestview/internal/domain/entity"
	"github.com/bnema/guestview/internal/logging"
)

// Commands forward to the bridge. Mutating commands are silent no-ops while
// no guest exists.

// ready reports whether a guest exists and traces dropped commands.
func (c *Controller) ready(command string) bool {
	if c.hasGuest {
		return true
	}
	c.logger().Trace().Err(entity.ErrNoGuest).Str("command", command).Msg("command dropped")
	return false
}

// Go navigates relativeIndex entries through history.
func (c *Controller) Go(relativeIndex int) {
	if !c.ready("go") {
		return
	}
	c.bridge.Go(c.guestID, relativeIndex)
}

// Back navigates one entry back.
func (c *Controller) Back() {
	c.Go(-1)
}

// Forward navigates one entry forward.
func (c *Controller) Forward() {
	c.Go(1)
}

// CanGoBack reports whether a history entry precedes the current one.
func (c *Controller) CanGoBack() bool {
	return c.nav.CanGoBack()
}

// CanGoForward reports whether a history entry follows the current one.
func (c *Controller) CanGoForward() bool {
	return c.nav.CanGoForward()
}

// LoadURL navigates the guest, like updating src.
func (c *Controller) LoadURL(url string) {
	if !c.ready("loadURL") {
		return
	}
	c.logger().Debug().Str("url", logging.TruncateURL(url, logURLMaxLen)).Msg("load url")
	c.bridge.LoadURL(c.guestID, url)
}

// Reload reloads the guest content.
func (c *Controller) Reload(ignoreCache bool) {
	if !c.ready("reload") {
		return
	}
	c.bridge.Reload(c.guestID, ignoreCache)
}

// Stop stops loading.
func (c *Controller) Stop() {
	if !c.ready("stop") {
		return
	}
	c.bridge.Stop(c.guestID)
}

// ProcessID returns the guest renderer process id last reported.
func (c *Controller) ProcessID() int {
	return c.nav.ProcessID
}

// Zoom returns the zoom factor last reported by the guest.
func (c *Controller) Zoom() float64 {
	return c.nav.ZoomFactor
}

// SetZoom asks the guest to change its zoom factor. The cached factor
// changes when the guest reports it.
func (c *Controller) SetZoom(factor float64) {
	if !c.ready("setZoom") {
		return
	}
	c.bridge.SetZoom(c.guestID, factor)
}

// Find starts or continues a find request.
func (c *Controller) Find(requestID int, text string, req entity.FindRequest) {
	if !c.ready("find") {
		return
	}
	c.bridge.Find(c.guestID, requestID, text, req.Normalize())
}

// StopFinding ends a find session. Empty action means clear; unknown
// actions are dropped.
func (c *Controller) StopFinding(action string) {
	if !c.ready("stopFinding") {
		return
	}
	parsed, err := entity.ParseStopFindingAction(action)
	if err != nil {
		c.logger().Debug().Err(err).Msg("stop finding dropped")
		return
	}
	c.bridge.StopFinding(c.guestID, parsed)
}

// InsertCSS injects a stylesheet in the guest.
func (c *Controller) InsertCSS(css string) {
	if !c.ready("insertCSS") {
		return
	}
	c.bridge.InsertCSS(c.guestID, css)
}

// ExecuteScript runs script in the guest.
func (c *Controller) ExecuteScript(script string) {
	if !c.ready("executeScript") {
		return
	}
	c.bridge.ExecuteScript(c.guestID, script)
}

// OpenDevTools opens the devtools view for the guest.
func (c *Controller) OpenDevTools() {
	if !c.ready("openDevTools") {
		return
	}
	c.bridge.OpenDevTools(c.guestID)
}

// CloseDevTools closes the devtools view for the guest.
func (c *Controller) CloseDevTools() {
	if !c.ready("closeDevTools") {
		return
	}
	c.bridge.CloseDevTools(c.guestID)
}

// IsDevToolsOpened reports whether devtools are open. False without a guest.
func (c *Controller) IsDevToolsOpened() bool {
	if !c.ready("isDevToolsOpened") {
		return false
	}
	return c.bridge.IsDevToolsOpened(c.guestID)
}

// Title returns the last title reported by the guest.
func (c *Controller) Title() string {
	return c.nav.Title
}
