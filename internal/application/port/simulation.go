package port

import (
	"context"

	"github.com/bnema/guestview/internal/domain/entity"
)

// BridgeCall is one invocation recorded by a simulated bridge.
type BridgeCall struct {
	Method  string                 `json:"method"`
	GuestID entity.GuestInstanceID `json:"guest_id"`
	Args    []any                  `json:"args,omitempty"`
}

// SimulatedBridge is a GuestBridge whose guests live in memory. Scenario
// replay drives it step by step.
type SimulatedBridge interface {
	GuestBridge

	// Pump delivers queued guest events in order and returns how many were
	// delivered.
	Pump() int
	// TakeCalls returns the calls recorded since the previous TakeCalls.
	TakeCalls() []BridgeCall

	// Emit queues a raw guest event. Returns false for unknown guests.
	Emit(id entity.GuestInstanceID, eventType string, payload map[string]any) bool
	// Crash replaces the guest renderer process.
	Crash(id entity.GuestInstanceID, reason string) bool
	// TriggerResize invokes the resize callbacks of a native surface and
	// returns how many were called.
	TriggerResize(handle entity.BridgeHandleID, size entity.Size) int

	// FailCreate makes the next CreateGuest call fail with err.
	FailCreate(err error)
	// FailLoad makes navigations to url fail.
	FailLoad(url string, code int, description string)
}

// SimulatedElement is a HostElement owned by the replay harness.
type SimulatedElement interface {
	HostElement

	// OnAttributeChanged installs the synchronous change notification.
	OnAttributeChanged(fn func(name, oldValue, newValue string))
	// AddAnyListener registers fn for every dispatched event.
	AddAnyListener(fn func(ev HostEvent))
	// Flush delivers queued observer records and returns how many ran.
	Flush() int
	// Resize updates every geometry source.
	Resize(size entity.Size)
	// DrainEvents returns and clears the dispatched event log.
	DrainEvents() []HostEvent
}

// SimulationFactory builds a fresh bridge and element for one replay.
type SimulationFactory interface {
	NewBridge(ctx context.Context, cfg SimulationConfig) SimulatedBridge
	NewElement(cfg ElementConfig) (SimulatedElement, error)
}

// SimulationConfig tunes the simulated native side.
type SimulationConfig struct {
	ScriptTimeoutMs  int
	InitialProcessID int
	AcceptLang       string
}

// ElementConfig describes the host element of a replay.
type ElementConfig struct {
	BaseURL      string
	Width        int
	Height       int
	DocumentZoom float64
	Attributes   map[string]string
}
