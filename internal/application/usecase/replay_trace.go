package usecase

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/bnema/guestview/internal/application/guestview"
	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
)

// Trace records what a replay did, step by step.
type Trace struct {
	RunID    string      `json:"run_id,omitempty"`
	Scenario string      `json:"scenario"`
	Steps    []TraceStep `json:"steps"`
	Passed   bool        `json:"passed"`
	Failure  string      `json:"failure,omitempty"`
}

func (t *Trace) fail(err error) {
	t.Passed = false
	t.Failure = err.Error()
}

// CallCount returns the number of bridge calls over all steps.
func (t *Trace) CallCount() int {
	n := 0
	for _, s := range t.Steps {
		n += len(s.Calls)
	}
	return n
}

// EventCount returns the number of host events over all steps.
func (t *Trace) EventCount() int {
	n := 0
	for _, s := range t.Steps {
		n += len(s.Events)
	}
	return n
}

// TraceStep is the outcome of one scenario step.
type TraceStep struct {
	Index   int                   `json:"index"`
	Action  entity.ScenarioAction `json:"action"`
	Summary string                `json:"summary"`
	Result  any                   `json:"result,omitempty"`
	Calls   []port.BridgeCall     `json:"calls,omitempty"`
	Events  []TraceEvent          `json:"events,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// TraceEvent is a host event as seen by the replay listener.
type TraceEvent struct {
	Type      entity.EventType `json:"type"`
	Detail    any              `json:"detail,omitempty"`
	Cancelled bool             `json:"cancelled,omitempty"`
}

func newTraceEvent(ev port.HostEvent) TraceEvent {
	te := TraceEvent{Type: ev.Type(), Cancelled: ev.DefaultPrevented()}
	switch e := ev.(type) {
	case *guestview.ResizeEvent:
		te.Detail = entity.Size{Width: e.NewWidth, Height: e.NewHeight}
	case *guestview.DialogEvent:
		te.Detail = e.Dialog()
	case *guestview.Event:
		te.Detail = e.Detail()
	}
	return te
}

func (r *replay) expectCalls(want []string) error {
	got := make([]string, len(r.calls))
	for i, c := range r.calls {
		got[i] = c.Method
	}
	r.calls = nil
	return compareNames("bridge calls", want, got)
}

func (r *replay) expectEvents(want []string) error {
	got := make([]string, len(r.events))
	for i, t := range r.events {
		got[i] = string(t)
	}
	r.events = nil
	return compareNames("host events", want, got)
}

func compareNames(what string, want, got []string) error {
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		return fmt.Errorf("%w: %s mismatch (-want +got):\n%s", entity.ErrExpectationFailed, what, diff)
	}
	return nil
}

func (r *replay) expectState(want *entity.ExpectedState) error {
	if want == nil {
		return nil
	}
	nav := r.view.State()
	_, hasGuest := r.view.GuestInstanceID()

	var mismatches []string
	check := func(name string, want, got any) {
		if !cmp.Equal(want, got) {
			mismatches = append(mismatches, fmt.Sprintf("%s: want %v, got %v", name, want, got))
		}
	}
	if want.Src != nil {
		check("src", *want.Src, r.view.Src())
	}
	if want.Title != nil {
		check("title", *want.Title, nav.Title)
	}
	if want.HasGuest != nil {
		check("has_guest", *want.HasGuest, hasGuest)
	}
	if want.Attached != nil {
		check("attached", *want.Attached, r.view.IsAttached())
	}
	if want.CanGoBack != nil {
		check("can_go_back", *want.CanGoBack, nav.CanGoBack())
	}
	if want.CanGoForward != nil {
		check("can_go_forward", *want.CanGoForward, nav.CanGoForward())
	}
	if want.Zoom != nil {
		check("zoom", *want.Zoom, nav.ZoomFactor)
	}
	if want.ProcessID != nil {
		check("process_id", *want.ProcessID, nav.ProcessID)
	}

	if len(mismatches) > 0 {
		return fmt.Errorf("%w: %s", entity.ErrExpectationFailed, strings.Join(mismatches, "; "))
	}
	return nil
}
