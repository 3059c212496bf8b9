package entity

import (
	"fmt"
	"strings"
)

// ScenarioAction names what a replay step does.
type ScenarioAction string

const (
	ActionAttach          ScenarioAction = "attach"
	ActionDetach          ScenarioAction = "detach"
	ActionSetAttribute    ScenarioAction = "set_attribute"
	ActionRemoveAttribute ScenarioAction = "remove_attribute"
	ActionBridgeHandle    ScenarioAction = "bridge_handle"
	ActionResize          ScenarioAction = "resize"
	ActionGuestEvent      ScenarioAction = "guest_event"
	ActionCall            ScenarioAction = "call"
	ActionCrash           ScenarioAction = "crash"
	ActionFailCreate      ScenarioAction = "fail_create"
	ActionFailLoad        ScenarioAction = "fail_load"
	ActionDialogResponse  ScenarioAction = "dialog_response"
	ActionPreventDefault  ScenarioAction = "prevent_default"
	ActionExpectCalls     ScenarioAction = "expect_calls"
	ActionExpectEvents    ScenarioAction = "expect_events"
	ActionExpectState     ScenarioAction = "expect_state"
	ActionPump            ScenarioAction = "pump"
)

var scenarioActions = map[ScenarioAction]struct{}{
	ActionAttach:          {},
	ActionDetach:          {},
	ActionSetAttribute:    {},
	ActionRemoveAttribute: {},
	ActionBridgeHandle:    {},
	ActionResize:          {},
	ActionGuestEvent:      {},
	ActionCall:            {},
	ActionCrash:           {},
	ActionFailCreate:      {},
	ActionFailLoad:        {},
	ActionDialogResponse:  {},
	ActionPreventDefault:  {},
	ActionExpectCalls:     {},
	ActionExpectEvents:    {},
	ActionExpectState:     {},
	ActionPump:            {},
}

// Valid reports whether a is a known action.
func (a ScenarioAction) Valid() bool {
	_, ok := scenarioActions[a]
	return ok
}

// Scenario is a scripted sequence of host framework and guest interactions
// replayed against one controller.
type Scenario struct {
	Name        string          `mapstructure:"name" json:"name,omitempty" yaml:"name" toml:"name" jsonschema:"description=Scenario name shown in traces; defaults to the file name"`
	Description string          `mapstructure:"description" json:"description,omitempty" yaml:"description" toml:"description"`
	BaseURL     string          `mapstructure:"base_url" json:"base_url,omitempty" yaml:"base_url" toml:"base_url" jsonschema:"description=Document base URL for resolving src"`
	Element     ScenarioElement `mapstructure:"element" json:"element,omitempty" yaml:"element" toml:"element"`
	Steps       []ScenarioStep  `mapstructure:"steps" json:"steps" yaml:"steps" toml:"steps" jsonschema:"minItems=1"`
}

// ScenarioElement describes the host element before the controller exists.
type ScenarioElement struct {
	Width        int               `mapstructure:"width" json:"width,omitempty" yaml:"width" toml:"width" jsonschema:"minimum=0"`
	Height       int               `mapstructure:"height" json:"height,omitempty" yaml:"height" toml:"height" jsonschema:"minimum=0"`
	DocumentZoom float64           `mapstructure:"document_zoom" json:"document_zoom,omitempty" yaml:"document_zoom" toml:"document_zoom" jsonschema:"minimum=0"`
	Attributes   map[string]string `mapstructure:"attributes" json:"attributes,omitempty" yaml:"attributes" toml:"attributes"`
}

// ScenarioStep is one replay step. Which fields are read depends on Action.
type ScenarioStep struct {
	Action ScenarioAction `mapstructure:"action" json:"action" yaml:"action" toml:"action" jsonschema:"enum=attach,enum=detach,enum=set_attribute,enum=remove_attribute,enum=bridge_handle,enum=resize,enum=guest_event,enum=call,enum=crash,enum=fail_create,enum=fail_load,enum=dialog_response,enum=prevent_default,enum=expect_calls,enum=expect_events,enum=expect_state,enum=pump"`

	// set_attribute, remove_attribute
	Name  string `mapstructure:"name" json:"name,omitempty" yaml:"name" toml:"name"`
	Value string `mapstructure:"value" json:"value,omitempty" yaml:"value" toml:"value"`

	// bridge_handle
	Handle int `mapstructure:"handle" json:"handle,omitempty" yaml:"handle" toml:"handle"`

	// resize
	Width  int `mapstructure:"width" json:"width,omitempty" yaml:"width" toml:"width"`
	Height int `mapstructure:"height" json:"height,omitempty" yaml:"height" toml:"height"`

	// guest_event, prevent_default
	Event   string         `mapstructure:"event" json:"event,omitempty" yaml:"event" toml:"event"`
	Payload map[string]any `mapstructure:"payload" json:"payload,omitempty" yaml:"payload" toml:"payload"`

	// call
	Command string `mapstructure:"command" json:"command,omitempty" yaml:"command" toml:"command"`
	Args    []any  `mapstructure:"args" json:"args,omitempty" yaml:"args" toml:"args"`

	// crash
	Reason string `mapstructure:"reason" json:"reason,omitempty" yaml:"reason" toml:"reason"`

	// fail_load; fail_create reads Description, and Value "off" clears it
	URL         string `mapstructure:"url" json:"url,omitempty" yaml:"url" toml:"url"`
	Code        int    `mapstructure:"code" json:"code,omitempty" yaml:"code" toml:"code"`
	Description string `mapstructure:"description" json:"description,omitempty" yaml:"description" toml:"description"`

	// dialog_response
	Accept   bool   `mapstructure:"accept" json:"accept,omitempty" yaml:"accept" toml:"accept"`
	Response string `mapstructure:"response" json:"response,omitempty" yaml:"response" toml:"response"`

	// expect_calls, expect_events
	Expect []string `mapstructure:"expect" json:"expect,omitempty" yaml:"expect" toml:"expect"`

	// expect_state
	State *ExpectedState `mapstructure:"state" json:"state,omitempty" yaml:"state" toml:"state"`
}

// ExpectedState lists controller properties checked by expect_state. Nil
// fields are not checked.
type ExpectedState struct {
	Src          *string  `mapstructure:"src" json:"src,omitempty" yaml:"src" toml:"src"`
	Title        *string  `mapstructure:"title" json:"title,omitempty" yaml:"title" toml:"title"`
	HasGuest     *bool    `mapstructure:"has_guest" json:"has_guest,omitempty" yaml:"has_guest" toml:"has_guest"`
	Attached     *bool    `mapstructure:"attached" json:"attached,omitempty" yaml:"attached" toml:"attached"`
	CanGoBack    *bool    `mapstructure:"can_go_back" json:"can_go_back,omitempty" yaml:"can_go_back" toml:"can_go_back"`
	CanGoForward *bool    `mapstructure:"can_go_forward" json:"can_go_forward,omitempty" yaml:"can_go_forward" toml:"can_go_forward"`
	Zoom         *float64 `mapstructure:"zoom" json:"zoom,omitempty" yaml:"zoom" toml:"zoom"`
	ProcessID    *int     `mapstructure:"process_id" json:"process_id,omitempty" yaml:"process_id" toml:"process_id"`
}

// Validate checks the actions and the fields each action requires.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}
	var errs []string
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			errs = append(errs, fmt.Sprintf("step %d: %v", i+1, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("scenario %q: %s", s.Name, strings.Join(errs, "; "))
	}
	return nil
}

func (s ScenarioStep) validate() error {
	if !s.Action.Valid() {
		return fmt.Errorf("unknown action %q", s.Action)
	}
	switch s.Action {
	case ActionSetAttribute, ActionRemoveAttribute:
		if s.Name == "" {
			return fmt.Errorf("%s requires name", s.Action)
		}
	case ActionGuestEvent, ActionPreventDefault:
		if s.Event == "" {
			return fmt.Errorf("%s requires event", s.Action)
		}
	case ActionCall:
		if s.Command == "" {
			return fmt.Errorf("call requires command")
		}
	case ActionFailLoad:
		if s.URL == "" {
			return fmt.Errorf("fail_load requires url")
		}
	case ActionResize:
		if s.Width < 0 || s.Height < 0 {
			return fmt.Errorf("resize dimensions must be non-negative")
		}
	case ActionExpectState:
		if s.State == nil {
			return fmt.Errorf("expect_state requires state")
		}
	}
	return nil
}
