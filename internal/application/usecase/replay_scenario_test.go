package usecase_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/application/usecase"
	"github.com/bnema/guestview/internal/domain/entity"
	"github.com/bnema/guestview/internal/infrastructure/simulation"
	"github.com/bnema/guestview/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testContext() context.Context {
	logger := logging.New(logging.Config{Level: logging.ParseLevel("debug"), Format: "console"})
	return logging.WithContext(context.Background(), logger)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newReplay() *usecase.ReplayScenarioUseCase {
	return usecase.NewReplayScenarioUseCase(simulation.NewFactory(),
		usecase.WithElementDefaults(port.ElementConfig{
			BaseURL:      "https://host.test/app/",
			Width:        800,
			Height:       600,
			DocumentZoom: 1,
		}),
		usecase.WithSimulationConfig(port.SimulationConfig{
			ScriptTimeoutMs:  2000,
			InitialProcessID: 1000,
			AcceptLang:       "en-US",
		}),
	)
}

// attachSteps brings a guest up on handle 7 with src already present.
func attachSteps() []entity.ScenarioStep {
	return []entity.ScenarioStep{
		{Action: entity.ActionBridgeHandle, Handle: 7},
		{Action: entity.ActionAttach},
		{Action: entity.ActionExpectCalls, Expect: []string{
			"registerResizeCallback", "createGuest", "setEventHandler", "attachGuest",
		}},
		{Action: entity.ActionExpectEvents, Expect: []string{
			"did-start-loading", "did-frame-finish-load", "did-stop-loading",
		}},
	}
}

func scenarioWith(steps ...entity.ScenarioStep) *entity.Scenario {
	return &entity.Scenario{
		Name:    "test",
		Element: entity.ScenarioElement{Attributes: map[string]string{"src": "https://example.com/"}},
		Steps:   append(attachSteps(), steps...),
	}
}

func TestReplayScenario_AttachCreatesGuest(t *testing.T) {
	uc := newReplay()

	out, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		RunID: "run-1",
		Scenario: scenarioWith(entity.ScenarioStep{
			Action: entity.ActionExpectState,
			State: &entity.ExpectedState{
				Src:       strPtr("https://example.com/"),
				HasGuest:  boolPtr(true),
				Attached:  boolPtr(true),
				CanGoBack: boolPtr(false),
			},
		}),
	})

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.Trace.Passed)
	assert.Equal(t, "run-1", out.Trace.RunID)
	assert.Len(t, out.Trace.Steps, 5)
	assert.Equal(t, entity.ActionAttach, out.Trace.Steps[1].Action)
	assert.Equal(t, 4, out.Trace.CallCount())
	assert.Equal(t, 3, out.Trace.EventCount())
}

func TestReplayScenario_NavigationAndWriteBack(t *testing.T) {
	uc := newReplay()

	_, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: scenarioWith(
			entity.ScenarioStep{Action: entity.ActionSetAttribute, Name: "src", Value: "next.html"},
			entity.ScenarioStep{Action: entity.ActionExpectCalls, Expect: []string{"loadUrl"}},
			entity.ScenarioStep{Action: entity.ActionExpectState, State: &entity.ExpectedState{
				Src:       strPtr("https://host.test/app/next.html"),
				CanGoBack: boolPtr(true),
			}},
			entity.ScenarioStep{Action: entity.ActionCall, Command: "back"},
			// The committed entry is written back to src without a new load.
			entity.ScenarioStep{Action: entity.ActionExpectCalls, Expect: []string{"go"}},
			entity.ScenarioStep{Action: entity.ActionExpectState, State: &entity.ExpectedState{
				Src:          strPtr("https://example.com/"),
				CanGoBack:    boolPtr(false),
				CanGoForward: boolPtr(true),
			}},
		),
	})

	require.NoError(t, err)
}

func TestReplayScenario_DialogAnsweredByListener(t *testing.T) {
	uc := newReplay()

	out, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: scenarioWith(
			entity.ScenarioStep{Action: entity.ActionDialogResponse, Accept: true, Response: "yes"},
			entity.ScenarioStep{Action: entity.ActionCall, Command: "executeScript", Args: []any{`prompt("name?")`}},
			entity.ScenarioStep{Action: entity.ActionExpectCalls, Expect: []string{"executeScript", "dialogClosed"}},
			entity.ScenarioStep{Action: entity.ActionExpectEvents, Expect: []string{"dialog"}},
		),
	})

	require.NoError(t, err)
	call := out.Trace.Steps[5]
	require.Len(t, call.Calls, 2)
	assert.Equal(t, []any{true, "yes"}, call.Calls[1].Args)
	require.Len(t, call.Events, 1)
	assert.True(t, call.Events[0].Cancelled)
}

func TestReplayScenario_DialogDefaultIsCancel(t *testing.T) {
	uc := newReplay()

	out, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: scenarioWith(
			entity.ScenarioStep{Action: entity.ActionCall, Command: "executeScript", Args: []any{`alert("hi")`}},
			entity.ScenarioStep{Action: entity.ActionExpectCalls, Expect: []string{"executeScript", "dialogClosed"}},
		),
	})

	require.NoError(t, err)
	assert.Equal(t, []any{false, ""}, out.Trace.Steps[4].Calls[1].Args)
}

func TestReplayScenario_PreventedDialogStaysOpen(t *testing.T) {
	uc := newReplay()

	_, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: scenarioWith(
			entity.ScenarioStep{Action: entity.ActionPreventDefault, Event: "dialog"},
			entity.ScenarioStep{Action: entity.ActionCall, Command: "executeScript", Args: []any{`confirm("ok?")`}},
			entity.ScenarioStep{Action: entity.ActionExpectCalls, Expect: []string{"executeScript"}},
		),
	})

	require.NoError(t, err)
}

func TestReplayScenario_TitleAndZoom(t *testing.T) {
	uc := newReplay()

	out, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: scenarioWith(
			entity.ScenarioStep{Action: entity.ActionCall, Command: "executeScript", Args: []any{`document.title = "Hello"`}},
			entity.ScenarioStep{Action: entity.ActionCall, Command: "setZoom", Args: []any{1.5}},
			entity.ScenarioStep{Action: entity.ActionCall, Command: "getTitle"},
			entity.ScenarioStep{Action: entity.ActionExpectState, State: &entity.ExpectedState{Title: strPtr("Hello")}},
		),
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello", out.Trace.Steps[6].Result)
}

func TestReplayScenario_ExpectationMismatchFails(t *testing.T) {
	uc := newReplay()

	out, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: scenarioWith(
			entity.ScenarioStep{Action: entity.ActionCall, Command: "reload"},
			entity.ScenarioStep{Action: entity.ActionExpectCalls, Expect: []string{"stop"}},
			entity.ScenarioStep{Action: entity.ActionPump},
		),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrExpectationFailed)
	require.NotNil(t, out)
	assert.False(t, out.Trace.Passed)
	assert.Contains(t, out.Trace.Failure, "step 6")
	// The trace stops at the failing step.
	assert.Len(t, out.Trace.Steps, 6)
	assert.NotEmpty(t, out.Trace.Steps[5].Error)
}

func TestReplayScenario_CommandsWithoutGuestAreDropped(t *testing.T) {
	uc := newReplay()

	out, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: &entity.Scenario{
			Name: "no guest",
			Steps: []entity.ScenarioStep{
				{Action: entity.ActionCall, Command: "loadUrl", Args: []any{"https://example.com/"}},
				{Action: entity.ActionCall, Command: "canGoBack"},
				{Action: entity.ActionCall, Command: "isDevToolsOpened"},
				{Action: entity.ActionExpectCalls},
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, false, out.Trace.Steps[1].Result)
	assert.Equal(t, false, out.Trace.Steps[2].Result)
}

func TestReplayScenario_UnknownCommand(t *testing.T) {
	uc := newReplay()

	_, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: &entity.Scenario{
			Name:  "bad call",
			Steps: []entity.ScenarioStep{{Action: entity.ActionCall, Command: "teleport"}},
		},
	})

	assert.ErrorIs(t, err, entity.ErrUnknownCommand)
}

func TestReplayScenario_CreateFailureThenReattach(t *testing.T) {
	uc := newReplay()

	_, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: &entity.Scenario{
			Name:    "create failure",
			Element: entity.ScenarioElement{Attributes: map[string]string{"src": "https://example.com/"}},
			Steps: []entity.ScenarioStep{
				{Action: entity.ActionBridgeHandle, Handle: 3},
				{Action: entity.ActionFailCreate, Description: "out of processes"},
				{Action: entity.ActionAttach},
				{Action: entity.ActionExpectState, State: &entity.ExpectedState{HasGuest: boolPtr(false)}},
				{Action: entity.ActionSetAttribute, Name: "src", Value: "https://example.org/"},
				// No retry until the element is re-attached.
				{Action: entity.ActionExpectCalls, Expect: []string{"registerResizeCallback", "createGuest"}},
				{Action: entity.ActionFailCreate, Value: "off"},
				{Action: entity.ActionDetach},
				{Action: entity.ActionAttach},
				{Action: entity.ActionExpectCalls, Expect: []string{"createGuest", "setEventHandler", "attachGuest"}},
				{Action: entity.ActionExpectState, State: &entity.ExpectedState{HasGuest: boolPtr(true)}},
			},
		},
	})

	require.NoError(t, err)
}

func TestReplayScenario_CrashAndResize(t *testing.T) {
	uc := newReplay()

	out, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: scenarioWith(
			entity.ScenarioStep{Action: entity.ActionCrash, Reason: "oom"},
			entity.ScenarioStep{Action: entity.ActionResize, Width: 1024, Height: 768},
			entity.ScenarioStep{Action: entity.ActionExpectEvents, Expect: []string{"crashed", "resize"}},
			entity.ScenarioStep{Action: entity.ActionExpectCalls, Expect: []string{"setAutoSize"}},
		),
	})

	require.NoError(t, err)
	resize := out.Trace.Steps[5]
	require.Len(t, resize.Events, 1)
	assert.Equal(t, entity.Size{Width: 1024, Height: 768}, resize.Events[0].Detail)
	assert.False(t, resize.Events[0].Cancelled)
}

func TestReplayScenario_FindOptions(t *testing.T) {
	uc := newReplay()

	out, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: scenarioWith(
			entity.ScenarioStep{Action: entity.ActionCall, Command: "find", Args: []any{
				1, "needle", map[string]any{"match_case": true},
			}},
			entity.ScenarioStep{Action: entity.ActionCall, Command: "stopFinding", Args: []any{"bogus"}},
			entity.ScenarioStep{Action: entity.ActionExpectCalls, Expect: []string{"find"}},
		),
	})

	require.NoError(t, err)
	find := out.Trace.Steps[4].Calls[0]
	assert.Equal(t, []any{1, "needle", entity.FindOptions{Forward: true, MatchCase: true}}, find.Args)
}

func TestReplayScenario_InvalidScenario(t *testing.T) {
	uc := newReplay()

	_, err := uc.Execute(testContext(), usecase.ReplayScenarioInput{
		Scenario: &entity.Scenario{Name: "empty"},
	})
	require.Error(t, err)

	_, err = uc.Execute(testContext(), usecase.ReplayScenarioInput{})
	require.Error(t, err)
}

func TestReplayScenario_CancelledContext(t *testing.T) {
	uc := newReplay()
	ctx, cancel := context.WithCancel(testContext())
	cancel()

	out, err := uc.Execute(ctx, usecase.ReplayScenarioInput{Scenario: scenarioWith()})

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, out.Trace.Passed)
	assert.Empty(t, out.Trace.Steps)
}

func TestCommandNames(t *testing.T) {
	names := usecase.CommandNames()
	assert.Contains(t, names, "loadUrl")
	assert.Contains(t, names, "executeScript")
	assert.IsIncreasing(t, names)
}

func TestReplayScenario_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	uc := usecase.NewReplayScenarioUseCase(simulation.NewFactory(),
		usecase.WithLogger(func(context.Context) *zerolog.Logger { return &logger }),
	)

	_, err := uc.Execute(context.Background(), usecase.ReplayScenarioInput{Scenario: scenarioWith()})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"replay started"`)
	assert.Contains(t, buf.String(), `"message":"replay passed"`)
	assert.Contains(t, buf.String(), `"scenario":"test"`)
}
