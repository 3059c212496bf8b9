package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/guestview/internal/application/guestview"
	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
	"github.com/bnema/guestview/internal/logging"
)

const (
	// maxSettleRounds bounds the flush/pump loop run after every step.
	maxSettleRounds = 1000

	defaultLoadErrorCode        = -105
	defaultLoadErrorDescription = "ERR_NAME_NOT_RESOLVED"
	defaultCreateFailure        = "simulated create failure"
	failCreateOff               = "off"
)

// ReplayScenarioUseCase replays scripted scenarios against a guest view
// controller wired to a simulated bridge and host element.
type ReplayScenarioUseCase struct {
	factory     port.SimulationFactory
	sim         port.SimulationConfig
	passthrough []string
	element     port.ElementConfig
	logger      port.LoggerFromContext
}

// ReplayOption configures a ReplayScenarioUseCase.
type ReplayOption func(*ReplayScenarioUseCase)

// WithSimulationConfig tunes the simulated bridge.
func WithSimulationConfig(cfg port.SimulationConfig) ReplayOption {
	return func(uc *ReplayScenarioUseCase) { uc.sim = cfg }
}

// WithPassthroughAttributes adds plain string properties to every replayed
// controller.
func WithPassthroughAttributes(names []string) ReplayOption {
	return func(uc *ReplayScenarioUseCase) { uc.passthrough = append([]string(nil), names...) }
}

// WithElementDefaults supplies base URL, size and document zoom for
// scenarios that leave them unset.
func WithElementDefaults(cfg port.ElementConfig) ReplayOption {
	return func(uc *ReplayScenarioUseCase) { uc.element = cfg }
}

// WithLogger overrides how the use case resolves its logger.
func WithLogger(fn port.LoggerFromContext) ReplayOption {
	return func(uc *ReplayScenarioUseCase) { uc.logger = fn }
}

// NewReplayScenarioUseCase creates a replay use case.
func NewReplayScenarioUseCase(factory port.SimulationFactory, opts ...ReplayOption) *ReplayScenarioUseCase {
	uc := &ReplayScenarioUseCase{
		factory: factory,
		logger:  logging.FromContext,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ReplayScenarioInput selects the scenario to replay.
type ReplayScenarioInput struct {
	Scenario *entity.Scenario
	RunID    string
}

// ReplayScenarioOutput holds the trace of a replay, complete up to the
// step that failed.
type ReplayScenarioOutput struct {
	Trace *Trace
}

// Execute replays every step in order and stops at the first failure. The
// output is returned even when the replay fails.
func (uc *ReplayScenarioUseCase) Execute(ctx context.Context, input ReplayScenarioInput) (*ReplayScenarioOutput, error) {
	sc := input.Scenario
	if sc == nil {
		return nil, errors.New("scenario is required")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	ctx = logging.WithComponent(ctx, "replay")
	if input.RunID != "" {
		ctx = logging.WithRunID(ctx, input.RunID)
	}
	log := uc.logger(ctx)

	r, err := uc.newReplay(ctx, sc)
	if err != nil {
		return nil, err
	}
	defer r.teardown()

	trace := &Trace{RunID: input.RunID, Scenario: sc.Name, Passed: true}
	out := &ReplayScenarioOutput{Trace: trace}
	log.Info().Str("scenario", sc.Name).Int("steps", len(sc.Steps)).Msg("replay started")

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			trace.fail(err)
			return out, err
		}
		entry, stepErr := r.run(step)
		entry.Index = i + 1
		entry.Action = step.Action
		trace.Steps = append(trace.Steps, entry)
		if stepErr != nil {
			stepErr = fmt.Errorf("step %d (%s): %w", i+1, step.Action, stepErr)
			trace.Steps[len(trace.Steps)-1].Error = stepErr.Error()
			trace.fail(stepErr)
			log.Warn().Err(stepErr).Str("scenario", sc.Name).Msg("replay failed")
			return out, stepErr
		}
		log.Debug().Int("step", i+1).Str("action", string(step.Action)).Msg(entry.Summary)
	}

	log.Info().Str("scenario", sc.Name).Msg("replay passed")
	return out, nil
}

func (uc *ReplayScenarioUseCase) newReplay(ctx context.Context, sc *entity.Scenario) (*replay, error) {
	elCfg := port.ElementConfig{
		BaseURL:      firstNonEmpty(sc.BaseURL, uc.element.BaseURL),
		Width:        firstPositive(sc.Element.Width, uc.element.Width),
		Height:       firstPositive(sc.Element.Height, uc.element.Height),
		DocumentZoom: sc.Element.DocumentZoom,
		Attributes:   sc.Element.Attributes,
	}
	if elCfg.DocumentZoom <= 0 {
		elCfg.DocumentZoom = uc.element.DocumentZoom
	}

	el, err := uc.factory.NewElement(elCfg)
	if err != nil {
		return nil, fmt.Errorf("create element: %w", err)
	}
	bridge := uc.factory.NewBridge(ctx, uc.sim)

	reg := guestview.NewRegistry(ctx, bridge, guestview.WithPassthroughAttributes(uc.passthrough...))
	r := &replay{
		log:     uc.logger(ctx),
		bridge:  bridge,
		element: el,
		reg:     reg,
		view:    reg.Create(el),
		prevent: make(map[entity.EventType]int),
	}
	el.OnAttributeChanged(r.view.AttributeChanged)
	el.AddAnyListener(r.onHostEvent)

	// Construction may already have written attributes.
	_, _ = r.settle()
	r.collect()
	return r, nil
}

// replay is the state of one scenario run.
type replay struct {
	log     *zerolog.Logger
	bridge  port.SimulatedBridge
	element port.SimulatedElement
	reg     *guestview.Registry
	view    *guestview.Controller

	// observed since the last matching expectation
	calls  []port.BridgeCall
	events []entity.EventType

	dialogs []dialogAnswer
	prevent map[entity.EventType]int
}

type dialogAnswer struct {
	accept   bool
	response string
}

func (r *replay) onHostEvent(ev port.HostEvent) {
	if n := r.prevent[ev.Type()]; n > 0 {
		ev.PreventDefault()
		r.prevent[ev.Type()] = n - 1
	}
	d, ok := ev.(*guestview.DialogEvent)
	if !ok || d.Answered() || len(r.dialogs) == 0 {
		return
	}
	answer := r.dialogs[0]
	r.dialogs = r.dialogs[1:]
	if answer.accept {
		d.OK(answer.response)
		return
	}
	d.Cancel()
}

// run executes one step, settles the simulation and records what happened.
func (r *replay) run(step entity.ScenarioStep) (TraceStep, error) {
	var entry TraceStep

	switch step.Action {
	case entity.ActionExpectCalls:
		entry.Summary = fmt.Sprintf("expect calls %v", step.Expect)
		return entry, r.expectCalls(step.Expect)
	case entity.ActionExpectEvents:
		entry.Summary = fmt.Sprintf("expect events %v", step.Expect)
		return entry, r.expectEvents(step.Expect)
	case entity.ActionExpectState:
		entry.Summary = "expect state"
		return entry, r.expectState(step.State)
	}

	summary, result, err := r.apply(step)
	entry.Summary = summary
	entry.Result = result
	if err != nil {
		return entry, err
	}

	delivered, err := r.settle()
	if step.Action == entity.ActionPump {
		entry.Result = delivered
	}
	entry.Calls, entry.Events = r.collect()
	return entry, err
}

func (r *replay) apply(step entity.ScenarioStep) (string, any, error) {
	switch step.Action {
	case entity.ActionAttach:
		r.view.ElementAttached()
		return "element attached", nil, nil

	case entity.ActionDetach:
		r.view.ElementDetached()
		return "element detached", nil, nil

	case entity.ActionSetAttribute:
		r.element.SetAttribute(step.Name, step.Value)
		return fmt.Sprintf("%s=%q", step.Name, step.Value), nil, nil

	case entity.ActionRemoveAttribute:
		r.element.RemoveAttribute(step.Name)
		return fmt.Sprintf("removed %s", step.Name), nil, nil

	case entity.ActionBridgeHandle:
		r.view.SetBridgeHandle(entity.BridgeHandleID(step.Handle))
		return fmt.Sprintf("bridge handle %d", step.Handle), nil, nil

	case entity.ActionResize:
		size := entity.Size{Width: step.Width, Height: step.Height}
		r.element.Resize(size)
		handle, ok := r.view.BridgeHandle()
		if !ok {
			return fmt.Sprintf("resized to %dx%d", size.Width, size.Height), 0, nil
		}
		n := r.bridge.TriggerResize(handle, size)
		return fmt.Sprintf("resized to %dx%d", size.Width, size.Height), n, nil

	case entity.ActionGuestEvent:
		id, ok := r.view.GuestInstanceID()
		if !ok {
			return "guest event " + step.Event, nil, entity.ErrNoGuest
		}
		if !r.bridge.Emit(id, step.Event, step.Payload) {
			return "guest event " + step.Event, nil, fmt.Errorf("guest %d unknown to bridge", id)
		}
		return "guest event " + step.Event, nil, nil

	case entity.ActionCall:
		result, err := r.call(step.Command, step.Args)
		return "call " + step.Command, result, err

	case entity.ActionCrash:
		id, ok := r.view.GuestInstanceID()
		if !ok {
			return "crash", nil, entity.ErrNoGuest
		}
		return fmt.Sprintf("crash guest %d", id), r.bridge.Crash(id, step.Reason), nil

	case entity.ActionFailCreate:
		if step.Value == failCreateOff {
			r.bridge.FailCreate(nil)
			return "guest creation restored", nil, nil
		}
		msg := firstNonEmpty(step.Description, defaultCreateFailure)
		r.bridge.FailCreate(errors.New(msg))
		return "guest creation fails: " + msg, nil, nil

	case entity.ActionFailLoad:
		code := step.Code
		if code == 0 {
			code = defaultLoadErrorCode
		}
		desc := firstNonEmpty(step.Description, defaultLoadErrorDescription)
		r.bridge.FailLoad(step.URL, code, desc)
		return fmt.Sprintf("loads of %s fail with %d", step.URL, code), nil, nil

	case entity.ActionDialogResponse:
		r.dialogs = append(r.dialogs, dialogAnswer{accept: step.Accept, response: step.Response})
		if step.Accept {
			return fmt.Sprintf("next dialog answered OK %q", step.Response), nil, nil
		}
		return "next dialog cancelled", nil, nil

	case entity.ActionPreventDefault:
		r.prevent[entity.EventType(step.Event)]++
		return "prevent default of next " + step.Event, nil, nil

	case entity.ActionPump:
		return "pump", nil, nil
	}
	return "", nil, fmt.Errorf("unknown action %q", step.Action)
}

// settle flushes element observers and pumps the bridge until both are
// idle. It returns the number of records and events delivered.
func (r *replay) settle() (int, error) {
	total := 0
	for range maxSettleRounds {
		n := r.element.Flush() + r.bridge.Pump()
		if n == 0 {
			return total, nil
		}
		total += n
	}
	return total, fmt.Errorf("simulation not idle after %d rounds", maxSettleRounds)
}

// collect moves the calls and events observed since the previous collect
// into the expectation buffers and returns them for the trace.
func (r *replay) collect() ([]port.BridgeCall, []TraceEvent) {
	calls := r.bridge.TakeCalls()
	r.calls = append(r.calls, calls...)

	dispatched := r.element.DrainEvents()
	events := make([]TraceEvent, 0, len(dispatched))
	for _, ev := range dispatched {
		r.events = append(r.events, ev.Type())
		events = append(events, newTraceEvent(ev))
	}
	return calls, events
}

func (r *replay) teardown() {
	r.reg.Destroy(r.view.ViewInstanceID())
	if _, err := r.settle(); err != nil {
		r.log.Warn().Err(err).Msg("teardown did not settle")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
