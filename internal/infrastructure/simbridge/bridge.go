// Package simbridge is an in-memory native bridge. It hosts fake guests with
// a navigation history, runs injected scripts in a sobek runtime and
// delivers guest events in order when pumped.
package simbridge

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
	"github.com/bnema/guestview/internal/logging"
)

const (
	defaultScriptTimeout    = 2 * time.Second
	defaultInitialProcessID = 1000
	programCacheCapacity    = 64
)

// Config tunes the simulated guests.
type Config struct {
	ScriptTimeout    time.Duration
	InitialProcessID int
	AcceptLang       string
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		ScriptTimeout:    defaultScriptTimeout,
		InitialProcessID: defaultInitialProcessID,
		AcceptLang:       "en-US",
	}
}

// CreateHook runs inside CreateGuest after the id is allocated and before
// it is returned to the caller.
type CreateHook func(id entity.GuestInstanceID)

// Bridge implements port.GuestBridge in memory.
type Bridge struct {
	ctx context.Context
	cfg Config

	mu          sync.Mutex
	nextGuest   entity.GuestInstanceID
	nextProcess int
	guests      map[entity.GuestInstanceID]*guest
	resize      map[entity.BridgeHandleID][]port.ResizeCallback
	failures    map[string]loadFailure
	createErr   error
	onCreate    CreateHook
	queue       []delivery
	calls       []Call
	taken       int
	programs    *programCache
}

var _ port.SimulatedBridge = (*Bridge)(nil)

type loadFailure struct {
	code        int
	description string
}

// DialogAnswer is an embedder response to a guest dialog.
type DialogAnswer struct {
	Accepted bool   `json:"accepted"`
	Response string `json:"response"`
}

type guest struct {
	id        entity.GuestInstanceID
	partition string
	handle    entity.BridgeHandleID
	attached  bool
	processID int

	history []string
	index   int

	zoom     float64
	title    string
	devTools bool
	css      []string
	autoSize entity.AutoSizeParams
	finds    []string
	answers  []DialogAnswer

	handler   port.GuestEventHandler
	destroyed bool
	script    *scriptHost
}

func (g *guest) currentURL() string {
	if g.index < 0 || g.index >= len(g.history) {
		return ""
	}
	return g.history[g.index]
}

// GuestState is a snapshot of one simulated guest.
type GuestState struct {
	ID        entity.GuestInstanceID `json:"id"`
	Partition string                 `json:"partition,omitempty"`
	Handle    entity.BridgeHandleID  `json:"handle"`
	Attached  bool                   `json:"attached"`
	ProcessID int                    `json:"process_id"`
	History   []string               `json:"history"`
	Index     int                    `json:"index"`
	URL       string                 `json:"url"`
	Zoom      float64                `json:"zoom"`
	Title     string                 `json:"title"`
	DevTools  bool                   `json:"devtools"`
	CSS       []string               `json:"css,omitempty"`
	AutoSize  entity.AutoSizeParams  `json:"autosize"`
	Finds     []string               `json:"finds,omitempty"`
	Answers   []DialogAnswer         `json:"answers,omitempty"`
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithConfig overrides the default configuration. Zero fields keep their
// defaults.
func WithConfig(cfg Config) Option {
	return func(b *Bridge) {
		if cfg.ScriptTimeout > 0 {
			b.cfg.ScriptTimeout = cfg.ScriptTimeout
		}
		if cfg.InitialProcessID > 0 {
			b.cfg.InitialProcessID = cfg.InitialProcessID
		}
		if cfg.AcceptLang != "" {
			b.cfg.AcceptLang = cfg.AcceptLang
		}
	}
}

// WithCreateHook installs a hook run during CreateGuest.
func WithCreateHook(hook CreateHook) Option {
	return func(b *Bridge) { b.onCreate = hook }
}

// New creates an empty bridge.
func New(ctx context.Context, opts ...Option) *Bridge {
	b := &Bridge{
		ctx:       logging.WithComponent(ctx, "simbridge"),
		cfg:       DefaultConfig(),
		nextGuest: 1,
		guests:    make(map[entity.GuestInstanceID]*guest),
		resize:    make(map[entity.BridgeHandleID][]port.ResizeCallback),
		failures:  make(map[string]loadFailure),
		programs:  newProgramCache(programCacheCapacity),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.nextProcess = b.cfg.InitialProcessID
	return b
}

func (b *Bridge) logger() *zerolog.Logger {
	return logging.FromContext(b.ctx)
}

// FailCreate makes the next CreateGuest calls fail with err. Nil clears it.
func (b *Bridge) FailCreate(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.createErr = err
}

// FailLoad makes navigations to url fail with code and description.
func (b *Bridge) FailLoad(url string, code int, description string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[url] = loadFailure{code: code, description: description}
}

func (b *Bridge) CreateGuest(params entity.CreateGuestParams) (entity.GuestInstanceID, error) {
	b.mu.Lock()
	b.record(MethodCreateGuest, 0, params.Partition)
	if b.createErr != nil {
		err := b.createErr
		b.mu.Unlock()
		return 0, err
	}

	id := b.nextGuest
	b.nextGuest++
	b.guests[id] = &guest{
		id:        id,
		partition: params.Partition,
		processID: b.nextProcess,
		index:     -1,
		zoom:      entity.ZoomDefault,
	}
	b.nextProcess++
	hook := b.onCreate
	b.mu.Unlock()

	b.logger().Debug().Int("guest_id", int(id)).Str("partition", params.Partition).Msg("guest created")
	if hook != nil {
		hook(id)
	}
	return id, nil
}

func (b *Bridge) DestroyGuest(id entity.GuestInstanceID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodDestroyGuest, id)

	g, ok := b.guests[id]
	if !ok || g.destroyed {
		return
	}
	g.destroyed = true
	g.attached = false
	b.enqueue(g, entity.Destroyed{})
	b.logger().Debug().Int("guest_id", int(id)).Msg("guest destroyed")
}

func (b *Bridge) AttachGuest(handle entity.BridgeHandleID, id entity.GuestInstanceID, params entity.AttachParams) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodAttachGuest, id, handle, params)

	g, ok := b.live(id)
	if !ok {
		return false
	}
	g.handle = handle
	g.attached = true
	if params.ZoomFactor > 0 {
		g.zoom = entity.ClampZoom(params.ZoomFactor)
	}

	// The native side navigates to the src carried by the attach params.
	if src, _ := params.Attributes["src"].(string); src != "" && len(g.history) == 0 {
		b.navigate(g, src)
	}
	return true
}

func (b *Bridge) SetEventHandler(id entity.GuestInstanceID, handler port.GuestEventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodSetEventHandler, id)

	if g, ok := b.guests[id]; ok {
		g.handler = handler
	}
}

func (b *Bridge) RegisterResizeCallback(handle entity.BridgeHandleID, callback port.ResizeCallback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodRegisterResizeCallback, 0, handle)
	b.resize[handle] = append(b.resize[handle], callback)
}

// TriggerResize invokes the resize callbacks registered for handle.
func (b *Bridge) TriggerResize(handle entity.BridgeHandleID, size entity.Size) int {
	b.mu.Lock()
	callbacks := append([]port.ResizeCallback(nil), b.resize[handle]...)
	b.mu.Unlock()

	for _, cb := range callbacks {
		cb(size)
	}
	return len(callbacks)
}

func (b *Bridge) SetAutoSize(id entity.GuestInstanceID, params entity.AutoSizeParams) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodSetAutoSize, id, params)

	g, ok := b.live(id)
	if !ok {
		return
	}
	if params.IsResize() {
		g.autoSize.Normal = params.Normal
		return
	}
	normal := g.autoSize.Normal
	g.autoSize = params
	g.autoSize.Normal = normal
}

func (b *Bridge) SetZoom(id entity.GuestInstanceID, factor float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodSetZoom, id, factor)

	g, ok := b.live(id)
	if !ok {
		return
	}
	old := g.zoom
	g.zoom = entity.ClampZoom(factor)
	if g.zoom != old {
		b.enqueue(g, entity.ZoomChanged{OldZoomFactor: old, NewZoomFactor: g.zoom})
	}
}

func (b *Bridge) Find(id entity.GuestInstanceID, requestID int, text string, options entity.FindOptions) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodFind, id, requestID, text, options)

	if g, ok := b.live(id); ok {
		g.finds = append(g.finds, text)
	}
}

func (b *Bridge) StopFinding(id entity.GuestInstanceID, action entity.StopFindingAction) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodStopFinding, id, action)
}

func (b *Bridge) InsertCSS(id entity.GuestInstanceID, css string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodInsertCSS, id, css)

	if g, ok := b.live(id); ok {
		g.css = append(g.css, css)
	}
}

func (b *Bridge) OpenDevTools(id entity.GuestInstanceID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodOpenDevTools, id)

	if g, ok := b.live(id); ok {
		g.devTools = true
	}
}

func (b *Bridge) CloseDevTools(id entity.GuestInstanceID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodCloseDevTools, id)

	if g, ok := b.live(id); ok {
		g.devTools = false
	}
}

func (b *Bridge) IsDevToolsOpened(id entity.GuestInstanceID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodIsDevToolsOpened, id)

	g, ok := b.live(id)
	return ok && g.devTools
}

func (b *Bridge) DialogClosed(id entity.GuestInstanceID, accepted bool, response string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(MethodDialogClosed, id, accepted, response)

	if g, ok := b.live(id); ok {
		g.answers = append(g.answers, DialogAnswer{Accepted: accepted, Response: response})
	}
}

// Crash kills the guest renderer and reports it.
func (b *Bridge) Crash(id entity.GuestInstanceID, reason string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	g, ok := b.live(id)
	if !ok {
		return false
	}
	if reason == "" {
		reason = "killed"
	}
	b.enqueue(g, entity.Crashed{ProcessID: g.processID, Reason: reason})
	g.processID = b.nextProcess
	b.nextProcess++
	g.script = nil
	return true
}

// Guest returns a snapshot of a guest, including destroyed guests whose
// final event was not delivered yet.
func (b *Bridge) Guest(id entity.GuestInstanceID) (GuestState, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	g, ok := b.guests[id]
	if !ok {
		return GuestState{}, false
	}
	return GuestState{
		ID:        g.id,
		Partition: g.partition,
		Handle:    g.handle,
		Attached:  g.attached,
		ProcessID: g.processID,
		History:   append([]string(nil), g.history...),
		Index:     g.index,
		URL:       g.currentURL(),
		Zoom:      g.zoom,
		Title:     g.title,
		DevTools:  g.devTools,
		CSS:       append([]string(nil), g.css...),
		AutoSize:  g.autoSize,
		Finds:     append([]string(nil), g.finds...),
		Answers:   append([]DialogAnswer(nil), g.answers...),
	}, true
}

// LiveGuests returns the number of guests not destroyed.
func (b *Bridge) LiveGuests() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, g := range b.guests {
		if !g.destroyed {
			n++
		}
	}
	return n
}

// live returns a guest that was not destroyed. Callers hold b.mu.
func (b *Bridge) live(id entity.GuestInstanceID) (*guest, bool) {
	g, ok := b.guests[id]
	if !ok || g.destroyed {
		return nil, false
	}
	return g, true
}
