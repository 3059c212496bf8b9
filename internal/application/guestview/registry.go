package guestview

import (
	"context"
	"sort"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
	"github.com/bnema/guestview/internal/logging"
)

type options struct {
	passthrough []string
}

// Option configures a Registry.
type Option func(*options)

// WithPassthroughAttributes adds plain string properties on top of the
// built-in table. Names already in the table keep their built-in kind.
func WithPassthroughAttributes(names ...string) Option {
	return func(o *options) {
		o.passthrough = append(o.passthrough, names...)
	}
}

// Registry owns the live controllers of one embedder and the id source
// they are allocated from.
type Registry struct {
	ctx    context.Context
	bridge port.GuestBridge
	opts   options

	nextID entity.ViewInstanceID
	views  map[entity.ViewInstanceID]*Controller
}

// NewRegistry creates a registry whose controllers talk to bridge.
func NewRegistry(ctx context.Context, bridge port.GuestBridge, opts ...Option) *Registry {
	r := &Registry{
		ctx:    ctx,
		bridge: bridge,
		nextID: 1,
		views:  make(map[entity.ViewInstanceID]*Controller),
	}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

// Create allocates a controller for a freshly instantiated host element.
func (r *Registry) Create(el port.HostElement) *Controller {
	id := r.nextID
	r.nextID++

	c := newController(r.ctx, id, r.bridge, el, r.opts.passthrough)
	r.views[id] = c
	return c
}

// Get returns a live controller.
func (r *Registry) Get(id entity.ViewInstanceID) (*Controller, bool) {
	c, ok := r.views[id]
	return c, ok
}

// Destroy discards the controller of a destroyed host element, tearing
// down its guest first. Returns false for unknown ids.
func (r *Registry) Destroy(id entity.ViewInstanceID) bool {
	c, ok := r.views[id]
	if !ok {
		return false
	}
	c.close()
	delete(r.views, id)
	logging.FromContext(r.ctx).Debug().Int("view_id", int(id)).Msg("controller destroyed")
	return true
}

// Len returns the number of live controllers.
func (r *Registry) Len() int {
	return len(r.views)
}

// IDs lists the live controllers in allocation order.
func (r *Registry) IDs() []entity.ViewInstanceID {
	ids := make([]entity.ViewInstanceID, 0, len(r.views))
	for id := range r.views {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
