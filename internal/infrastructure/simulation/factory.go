// Package simulation builds the in-memory bridge and host element used by
// scenario replay.
package simulation

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
	"github.com/bnema/guestview/internal/infrastructure/simbridge"
	"github.com/bnema/guestview/internal/infrastructure/simelement"
)

// Factory implements port.SimulationFactory.
type Factory struct{}

var _ port.SimulationFactory = Factory{}

// NewFactory returns a factory of simbridge and simelement instances.
func NewFactory() Factory {
	return Factory{}
}

func (Factory) NewBridge(ctx context.Context, cfg port.SimulationConfig) port.SimulatedBridge {
	return simbridge.New(ctx, simbridge.WithConfig(simbridge.Config{
		ScriptTimeout:    time.Duration(cfg.ScriptTimeoutMs) * time.Millisecond,
		InitialProcessID: cfg.InitialProcessID,
		AcceptLang:       cfg.AcceptLang,
	}))
}

func (Factory) NewElement(cfg port.ElementConfig) (port.SimulatedElement, error) {
	opts := []simelement.Option{
		simelement.WithSize(entity.Size{Width: cfg.Width, Height: cfg.Height}),
		simelement.WithAttributes(cfg.Attributes),
	}
	if cfg.DocumentZoom > 0 {
		opts = append(opts, simelement.WithDocumentZoom(cfg.DocumentZoom))
	}
	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url %q: %w", cfg.BaseURL, err)
		}
		opts = append(opts, simelement.WithBaseURL(base))
	}
	return simelement.New(opts...), nil
}
