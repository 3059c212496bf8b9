package simulation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/domain/entity"
)

func TestFactory_NewElement(t *testing.T) {
	el, err := NewFactory().NewElement(port.ElementConfig{
		BaseURL:      "https://host.test/app/",
		Width:        320,
		Height:       240,
		DocumentZoom: 1.5,
		Attributes:   map[string]string{"src": "page.html"},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://host.test/app/next.html", el.ResolveURL("next.html"))
	assert.Equal(t, entity.Size{Width: 320, Height: 240}, el.ClientSize())
	assert.InDelta(t, 1.5, el.DocumentZoomFactor(), 1e-9)

	src, ok := el.GetAttribute("src")
	assert.True(t, ok)
	assert.Equal(t, "page.html", src)
}

func TestFactory_NewElementBadBaseURL(t *testing.T) {
	_, err := NewFactory().NewElement(port.ElementConfig{BaseURL: "http://[::1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse base url")
}

func TestFactory_NewBridge(t *testing.T) {
	b := NewFactory().NewBridge(context.Background(), port.SimulationConfig{ScriptTimeoutMs: 100})
	require.NotNil(t, b)
	assert.Equal(t, 0, b.Pump())
	assert.Empty(t, b.TakeCalls())
}
