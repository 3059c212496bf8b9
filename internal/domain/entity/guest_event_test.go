package entity

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGuestEvent_RegisteredFieldsOnly(t *testing.T) {
	ev, err := DecodeGuestEvent("console", map[string]any{
		"level":     2,
		"message":   "boom",
		"line":      float64(12),
		"source_id": "https://example.com/app.js",
		"extra":     "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, Console{Level: 2, Message: "boom", Line: 12, SourceID: "https://example.com/app.js"}, ev)
}

func TestDecodeGuestEvent_Unknown(t *testing.T) {
	_, err := DecodeGuestEvent("found-in-page", nil)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDecodeGuestEvent_FailLoadLegacyKey(t *testing.T) {
	ev, err := DecodeGuestEvent("did-fail-load", map[string]any{
		"url":               "https://down.test/",
		"error_code":        "-6",
		"error-description": "FILE_NOT_FOUND",
		"is_top_level":      "true",
	})
	require.NoError(t, err)
	assert.Equal(t, DidFailLoad{
		URL:              "https://down.test/",
		IsTopLevel:       true,
		ErrorCode:        -6,
		ErrorDescription: "FILE_NOT_FOUND",
	}, ev)
}

func TestEncodeGuestEvent_RoundTrips(t *testing.T) {
	events := []GuestEvent{
		NavigationCommitted{URL: "https://a.test/", IsTopLevel: true, EntryIndex: 2, EntryCount: 3, ProcessID: 7},
		ZoomChanged{OldZoomFactor: 1, NewZoomFactor: 2.5},
		Dialog{OriginURL: "https://a.test/", MessageType: "alert", MessageText: "hi"},
		TitleSet{Title: "T", ExplicitSet: true},
		DidStopLoading{},
	}
	for _, want := range events {
		t.Run(string(want.EventType()), func(t *testing.T) {
			eventType, payload := EncodeGuestEvent(want)
			got, err := DecodeGuestEvent(eventType, payload)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestPayload_JSONNumbers(t *testing.T) {
	var p Payload
	dec := json.NewDecoder(strings.NewReader(`{"n": 42, "f": 1.25}`))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&p))

	assert.Equal(t, 42, p.Int("n"))
	assert.InDelta(t, 1.25, p.Float("f"), 1e-9)
	assert.Equal(t, 0, p.Int("missing"))
	assert.Equal(t, "42", p.String("n"))
}

func TestEventType_HostVisible(t *testing.T) {
	assert.False(t, EventNavigationCommitted.HostVisible())
	assert.False(t, EventZoomChanged.HostVisible())
	assert.True(t, EventDialog.HostVisible())
	assert.True(t, EventResize.HostVisible())
	assert.False(t, EventType("found-in-page").HostVisible())
}
