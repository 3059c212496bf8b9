package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// EventType names a guest-originated event as delivered by the native bridge.
type EventType string

const (
	EventNavigationCommitted   EventType = "did-commit-provisional-load"
	EventZoomChanged           EventType = "zoom-changed"
	EventDidFailLoad           EventType = "did-fail-load"
	EventDidFrameFinishLoad    EventType = "did-frame-finish-load"
	EventDidStartLoading       EventType = "did-start-loading"
	EventDidStopLoading        EventType = "did-stop-loading"
	EventDidGetRedirectRequest EventType = "did-get-redirect-request"
	EventConsole               EventType = "console"
	EventNewWindow             EventType = "new-window"
	EventClose                 EventType = "close"
	EventCrashed               EventType = "crashed"
	EventDestroyed             EventType = "destroyed"
	EventDialog                EventType = "dialog"
	EventTitleSet              EventType = "title-set"

	// EventResize is synthesized by the controller from native resize
	// callbacks. It never comes from the guest.
	EventResize EventType = "resize"
)

// HostVisible reports whether events of this type are re-dispatched on the
// host element. Navigation commits and zoom changes only update state.
func (t EventType) HostVisible() bool {
	switch t {
	case EventNavigationCommitted, EventZoomChanged:
		return false
	}
	_, ok := decoders[t]
	return ok || t == EventResize
}

// GuestEvent is the closed set of typed guest event payloads.
type GuestEvent interface {
	EventType() EventType
	guestEvent()
}

// NavigationCommitted reports a committed navigation and the new history shape.
type NavigationCommitted struct {
	URL        string `json:"url"`
	IsTopLevel bool   `json:"is_top_level"`
	EntryIndex int    `json:"entry_index"`
	EntryCount int    `json:"entry_count"`
	ProcessID  int    `json:"process_id"`
}

// ZoomChanged reports a new guest zoom factor.
type ZoomChanged struct {
	OldZoomFactor float64 `json:"old_zoom_factor"`
	NewZoomFactor float64 `json:"new_zoom_factor"`
}

type DidFailLoad struct {
	URL              string `json:"url"`
	IsTopLevel       bool   `json:"is_top_level"`
	ErrorCode        int    `json:"error_code"`
	ErrorDescription string `json:"error_description"`
}

type DidFrameFinishLoad struct {
	URL        string `json:"url"`
	IsTopLevel bool   `json:"is_top_level"`
}

type DidStartLoading struct{}

type DidStopLoading struct{}

type DidGetRedirectRequest struct {
	CurrentURL string `json:"current_url"`
	NewURL     string `json:"new_url"`
	IsTopLevel bool   `json:"is_top_level"`
}

// Console is a console message emitted by the guest page.
type Console struct {
	Level    int    `json:"level"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	SourceID string `json:"source_id"`
}

// NewWindow is a request by the guest to open a new window.
type NewWindow struct {
	TargetURL           string `json:"target_url"`
	FrameName           string `json:"frame_name"`
	WindowContainerType string `json:"window_container_type"`
	Disposition         string `json:"disposition"`
}

type Close struct{}

// Crashed reports the guest renderer process went away.
type Crashed struct {
	ProcessID int    `json:"process_id"`
	Reason    string `json:"reason"`
}

type Destroyed struct{}

// Dialog is a javascript dialog (alert, confirm, prompt) raised by the guest.
// The bridge waits for DialogClosed before the guest resumes.
type Dialog struct {
	OriginURL         string `json:"origin_url"`
	AcceptLang        string `json:"accept_lang"`
	MessageType       string `json:"message_type"`
	MessageText       string `json:"message_text"`
	DefaultPromptText string `json:"default_prompt_text"`
}

type TitleSet struct {
	Title       string `json:"title"`
	ExplicitSet bool   `json:"explicit_set"`
}

func (NavigationCommitted) EventType() EventType   { return EventNavigationCommitted }
func (ZoomChanged) EventType() EventType           { return EventZoomChanged }
func (DidFailLoad) EventType() EventType           { return EventDidFailLoad }
func (DidFrameFinishLoad) EventType() EventType    { return EventDidFrameFinishLoad }
func (DidStartLoading) EventType() EventType       { return EventDidStartLoading }
func (DidStopLoading) EventType() EventType        { return EventDidStopLoading }
func (DidGetRedirectRequest) EventType() EventType { return EventDidGetRedirectRequest }
func (Console) EventType() EventType               { return EventConsole }
func (NewWindow) EventType() EventType             { return EventNewWindow }
func (Close) EventType() EventType                 { return EventClose }
func (Crashed) EventType() EventType               { return EventCrashed }
func (Destroyed) EventType() EventType             { return EventDestroyed }
func (Dialog) EventType() EventType                { return EventDialog }
func (TitleSet) EventType() EventType              { return EventTitleSet }

func (NavigationCommitted) guestEvent()   {}
func (ZoomChanged) guestEvent()           {}
func (DidFailLoad) guestEvent()           {}
func (DidFrameFinishLoad) guestEvent()    {}
func (DidStartLoading) guestEvent()       {}
func (DidStopLoading) guestEvent()        {}
func (DidGetRedirectRequest) guestEvent() {}
func (Console) guestEvent()               {}
func (NewWindow) guestEvent()             {}
func (Close) guestEvent()                 {}
func (Crashed) guestEvent()               {}
func (Destroyed) guestEvent()             {}
func (Dialog) guestEvent()                {}
func (TitleSet) guestEvent()              {}

// Payload is the raw dictionary the bridge delivers alongside an event type.
type Payload map[string]any

var decoders = map[EventType]func(Payload) GuestEvent{
	EventNavigationCommitted: func(p Payload) GuestEvent {
		return NavigationCommitted{
			URL:        p.String("url"),
			IsTopLevel: p.Bool("is_top_level"),
			EntryIndex: p.Int("entry_index"),
			EntryCount: p.Int("entry_count"),
			ProcessID:  p.Int("process_id"),
		}
	},
	EventZoomChanged: func(p Payload) GuestEvent {
		return ZoomChanged{
			OldZoomFactor: p.Float("old_zoom_factor"),
			NewZoomFactor: p.Float("new_zoom_factor"),
		}
	},
	EventDidFailLoad: func(p Payload) GuestEvent {
		desc := p.String("error_description")
		if desc == "" {
			// Older natives spell this key with a hyphen.
			desc = p.String("error-description")
		}
		return DidFailLoad{
			URL:              p.String("url"),
			IsTopLevel:       p.Bool("is_top_level"),
			ErrorCode:        p.Int("error_code"),
			ErrorDescription: desc,
		}
	},
	EventDidFrameFinishLoad: func(p Payload) GuestEvent {
		return DidFrameFinishLoad{URL: p.String("url"), IsTopLevel: p.Bool("is_top_level")}
	},
	EventDidStartLoading: func(Payload) GuestEvent { return DidStartLoading{} },
	EventDidStopLoading:  func(Payload) GuestEvent { return DidStopLoading{} },
	EventDidGetRedirectRequest: func(p Payload) GuestEvent {
		return DidGetRedirectRequest{
			CurrentURL: p.String("current_url"),
			NewURL:     p.String("new_url"),
			IsTopLevel: p.Bool("is_top_level"),
		}
	},
	EventConsole: func(p Payload) GuestEvent {
		return Console{
			Level:    p.Int("level"),
			Message:  p.String("message"),
			Line:     p.Int("line"),
			SourceID: p.String("source_id"),
		}
	},
	EventNewWindow: func(p Payload) GuestEvent {
		return NewWindow{
			TargetURL:           p.String("target_url"),
			FrameName:           p.String("frame_name"),
			WindowContainerType: p.String("window_container_type"),
			Disposition:         p.String("disposition"),
		}
	},
	EventClose: func(Payload) GuestEvent { return Close{} },
	EventCrashed: func(p Payload) GuestEvent {
		return Crashed{ProcessID: p.Int("process_id"), Reason: p.String("reason")}
	},
	EventDestroyed: func(Payload) GuestEvent { return Destroyed{} },
	EventDialog: func(p Payload) GuestEvent {
		return Dialog{
			OriginURL:         p.String("origin_url"),
			AcceptLang:        p.String("accept_lang"),
			MessageType:       p.String("message_type"),
			MessageText:       p.String("message_text"),
			DefaultPromptText: p.String("default_prompt_text"),
		}
	},
	EventTitleSet: func(p Payload) GuestEvent {
		return TitleSet{Title: p.String("title"), ExplicitSet: p.Bool("explicit_set")}
	},
}

// DecodeGuestEvent builds the typed event for a bridge delivery. Only the
// fields registered for the type are read; everything else in the payload is
// ignored.
func DecodeGuestEvent(eventType string, payload map[string]any) (GuestEvent, error) {
	decode, ok := decoders[EventType(eventType)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, eventType)
	}
	return decode(Payload(payload)), nil
}

// EncodeGuestEvent is the inverse of DecodeGuestEvent, used by bridge
// implementations that produce typed events.
func EncodeGuestEvent(ev GuestEvent) (string, map[string]any) {
	payload := map[string]any{}
	data, err := json.Marshal(ev)
	if err == nil {
		_ = json.Unmarshal(data, &payload)
	}
	return string(ev.EventType()), payload
}

// String returns the value at key if it is a string or a number.
func (p Payload) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	case int, int32, int64, float64, bool:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// Bool returns the value at key interpreted as a boolean.
func (p Payload) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// Int returns the value at key as an int, 0 when absent or malformed.
func (p Payload) Int(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Float returns the value at key as a float64, 0 when absent or malformed.
func (p Payload) Float(key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
