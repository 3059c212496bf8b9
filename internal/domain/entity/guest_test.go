package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigationState_History(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		count       int
		wantBack    bool
		wantForward bool
	}{
		{"single entry", 0, 1, false, false},
		{"last of two", 1, 2, true, false},
		{"middle of three", 1, 3, true, true},
		{"first of two", 0, 2, false, true},
		{"fresh state", 0, 0, false, false},
		{"negative index", -1, 3, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NavigationState{EntryIndex: tt.index, EntryCount: tt.count}
			assert.Equal(t, tt.wantBack, s.CanGoBack())
			assert.Equal(t, tt.wantForward, s.CanGoForward())
		})
	}
}

func TestNewNavigationState(t *testing.T) {
	s := NewNavigationState()
	assert.Equal(t, ZoomDefault, s.ZoomFactor)
	assert.Empty(t, s.Title)
}

func TestAutoSizeParams_IsResize(t *testing.T) {
	assert.False(t, AutoSizeParams{EnableAutoSize: true}.IsResize())
	assert.True(t, AutoSizeParams{Normal: &Size{Width: 1}}.IsResize())
}

func TestRect_Size(t *testing.T) {
	assert.Equal(t, Size{Width: 10, Height: 20}, Rect{Width: 10.7, Height: 20.2}.Size())
	assert.True(t, Size{}.IsZero())
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, ZoomDefault, ClampZoom(0))
	assert.Equal(t, ZoomMin, ClampZoom(0.1))
	assert.Equal(t, ZoomMax, ClampZoom(10))
	assert.Equal(t, 1.5, ClampZoom(1.5))
	assert.Equal(t, 150, ZoomPercentage(1.5))
}
