// Package entity defines domain entities for embedded guest views.
package entity

// Size is a width/height pair in CSS pixels.
type Size struct {
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect represents a host element's box in the embedding document.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Size truncates the rect dimensions to whole pixels.
func (r Rect) Size() Size {
	return Size{Width: int(r.Width), Height: int(r.Height)}
}
