package entity

// Default zoom constants
const (
	ZoomDefault = 1.0
	ZoomMin     = 0.25 // 25%
	ZoomMax     = 5.0  // 500%
)

// ClampZoom constrains a zoom factor to the valid range.
// Non-positive factors fall back to ZoomDefault.
func ClampZoom(factor float64) float64 {
	if factor <= 0 {
		return ZoomDefault
	}
	if factor < ZoomMin {
		return ZoomMin
	}
	if factor > ZoomMax {
		return ZoomMax
	}
	return factor
}

// ZoomPercentage returns the zoom factor as a percentage (e.g., 150 for 1.5).
func ZoomPercentage(factor float64) int {
	return int(factor*100 + 0.5)
}
