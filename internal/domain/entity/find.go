package entity

import "fmt"

// FindOptions is the fully-populated option record forwarded to the bridge.
type FindOptions struct {
	Forward                  bool `json:"forward"`
	MatchCase                bool `json:"match_case"`
	FindNext                 bool `json:"find_next"`
	WordStart                bool `json:"word_start"`
	MedialCapitalAsWordStart bool `json:"medial_capital_as_word_start"`
}

// FindRequest carries caller-supplied find options. Nil fields are unset.
type FindRequest struct {
	Forward                  *bool `json:"forward,omitempty" mapstructure:"forward"`
	MatchCase                *bool `json:"match_case,omitempty" mapstructure:"match_case"`
	FindNext                 *bool `json:"find_next,omitempty" mapstructure:"find_next"`
	WordStart                *bool `json:"word_start,omitempty" mapstructure:"word_start"`
	MedialCapitalAsWordStart *bool `json:"medial_capital_as_word_start,omitempty" mapstructure:"medial_capital_as_word_start"`
}

// Normalize fills unset flags with false. Forward is always true, so an
// explicit false is not honored.
func (r FindRequest) Normalize() FindOptions {
	return FindOptions{
		Forward:                  true,
		MatchCase:                boolOr(r.MatchCase, false),
		FindNext:                 boolOr(r.FindNext, false),
		WordStart:                boolOr(r.WordStart, false),
		MedialCapitalAsWordStart: boolOr(r.MedialCapitalAsWordStart, false),
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// StopFindingAction tells the guest what to do with the current selection
// when a find session ends.
type StopFindingAction string

const (
	StopFindingClear    StopFindingAction = "clear"
	StopFindingKeep     StopFindingAction = "keep"
	StopFindingActivate StopFindingAction = "activate"
)

// ParseStopFindingAction validates an action. The empty string maps to clear.
func ParseStopFindingAction(s string) (StopFindingAction, error) {
	switch StopFindingAction(s) {
	case "", StopFindingClear:
		return StopFindingClear, nil
	case StopFindingKeep:
		return StopFindingKeep, nil
	case StopFindingActivate:
		return StopFindingActivate, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFindAction, s)
	}
}
