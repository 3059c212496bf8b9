package styles

import (
	"fmt"
)

// CountBadge renders a muted "n noun" badge, pluralizing noun.
func (t *Theme) CountBadge(n int, noun string) string {
	text := fmt.Sprintf("%d %ss", n, noun)
	if n == 1 {
		text = "1 " + noun
	}
	return t.BadgeMuted.Render(text)
}

// ResultBadge renders PASS or FAIL.
func (t *Theme) ResultBadge(passed bool) string {
	if passed {
		return t.Badge.Render("PASS")
	}
	return t.BadgeError.Render("FAIL")
}

// ActionBadge renders a step action name.
func (t *Theme) ActionBadge(action string) string {
	return t.Badge.Render(action)
}
