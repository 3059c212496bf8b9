package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/guestview/internal/application/port"
	"github.com/bnema/guestview/internal/application/usecase"
)

// TraceRenderer renders scenario replay traces for the terminal.
type TraceRenderer struct {
	theme *Theme
}

func NewTraceRenderer(theme *Theme) *TraceRenderer {
	return &TraceRenderer{theme: theme}
}

// Render renders a whole trace: header, one line per step, then the failure.
func (r *TraceRenderer) Render(trace *usecase.Trace) string {
	if trace == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(r.RenderHeader(trace))
	b.WriteString("\n\n")
	for _, step := range trace.Steps {
		b.WriteString(r.RenderStep(step, false))
		b.WriteString("\n")
	}
	if !trace.Passed && trace.Failure != "" {
		b.WriteString("\n")
		b.WriteString(r.RenderFailure(trace.Failure))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *TraceRenderer) RenderHeader(trace *usecase.Trace) string {
	header := fmt.Sprintf("%s %s  %s  %s %s",
		r.theme.Highlight.Render(IconPlay),
		r.theme.Title.Render(trace.Scenario),
		r.theme.ResultBadge(trace.Passed),
		r.theme.CountBadge(trace.CallCount(), "call"),
		r.theme.CountBadge(trace.EventCount(), "event"),
	)
	if trace.RunID != "" {
		header += "  " + r.theme.Subtle.Render(trace.RunID)
	}
	return header
}

// RenderStep renders the one-line summary of a step.
func (r *TraceRenderer) RenderStep(step usecase.TraceStep, selected bool) string {
	icon := r.theme.SuccessStyle.Render(IconCheck)
	if step.Error != "" {
		icon = r.theme.ErrorStyle.Render(IconX)
	}

	line := fmt.Sprintf("%s %3d  %-16s %s", icon, step.Index, string(step.Action), step.Summary)
	if step.Result != nil {
		line += r.theme.Subtle.Render(fmt.Sprintf("  => %v", step.Result))
	}
	if n := len(step.Calls); n > 0 {
		line += "  " + r.theme.CountBadge(n, "call")
	}
	if n := len(step.Events); n > 0 {
		line += " " + r.theme.CountBadge(n, "event")
	}

	if selected {
		return r.theme.ListItemSelected.Render(line)
	}
	return r.theme.ListItem.Render(line)
}

// RenderStepDetail lists the bridge calls and host events of a step.
func (r *TraceRenderer) RenderStepDetail(step usecase.TraceStep) string {
	var b strings.Builder
	b.WriteString(r.theme.BoxHeader.Render(fmt.Sprintf("Step %d: %s", step.Index, step.Summary)))
	b.WriteString("\n")

	if len(step.Calls) == 0 && len(step.Events) == 0 {
		b.WriteString(r.theme.Subtle.Render("No bridge calls or host events."))
		b.WriteString("\n")
	}
	if len(step.Calls) > 0 {
		b.WriteString(r.theme.Subtitle.Render("Bridge calls"))
		b.WriteString("\n")
		for _, c := range step.Calls {
			b.WriteString(fmt.Sprintf("  %s %s\n", r.theme.HelpKey.Render(IconArrow), formatCall(c)))
		}
	}
	if len(step.Events) > 0 {
		b.WriteString(r.theme.Subtitle.Render("Host events"))
		b.WriteString("\n")
		for _, ev := range step.Events {
			line := fmt.Sprintf("  %s %s", r.theme.HelpKey.Render(IconInfo), r.theme.Normal.Render(string(ev.Type)))
			if ev.Detail != nil {
				line += r.theme.Subtle.Render(fmt.Sprintf(" %+v", ev.Detail))
			}
			if ev.Cancelled {
				line += " " + r.theme.WarningStyle.Render("(default prevented)")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if step.Error != "" {
		b.WriteString(r.RenderFailure(step.Error))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *TraceRenderer) RenderFailure(msg string) string {
	return fmt.Sprintf("%s %s", r.theme.ErrorStyle.Render(IconWarning), r.theme.ErrorStyle.Render(msg))
}

// RenderSummary renders the totals over several runs.
func (r *TraceRenderer) RenderSummary(traces []*usecase.Trace) string {
	passed := 0
	for _, t := range traces {
		if t != nil && t.Passed {
			passed++
		}
	}
	failed := len(traces) - passed

	style := r.theme.SuccessStyle
	if failed > 0 {
		style = r.theme.ErrorStyle
	}
	return style.Render(fmt.Sprintf("%d passed, %d failed", passed, failed))
}

func (r *TraceRenderer) RenderError(err error) string {
	return fmt.Sprintf("%s %s", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}

// RenderCommands lists the command names a call step accepts.
func (r *TraceRenderer) RenderCommands(names []string) string {
	var b strings.Builder
	b.WriteString(r.theme.Title.Render("Commands"))
	b.WriteString("\n\n")
	for _, name := range names {
		b.WriteString(fmt.Sprintf("  %s %s\n", r.theme.HelpKey.Render(IconCursor), r.theme.Normal.Render(name)))
	}
	return b.String()
}

func formatCall(c port.BridgeCall) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		if s, ok := a.(string); ok {
			args[i] = fmt.Sprintf("%q", s)
			continue
		}
		args[i] = fmt.Sprintf("%v", a)
	}
	return fmt.Sprintf("%s(%s)", c.Method, strings.Join(args, ", "))
}
