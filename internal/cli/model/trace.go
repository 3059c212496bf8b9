// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/guestview/internal/application/usecase"
	"github.com/bnema/guestview/internal/cli/styles"
	"github.com/bnema/guestview/internal/logging"
)

// Layout constants
const (
	defaultWidth  = 80
	defaultHeight = 24
	// header, tab bar, spacing and help
	chromeLines = 7
)

// RunFunc replays the scenarios again.
type RunFunc func(ctx context.Context) ([]*usecase.Trace, error)

// TraceModel is the Bubble Tea model for browsing replay traces.
type TraceModel struct {
	// UI components
	help     help.Model
	keys     styles.TraceKeyMap
	tabs     styles.TabsModel
	detail   viewport.Model
	spinner  spinner.Model
	renderer *styles.TraceRenderer

	// State
	traces      []*usecase.Trace
	selectedIdx int
	width       int
	height      int
	err         error
	running     bool

	// Dependencies
	ctx   context.Context
	rerun RunFunc
	theme *styles.Theme
}

// NewTraceModel creates a trace browser over already replayed traces.
// rerun may be nil.
func NewTraceModel(ctx context.Context, theme *styles.Theme, traces []*usecase.Trace, rerun RunFunc) TraceModel {
	m := TraceModel{
		help:     styles.NewStyledHelp(theme),
		keys:     styles.DefaultTraceKeyMap(),
		tabs:     styles.NewTabs(theme, traceNames(traces)...),
		detail:   viewport.New(defaultWidth, defaultHeight-chromeLines),
		spinner:  styles.NewStyledSpinner(theme),
		renderer: styles.NewTraceRenderer(theme),
		traces:   traces,
		width:    defaultWidth,
		height:   defaultHeight,
		ctx:      ctx,
		rerun:    rerun,
		theme:    theme,
	}
	m.refreshDetail()
	return m
}

// tracesReplayedMsg is sent when a rerun finishes.
type tracesReplayedMsg struct {
	traces []*usecase.Trace
	err    error
}

// Init implements tea.Model.
func (m TraceModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m TraceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.detail.Width = msg.Width
		m.detail.Height = max(1, m.listHeight())
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tracesReplayedMsg:
		m.running = false
		m.err = msg.err
		if msg.err == nil {
			m.traces = msg.traces
			active := m.tabs.Active
			m.tabs = styles.NewTabs(m.theme, traceNames(msg.traces)...)
			m.tabs.SetActive(active)
			m.clampSelection()
			m.refreshDetail()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m TraceModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selectedIdx > 0 {
			m.selectedIdx--
			m.refreshDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if trace := m.current(); trace != nil && m.selectedIdx < len(trace.Steps)-1 {
			m.selectedIdx++
			m.refreshDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextRun):
		m.tabs.Next()
		m.selectedIdx = 0
		m.refreshDetail()
		return m, nil

	case key.Matches(msg, m.keys.PrevRun):
		m.tabs.Prev()
		m.selectedIdx = 0
		m.refreshDetail()
		return m, nil

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		// pgup/pgdown and b/f are the viewport's own paging keys
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.Rerun):
		if m.rerun == nil || m.running {
			return m, nil
		}
		m.running = true
		return m, tea.Batch(m.replay(), m.spinner.Tick)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m TraceModel) replay() tea.Cmd {
	return func() tea.Msg {
		log := logging.FromContext(m.ctx)
		log.Debug().Int("scenarios", len(m.traces)).Msg("replaying scenarios")

		traces, err := m.rerun(m.ctx)
		if err != nil {
			log.Error().Err(err).Msg("replay failed")
		}
		return tracesReplayedMsg{traces: traces, err: err}
	}
}

func (m *TraceModel) current() *usecase.Trace {
	if m.tabs.Active < 0 || m.tabs.Active >= len(m.traces) {
		return nil
	}
	return m.traces[m.tabs.Active]
}

func (m *TraceModel) clampSelection() {
	trace := m.current()
	if trace == nil || len(trace.Steps) == 0 {
		m.selectedIdx = 0
		return
	}
	if m.selectedIdx >= len(trace.Steps) {
		m.selectedIdx = len(trace.Steps) - 1
	}
}

func (m *TraceModel) refreshDetail() {
	trace := m.current()
	if trace == nil || m.selectedIdx >= len(trace.Steps) {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(m.renderer.RenderStepDetail(trace.Steps[m.selectedIdx]))
	m.detail.GotoTop()
}

// listHeight is the room left for the step list and the detail pane each.
func (m TraceModel) listHeight() int {
	return (m.height - chromeLines) / 2
}

// View implements tea.Model.
func (m TraceModel) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(t.ErrorStyle.Render(fmt.Sprintf("%s Error: %v", styles.IconX, m.err)))
		b.WriteString("\n\n")
	}

	if len(m.traces) == 0 {
		b.WriteString(t.Subtle.Render("  No scenarios replayed."))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	b.WriteString(m.tabs.ViewWithResults(tracePassed(m.traces), m.width))
	b.WriteString("\n")
	b.WriteString(m.renderStepList(max(1, m.listHeight())))
	b.WriteString("\n")
	b.WriteString(m.detail.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m TraceModel) renderHeader() string {
	t := m.theme

	iconStyle := lipgloss.NewStyle().Foreground(t.Accent)
	titleStyle := t.Title.MarginLeft(1)

	header := iconStyle.Render(styles.IconGlobe) + titleStyle.Render("Scenario traces")
	header += "  " + m.renderer.RenderSummary(m.traces)
	if m.running {
		header += "  " + m.spinner.View() + t.Subtle.Render(" replaying...")
	}
	return header
}

// renderStepList renders at most height steps, keeping the selected one visible.
func (m TraceModel) renderStepList(height int) string {
	trace := m.current()
	if trace == nil {
		return ""
	}
	if len(trace.Steps) == 0 {
		return m.theme.Subtle.Render("  No steps.")
	}

	start := 0
	if m.selectedIdx >= height {
		start = m.selectedIdx - height + 1
	}
	end := min(len(trace.Steps), start+height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderer.RenderStep(trace.Steps[i], i == m.selectedIdx))
	}
	return strings.Join(lines, "\n")
}

func traceNames(traces []*usecase.Trace) []string {
	names := make([]string, len(traces))
	for i, t := range traces {
		names[i] = t.Scenario
	}
	return names
}

func tracePassed(traces []*usecase.Trace) []bool {
	passed := make([]bool, len(traces))
	for i, t := range traces {
		passed[i] = t.Passed
	}
	return passed
}

// Traces returns the traces currently shown.
func (m TraceModel) Traces() []*usecase.Trace {
	return m.traces
}
