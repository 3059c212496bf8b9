package model

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/guestview/internal/application/usecase"
	"github.com/bnema/guestview/internal/cli/styles"
	"github.com/bnema/guestview/internal/domain/entity"
)

func testTrace(name string, steps int, passed bool) *usecase.Trace {
	trace := &usecase.Trace{Scenario: name, Passed: passed}
	for i := 0; i < steps; i++ {
		trace.Steps = append(trace.Steps, usecase.TraceStep{
			Index:   i + 1,
			Action:  entity.ActionPump,
			Summary: fmt.Sprintf("%s-step-%02d", name, i),
		})
	}
	return trace
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// replayedMsg runs the commands a rerun key press batched and returns the
// replay result.
func replayedMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "rerun batches the replay with the spinner")
	for _, c := range batch {
		if msg, ok := c().(tracesReplayedMsg); ok {
			return msg
		}
	}
	t.Fatal("no replay result in batch")
	return nil
}

func TestTraceModel_NavigatesStepsAndRuns(t *testing.T) {
	traces := []*usecase.Trace{testTrace("first", 3, true), testTrace("second", 2, false)}
	m := NewTraceModel(context.Background(), styles.NewTheme(), traces, nil)

	updated, _ := m.Update(keyPress("j"))
	m = updated.(TraceModel)
	updated, _ = m.Update(keyPress("j"))
	m = updated.(TraceModel)
	updated, _ = m.Update(keyPress("j"))
	m = updated.(TraceModel)
	assert.Equal(t, 2, m.selectedIdx, "selection stops at the last step")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(TraceModel)
	assert.Equal(t, 1, m.tabs.Active)
	assert.Equal(t, 0, m.selectedIdx)

	view := m.View()
	require.Contains(t, view, "second-step-00")
	require.Contains(t, view, "1 passed, 1 failed")
}

func TestTraceModel_KeepsSelectedStepVisible(t *testing.T) {
	m := NewTraceModel(context.Background(), styles.NewTheme(), []*usecase.Trace{testTrace("long", 20, true)}, nil)
	m.selectedIdx = 15

	view := m.renderStepList(5)
	require.Contains(t, view, "long-step-15")
	require.NotContains(t, view, "long-step-05")
}

func TestTraceModel_Rerun(t *testing.T) {
	calls := 0
	rerun := func(context.Context) ([]*usecase.Trace, error) {
		calls++
		return []*usecase.Trace{testTrace("again", 1, true)}, nil
	}
	m := NewTraceModel(context.Background(), styles.NewTheme(), []*usecase.Trace{testTrace("once", 4, false)}, rerun)
	m.selectedIdx = 3

	updated, cmd := m.Update(keyPress("r"))
	m = updated.(TraceModel)
	assert.True(t, m.running)
	assert.Contains(t, m.View(), "replaying...")

	updated, _ = m.Update(replayedMsg(t, cmd))
	m = updated.(TraceModel)
	assert.Equal(t, 1, calls)
	assert.False(t, m.running)
	assert.Equal(t, 0, m.selectedIdx, "selection clamps to the new trace")
	assert.Contains(t, m.View(), "again")
}

func TestTraceModel_RerunError(t *testing.T) {
	rerun := func(context.Context) ([]*usecase.Trace, error) {
		return nil, errors.New("scenario vanished")
	}
	m := NewTraceModel(context.Background(), styles.NewTheme(), []*usecase.Trace{testTrace("once", 1, true)}, rerun)

	_, cmd := m.Update(keyPress("r"))
	updated, _ := m.Update(replayedMsg(t, cmd))
	m = updated.(TraceModel)

	view := m.View()
	assert.Contains(t, view, "scenario vanished")
	assert.Contains(t, view, "once", "previous traces stay on screen")
}

func TestTraceModel_Empty(t *testing.T) {
	m := NewTraceModel(context.Background(), styles.NewTheme(), nil, nil)
	updated, cmd := m.Update(keyPress("r"))
	assert.Nil(t, cmd)
	assert.Contains(t, updated.View(), "No scenarios replayed.")
}
