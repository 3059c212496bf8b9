package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/guestview/internal/application/usecase"
	"github.com/bnema/guestview/internal/cli"
)

const passingScenario = `
name = "attach"
base_url = "https://host.test/"

[element.attributes]
src = "https://example.com/"

[[steps]]
action = "bridge_handle"
handle = 7

[[steps]]
action = "attach"

[[steps]]
action = "expect_calls"
expect = ["registerResizeCallback", "createGuest", "setEventHandler", "attachGuest"]
`

const failingScenario = `
name = "wrong"

[element.attributes]
src = "https://example.com/"

[[steps]]
action = "attach"

[[steps]]
action = "expect_calls"
expect = ["loadUrl"]
`

func testApp(t *testing.T) *cli.App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a, err := cli.NewApp(cli.Options{LogOutput: io.Discard})
	require.NoError(t, err)
	return a
}

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReplayFiles_KeepsArgumentOrder(t *testing.T) {
	a := testApp(t)
	dir := t.TempDir()
	paths := []string{
		writeScenario(t, dir, "wrong.toml", failingScenario),
		writeScenario(t, dir, "attach.toml", passingScenario),
	}

	traces, err := replayFiles(context.Background(), a, paths, 2)
	require.NoError(t, err)
	require.Len(t, traces, 2)

	assert.Equal(t, "wrong", traces[0].Scenario)
	assert.False(t, traces[0].Passed)
	assert.Equal(t, "attach", traces[1].Scenario)
	assert.True(t, traces[1].Passed)
	assert.NotEqual(t, traces[0].RunID, traces[1].RunID)

	err = checkPassed(traces)
	require.ErrorIs(t, err, ErrScenariosFailed)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.NoError(t, checkPassed(traces[1:]))
}

func TestReplayFiles_LoadError(t *testing.T) {
	a := testApp(t)
	path := writeScenario(t, t.TempDir(), "broken.toml", `name = "x"`)

	_, err := replayFiles(context.Background(), a, []string{path}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no steps")
}

func TestPrintTraces_JSON(t *testing.T) {
	a := testApp(t)
	runJSON = true
	t.Cleanup(func() { runJSON = false })

	traces := []*usecase.Trace{{Scenario: "attach", Passed: true}}
	var buf bytes.Buffer
	require.NoError(t, printTraces(&buf, a, traces))

	var decoded []usecase.Trace
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "attach", decoded[0].Scenario)
	assert.True(t, decoded[0].Passed)
}

func TestPrintTraces_Styled(t *testing.T) {
	a := testApp(t)
	var buf bytes.Buffer
	require.NoError(t, printTraces(&buf, a, []*usecase.Trace{{Scenario: "attach", Passed: true}}))
	assert.Contains(t, buf.String(), "attach")
	assert.Contains(t, buf.String(), "1 passed, 0 failed")
}
