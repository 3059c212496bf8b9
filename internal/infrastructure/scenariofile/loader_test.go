package scenariofile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/guestview/internal/domain/entity"
)

const tomlScenario = `
name = "navigate"
base_url = "https://host.test/"

[element]
width = 640
height = 480

[element.attributes]
src = "index.html"
autosize = ""

[[steps]]
action = "bridge_handle"
handle = 4

[[steps]]
action = "attach"

[[steps]]
action = "expect_calls"
expect = ["registerResizeCallback", "createGuest", "setEventHandler", "attachGuest"]

[[steps]]
action = "call"
command = "find"
args = [1, "needle", { match_case = true }]

[[steps]]
action = "expect_state"
[steps.state]
has_guest = true
src = "https://host.test/index.html"
`

const yamlScenario = `
name: dialogs
steps:
  - action: dialog_response
    accept: true
    response: "Ada"
  - action: guest_event
    event: dialog
    payload:
      message_type: prompt
      message_text: "name?"
`

const jsonScenario = `{
  "steps": [
    {"action": "attach"},
    {"action": "resize", "width": 300, "height": 200}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_TOML(t *testing.T) {
	sc, err := Load(writeFile(t, "navigate.toml", tomlScenario))
	require.NoError(t, err)

	assert.Equal(t, "navigate", sc.Name)
	assert.Equal(t, "https://host.test/", sc.BaseURL)
	assert.Equal(t, 640, sc.Element.Width)
	assert.Equal(t, map[string]string{"src": "index.html", "autosize": ""}, sc.Element.Attributes)
	require.Len(t, sc.Steps, 5)

	assert.Equal(t, entity.ActionBridgeHandle, sc.Steps[0].Action)
	assert.Equal(t, 4, sc.Steps[0].Handle)
	assert.Len(t, sc.Steps[2].Expect, 4)

	find := sc.Steps[3]
	assert.Equal(t, "find", find.Command)
	require.Len(t, find.Args, 3)
	assert.Equal(t, "needle", find.Args[1])

	state := sc.Steps[4].State
	require.NotNil(t, state)
	require.NotNil(t, state.HasGuest)
	assert.True(t, *state.HasGuest)
	require.NotNil(t, state.Src)
	assert.Equal(t, "https://host.test/index.html", *state.Src)
	assert.Nil(t, state.Title)
}

func TestLoad_YAML(t *testing.T) {
	sc, err := Load(writeFile(t, "dialogs.yaml", yamlScenario))
	require.NoError(t, err)

	require.Len(t, sc.Steps, 2)
	assert.True(t, sc.Steps[0].Accept)
	assert.Equal(t, "Ada", sc.Steps[0].Response)
	assert.Equal(t, "prompt", sc.Steps[1].Payload["message_type"])
}

func TestLoad_JSONDefaultsNameToFile(t *testing.T) {
	sc, err := Load(writeFile(t, "resize-check.json", jsonScenario))
	require.NoError(t, err)

	assert.Equal(t, "resize-check", sc.Name)
	assert.Equal(t, 300, sc.Steps[1].Width)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "unsupported extension",
			file:    "scenario.ini",
			content: "x=1",
			wantErr: "unsupported scenario file",
		},
		{
			name:    "malformed toml",
			file:    "bad.toml",
			content: "steps = [",
			wantErr: "failed to read scenario",
		},
		{
			name:    "unknown step field",
			file:    "typo.toml",
			content: "[[steps]]\naction = \"attach\"\nhandel = 3\n",
			wantErr: "failed to decode scenario",
		},
		{
			name:    "unknown action",
			file:    "action.toml",
			content: "[[steps]]\naction = \"teleport\"\n",
			wantErr: "unknown action",
		},
		{
			name:    "no steps",
			file:    "empty.toml",
			content: "name = \"empty\"\n",
			wantErr: "has no steps",
		},
		{
			name:    "missing required field",
			file:    "missing.toml",
			content: "[[steps]]\naction = \"set_attribute\"\nvalue = \"x\"\n",
			wantErr: "requires name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoadAll_StopsAtFirstError(t *testing.T) {
	good := writeFile(t, "good.json", jsonScenario)
	bad := writeFile(t, "bad.json", `{"steps": []}`)

	scenarios, err := LoadAll([]string{good})
	require.NoError(t, err)
	assert.Len(t, scenarios, 1)

	_, err = LoadAll([]string{good, bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestParse(t *testing.T) {
	sc, err := Parse(strings.NewReader(yamlScenario), ".YAML")
	require.NoError(t, err)
	assert.Equal(t, "dialogs", sc.Name)

	_, err = Parse(strings.NewReader(yamlScenario), "xml")
	require.Error(t, err)
}

func TestSchema(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"steps"`)
	assert.Contains(t, text, `"expect_calls"`)
	assert.Contains(t, text, `"base_url"`)

	schema := Schema()
	assert.Equal(t, "guestview scenario", schema.Title)
	assert.Contains(t, schema.Required, "steps")
	assert.NotContains(t, schema.Required, "name")
}
