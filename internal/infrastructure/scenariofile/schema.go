package scenariofile

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/bnema/guestview/internal/domain/entity"
)

// Schema returns the JSON schema of scenario files.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:   "json",
		DoNotReference: true,
	}
	schema := r.Reflect(&entity.Scenario{})

	schema.ID = "https://github.com/bnema/guestview/scenario.schema.json"
	schema.Title = "guestview scenario"
	schema.Description = "A scripted sequence of host and guest interactions replayed against one guest view"
	return schema
}

// SchemaJSON returns the scenario schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
