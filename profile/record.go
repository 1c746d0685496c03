package profile

import (
	"encoding/json"
	"fmt"

	"github.com/eino-contrib/jsonschema"
	"github.com/tbxark/intakeagent/types"
)

// Record is the strict, one-object form of an extraction reply.
type Record struct {
	Name         string `json:"name" jsonschema:"description=The user's name or 'not found'"`
	PlaceOfBirth string `json:"place_of_birth" jsonschema:"description=Place of birth or 'not found'"`
	University   string `json:"university" jsonschema:"description=University or college or 'not found'"`
	Email        string `json:"email" jsonschema:"description=Email address or 'not found'"`
	FieldOfStudy string `json:"field_of_study" jsonschema:"description=Field of study or branch or 'not found'"`
}

// Values maps the record onto fields. Empty entries become NotFound.
func (r Record) Values() map[types.Field]string {
	values := map[types.Field]string{
		types.FieldName:         r.Name,
		types.FieldPlaceOfBirth: r.PlaceOfBirth,
		types.FieldUniversity:   r.University,
		types.FieldEmail:        r.Email,
		types.FieldOfStudy:      r.FieldOfStudy,
	}
	for f, v := range values {
		if v == "" {
			values[f] = types.NotFound
		}
	}
	return values
}

// Schema returns the JSON schema of Record.
func Schema() (string, error) {
	schema := jsonschema.Reflect(&Record{})
	schema.Title = "Profile"
	schema.Description = "Personal profile details extracted from one user message."
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON schema: %w", err)
	}
	return string(schemaBytes), nil
}
