package followup

import (
	"context"

	"github.com/tbxark/intakeagent/profile"
	"github.com/tbxark/intakeagent/types"
)

// ClosingQuestion is returned when nothing is missing.
const ClosingQuestion = "Is there anything else you'd like to share with me?"

type Question struct {
	Field   types.Field   `json:"field,omitempty"`
	Text    string        `json:"text"`
	Outcome types.Outcome `json:"outcome"`
}

type Generator interface {
	NextQuestion(ctx context.Context, missing []types.Field, current *profile.Profile) Question
}

// NextField returns the first field in canonical order present in missing.
func NextField(missing []types.Field) (types.Field, bool) {
	set := make(map[types.Field]struct{}, len(missing))
	for _, f := range missing {
		set[f] = struct{}{}
	}
	for _, f := range types.Fields {
		if _, ok := set[f]; ok {
			return f, true
		}
	}
	return "", false
}

func knownName(current *profile.Profile, field types.Field) string {
	if current == nil || field == types.FieldName {
		return ""
	}
	name, _ := current.Value(types.FieldName)
	return name
}
