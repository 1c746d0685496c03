package followup

import (
	"context"
	"fmt"
	"strings"

	"github.com/tbxark/intakeagent/profile"
	"github.com/tbxark/intakeagent/types"
)

var localSubjects = map[types.Field]string{
	types.FieldName:         "name",
	types.FieldPlaceOfBirth: "place of birth",
	types.FieldUniversity:   "university or college",
	types.FieldEmail:        "email address",
	types.FieldOfStudy:      "field of study",
}

// LocalGenerator asks from fixed templates without calling the service.
type LocalGenerator struct{}

func (LocalGenerator) NextQuestion(ctx context.Context, missing []types.Field, current *profile.Profile) Question {
	field, ok := NextField(missing)
	if !ok {
		return Question{Text: ClosingQuestion, Outcome: types.OutcomeOK}
	}
	subject, ok := localSubjects[field]
	if !ok {
		subject = strings.ToLower(string(field))
	}
	if name := knownName(current, field); name != "" {
		return Question{
			Field:   field,
			Text:    fmt.Sprintf("Thanks, %s! Could you tell me your %s?", name, subject),
			Outcome: types.OutcomeOK,
		}
	}
	return Question{
		Field:   field,
		Text:    fmt.Sprintf("Could you tell me your %s?", subject),
		Outcome: types.OutcomeOK,
	}
}

type FailbackGenerator struct {
	generators []Generator
}

func NewFailbackGenerator(generators ...Generator) *FailbackGenerator {
	return &FailbackGenerator{generators: generators}
}

// NextQuestion returns the first non-empty successful question, or the
// last attempt when every generator failed.
func (g *FailbackGenerator) NextQuestion(ctx context.Context, missing []types.Field, current *profile.Profile) Question {
	field, _ := NextField(missing)
	last := Question{Field: field, Outcome: types.OutcomeServiceError}
	for _, generator := range g.generators {
		q := generator.NextQuestion(ctx, missing, current)
		if q.Outcome == types.OutcomeOK && q.Text != "" {
			return q
		}
		last = q
	}
	return last
}
