package followup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tbxark/intakeagent/llm"
	"github.com/tbxark/intakeagent/profile"
	"github.com/tbxark/intakeagent/types"
)

var fieldRequests = map[types.Field]string{
	types.FieldName:         "to ask the user for their name. The response should encourage the user to share their name.",
	types.FieldPlaceOfBirth: "to ask the user for their place of birth. The response should encourage the user to share this information.",
	types.FieldUniversity:   "to ask the user for the university or college they are studying at or have graduated from. The response should encourage the user to share this information.",
	types.FieldEmail:        "to ask the user for their email address. The response should encourage the user to share their email.",
	types.FieldOfStudy:      "to ask the user for their field of study or branch. The response should encourage the user to share this information.",
}

// BuildPrompt asks the service to phrase a request for field. name is
// mentioned when non-empty.
func BuildPrompt(field types.Field, name string) string {
	var sb strings.Builder
	sb.WriteString("Create a polite and engaging response ")
	if name != "" {
		fmt.Fprintf(&sb, "addressing the user by their name %s ", name)
	}
	request, ok := fieldRequests[field]
	if !ok {
		request = fmt.Sprintf("to ask the user for their %s.", strings.ToLower(string(field)))
	}
	sb.WriteString(request)
	sb.WriteString(" Reply with the question only.")
	return sb.String()
}

// LLMGenerator phrases the question through the extraction service.
type LLMGenerator struct {
	client llm.Client
}

func NewLLMGenerator(client llm.Client) *LLMGenerator {
	return &LLMGenerator{client: client}
}

func (g *LLMGenerator) NextQuestion(ctx context.Context, missing []types.Field, current *profile.Profile) Question {
	field, ok := NextField(missing)
	if !ok {
		return Question{Text: ClosingQuestion, Outcome: types.OutcomeOK}
	}
	text, err := g.client.Send(ctx, BuildPrompt(field, knownName(current, field)))
	if err != nil {
		slog.Warn("follow-up call failed", "field", field, "err", err)
		return Question{Field: field, Outcome: types.OutcomeServiceError}
	}
	slog.Debug("follow-up generated", "field", field, "len", len(text))
	return Question{Field: field, Text: text, Outcome: types.OutcomeOK}
}
