package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/intakeagent/llm"
	"github.com/tbxark/intakeagent/profile"
	"github.com/tbxark/intakeagent/structured"
	"github.com/tbxark/intakeagent/types"
)

// Result holds one value per field plus how the service call ended.
type Result struct {
	Values  map[types.Field]string
	Reply   string
	Outcome types.Outcome
}

type Extractor interface {
	Extract(ctx context.Context, utterance string) Result
}

// LLMExtractor sends a text prompt and parses the line based reply.
type LLMExtractor struct {
	client llm.Client
	parser Parser
}

func NewLLMExtractor(client llm.Client, parser Parser) *LLMExtractor {
	if parser == nil {
		parser = KeyValueParser{}
	}
	return &LLMExtractor{client: client, parser: parser}
}

// Extract never fails. A service error yields an empty reply, so every
// field parses as NotFound and Outcome is OutcomeServiceError.
func (e *LLMExtractor) Extract(ctx context.Context, utterance string) Result {
	outcome := types.OutcomeOK
	reply, err := e.client.Send(ctx, BuildPrompt(utterance))
	if err != nil {
		slog.Warn("extraction call failed", "err", err)
		reply = ""
		outcome = types.OutcomeServiceError
	}
	values := e.parser.Parse(reply)
	slog.Debug("extraction parsed", "outcome", outcome, "reply_len", len(reply), "accepted", len(Accepted(values, nil)))
	return Result{Values: values, Reply: reply, Outcome: outcome}
}

const (
	extractToolName        = "record_profile_details"
	extractToolDescription = "Record the personal profile details found in the user's message. Use 'not found' for every detail the message does not contain."
)

// ToolExtractor asks a tool calling model for a single JSON record.
type ToolExtractor struct {
	chain *structured.Chain[string, profile.Record]
}

func NewToolExtractor(chatModel model.ToolCallingChatModel) (*ToolExtractor, error) {
	chain, err := structured.NewChain[string, profile.Record](
		chatModel,
		buildToolPrompt,
		extractToolName,
		extractToolDescription,
	)
	if err != nil {
		return nil, err
	}
	return &ToolExtractor{chain: chain}, nil
}

func (e *ToolExtractor) Extract(ctx context.Context, utterance string) Result {
	record, err := e.chain.Invoke(ctx, utterance)
	if err != nil || record == nil {
		slog.Warn("structured extraction failed", "err", err)
		return Result{Values: emptyValues(), Outcome: types.OutcomeServiceError}
	}
	return Result{Values: record.Values(), Outcome: types.OutcomeOK}
}

func buildToolPrompt(ctx context.Context, utterance string) ([]*schema.Message, error) {
	schemaJSON, err := profile.Schema()
	if err != nil {
		return nil, fmt.Errorf("build profile schema: %w", err)
	}
	systemPrompt := fmt.Sprintf(`You extract personal profile details from a single user message.
Only use information the user stated explicitly. Use 'not found' for anything missing.
Call the '%s' tool with the result.

# Record schema JSON:
%s`, extractToolName, schemaJSON)

	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(utterance),
	}, nil
}
