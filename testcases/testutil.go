package testcases

import (
	"context"
	"os"
	"testing"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/tbxark/intakeagent/agent"
	"github.com/tbxark/intakeagent/config"
	"github.com/tbxark/intakeagent/extract"
	"github.com/tbxark/intakeagent/followup"
	"github.com/tbxark/intakeagent/llm"
	"github.com/tbxark/intakeagent/types"
)

type agentOptions struct {
	parser   extract.Parser
	prefill  map[types.Field]string
	toolMode bool
}

type AgentOption func(*agentOptions)

func WithParser(parser extract.Parser) AgentOption {
	return func(o *agentOptions) {
		o.parser = parser
	}
}

func WithPrefill(values map[types.Field]string) AgentOption {
	return func(o *agentOptions) {
		o.prefill = values
	}
}

// WithToolExtraction needs an OpenAI compatible provider.
func WithToolExtraction() AgentOption {
	return func(o *agentOptions) {
		o.toolMode = true
	}
}

func loadConfig(t *testing.T) *config.Config {
	if os.Getenv("INTAKEAGENT_RUN_LIVE_TESTS") != "1" {
		t.Skip("set INTAKEAGENT_RUN_LIVE_TESTS=1 to run live LLM tests")
		return nil
	}
	cfg, err := config.Load(os.Getenv("INTAKEAGENT_CONFIG"))
	if err != nil {
		t.Skipf("failed to load config: %v", err)
		return nil
	}
	if cfg.APIKey() == "" {
		t.Skipf("no API key for provider %s", cfg.Provider)
		return nil
	}
	return cfg
}

func InitClient(t *testing.T, cfg *config.Config) llm.Client {
	ctx := context.Background()
	if cfg.Provider == config.ProviderOpenAI {
		chatModel := InitChatModel(t, cfg)
		return llm.NewChatModelClient(chatModel)
	}
	client, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	})
	if err != nil {
		t.Fatalf("failed to init gemini client: %v", err)
	}
	return client
}

func InitChatModel(t *testing.T, cfg *config.Config) *openai.ChatModel {
	chatModel, err := llm.NewOpenAIChatModel(context.Background(), llm.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
	})
	if err != nil {
		t.Fatalf("failed to init chat model: %v", err)
	}
	return chatModel
}

func NewTestAgent(t *testing.T, opts ...AgentOption) *agent.Agent {
	cfg := loadConfig(t)
	if cfg == nil {
		return nil
	}

	o := &agentOptions{}
	for _, opt := range opts {
		opt(o)
	}

	client := InitClient(t, cfg)
	var extractor extract.Extractor = extract.NewLLMExtractor(client, o.parser)
	if o.toolMode {
		if cfg.Provider != config.ProviderOpenAI {
			t.Skip("tool extraction needs provider openai")
		}
		toolExtractor, err := extract.NewToolExtractor(InitChatModel(t, cfg))
		if err != nil {
			t.Fatalf("failed to create tool extractor: %v", err)
		}
		extractor = toolExtractor
	}
	controller := agent.NewController(
		extractor,
		followup.NewFailbackGenerator(followup.NewLLMGenerator(client), followup.LocalGenerator{}),
	)
	sessions := agent.NewMemorySessionStore(func(ctx context.Context, s *agent.Session) error {
		if len(o.prefill) == 0 {
			return nil
		}
		return s.Profile.Prefill(extract.Accepted(o.prefill, extract.Accept))
	})
	return agent.NewAgent("IntakeAgent", "live test agent", controller, sessions)
}
