package main

import (
	"context"
	"log/slog"

	"github.com/samber/do"
	"github.com/tbxark/intakeagent/agent"
	"github.com/tbxark/intakeagent/config"
	"github.com/tbxark/intakeagent/extract"
	"github.com/tbxark/intakeagent/followup"
	"github.com/tbxark/intakeagent/llm"
	"github.com/tbxark/intakeagent/transcript"
)

func newInjector(ctx context.Context, cfg *config.Config) *do.Injector {
	di := do.New()
	do.ProvideValue(di, ctx)
	do.ProvideValue(di, cfg)
	do.Provide(di, newLLMClient)
	do.Provide(di, newExtractor)
	do.Provide(di, newGenerator)
	do.Provide(di, newTranscriptStore)
	do.Provide(di, newController)
	return di
}

// newLLMClient builds the client of the selected provider. When the other
// provider also has a key it is tried after the selected one.
func newLLMClient(di *do.Injector) (llm.Client, error) {
	ctx := do.MustInvoke[context.Context](di)
	cfg := do.MustInvoke[*config.Config](di)

	if cfg.APIKey() == "" {
		slog.Warn("no API key configured, every service call will fail", "provider", cfg.Provider)
		return llm.Unavailable{Reason: "no API key for provider " + cfg.Provider}, nil
	}
	order := []string{config.ProviderGemini, config.ProviderOpenAI}
	if cfg.Provider == config.ProviderOpenAI {
		order = []string{config.ProviderOpenAI, config.ProviderGemini}
	}
	var clients []llm.Client
	for _, provider := range order {
		client, err := providerClient(ctx, cfg, provider)
		if err != nil {
			return nil, err
		}
		if client != nil {
			clients = append(clients, client)
		}
	}
	if len(clients) == 1 {
		return clients[0], nil
	}
	return llm.NewFailbackClient(clients...), nil
}

func providerClient(ctx context.Context, cfg *config.Config, provider string) (llm.Client, error) {
	switch provider {
	case config.ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, nil
		}
		chatModel, err := llm.NewOpenAIChatModel(ctx, openAIConfig(cfg))
		if err != nil {
			return nil, err
		}
		return llm.NewChatModelClient(chatModel, llm.WithStreaming(true)), nil
	default:
		if cfg.Gemini.APIKey == "" {
			return nil, nil
		}
		client, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func newExtractor(di *do.Injector) (extract.Extractor, error) {
	ctx := do.MustInvoke[context.Context](di)
	cfg := do.MustInvoke[*config.Config](di)
	client := do.MustInvoke[llm.Client](di)

	switch cfg.Extraction.Mode {
	case config.ModeSubstring:
		return extract.NewLLMExtractor(client, extract.SubstringParser{}), nil
	case config.ModeTool:
		if cfg.APIKey() == "" {
			slog.Warn("tool extraction needs an API key, using line parsing")
			return extract.NewLLMExtractor(client, extract.KeyValueParser{}), nil
		}
		chatModel, err := llm.NewOpenAIChatModel(ctx, openAIConfig(cfg))
		if err != nil {
			return nil, err
		}
		extractor, err := extract.NewToolExtractor(chatModel)
		if err != nil {
			return nil, err
		}
		return extractor, nil
	default:
		return extract.NewLLMExtractor(client, extract.KeyValueParser{}), nil
	}
}

func newGenerator(di *do.Injector) (followup.Generator, error) {
	cfg := do.MustInvoke[*config.Config](di)
	generator := followup.Generator(followup.NewLLMGenerator(do.MustInvoke[llm.Client](di)))
	if cfg.Followup.LocalFallback {
		generator = followup.NewFailbackGenerator(generator, followup.LocalGenerator{})
	}
	return generator, nil
}

// transcriptService closes the store when the injector shuts down.
type transcriptService struct {
	transcript.Store
}

func (s transcriptService) Shutdown() error {
	return s.Close()
}

func newTranscriptStore(di *do.Injector) (transcript.Store, error) {
	cfg := do.MustInvoke[*config.Config](di)

	var (
		store transcript.Store
		err   error
	)
	switch cfg.Transcript.Driver {
	case config.DriverMemory:
		store = transcript.NewMemorySink()
	case config.DriverSQLite:
		store, err = transcript.NewSQLiteSink(cfg.Transcript.Path)
	default:
		store, err = transcript.NewFileSink(cfg.Transcript.Path)
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("transcript store ready", "driver", cfg.Transcript.Driver, "path", cfg.Transcript.Path)
	return transcriptService{Store: store}, nil
}

func newController(di *do.Injector) (*agent.Controller, error) {
	cfg := do.MustInvoke[*config.Config](di)
	accept := acceptFunc(cfg)
	return agent.NewController(
		do.MustInvoke[extract.Extractor](di),
		do.MustInvoke[followup.Generator](di),
		agent.WithAcceptFunc(accept),
		agent.WithSink(do.MustInvoke[transcript.Store](di)),
	), nil
}

func acceptFunc(cfg *config.Config) extract.AcceptFunc {
	if cfg.Extraction.LegacyAccept {
		return extract.LegacyAccept
	}
	return extract.Accept
}

func openAIConfig(cfg *config.Config) llm.OpenAIConfig {
	return llm.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
	}
}
