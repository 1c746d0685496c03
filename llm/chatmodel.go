package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatModelClient adapts an eino chat model to Client.
type ChatModelClient struct {
	chatModel    model.BaseChatModel
	systemPrompt string
	stream       bool
}

type ChatModelOption func(*ChatModelClient)

// WithSystemPrompt prepends a system message to every request.
func WithSystemPrompt(prompt string) ChatModelOption {
	return func(c *ChatModelClient) {
		c.systemPrompt = prompt
	}
}

// WithStreaming reads the reply as a stream and buffers it.
func WithStreaming(stream bool) ChatModelOption {
	return func(c *ChatModelClient) {
		c.stream = stream
	}
}

func NewChatModelClient(chatModel model.BaseChatModel, opts ...ChatModelOption) *ChatModelClient {
	c := &ChatModelClient{chatModel: chatModel}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewOpenAIChatModel builds an eino chat model for an OpenAI compatible endpoint.
func NewOpenAIChatModel(ctx context.Context, cfg OpenAIConfig) (*openai.ChatModel, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create openai chat model: %w", err)
	}
	return chatModel, nil
}

func (c *ChatModelClient) Send(ctx context.Context, prompt string) (string, error) {
	messages := c.buildMessages(prompt)
	if !c.stream {
		resp, err := c.chatModel.Generate(ctx, messages)
		if err != nil {
			return "", fmt.Errorf("LLM call failed: %w", err)
		}
		if resp == nil {
			return "", nil
		}
		return resp.Content, nil
	}

	stream, err := c.chatModel.Stream(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("LLM stream call failed: %w", err)
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		chunk, rErr := stream.Recv()
		if errors.Is(rErr, io.EOF) {
			break
		}
		if rErr != nil {
			return "", fmt.Errorf("LLM stream read failed: %w", rErr)
		}
		if chunk != nil {
			sb.WriteString(chunk.Content)
		}
	}
	return sb.String(), nil
}

func (c *ChatModelClient) buildMessages(prompt string) []*schema.Message {
	messages := make([]*schema.Message, 0, 2)
	if c.systemPrompt != "" {
		messages = append(messages, schema.SystemMessage(c.systemPrompt))
	}
	return append(messages, schema.UserMessage(prompt))
}
