// Package llm holds the text-in/text-out clients used to talk to the
// extraction service.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client sends one prompt and returns the complete reply text.
type Client interface {
	Send(ctx context.Context, prompt string) (string, error)
}

type ClientFunc func(ctx context.Context, prompt string) (string, error)

func (f ClientFunc) Send(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

var ErrUnavailable = errors.New("extraction service unavailable")

// Unavailable is used when no credential is configured. Every call fails.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Send(ctx context.Context, prompt string) (string, error) {
	if u.Reason == "" {
		return "", ErrUnavailable
	}
	return "", fmt.Errorf("%w: %s", ErrUnavailable, u.Reason)
}

type FailbackClient struct {
	clients []Client
}

func NewFailbackClient(clients ...Client) *FailbackClient {
	return &FailbackClient{clients: clients}
}

func (c *FailbackClient) Send(ctx context.Context, prompt string) (string, error) {
	lastErr := ErrUnavailable
	for _, client := range c.clients {
		text, err := client.Send(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("all clients failed: %w", lastErr)
}
