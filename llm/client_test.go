package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type fakeChatModel struct {
	chunks []string
	err    error
	inputs [][]*schema.Message
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	content := ""
	for _, c := range m.chunks {
		content += c
	}
	return schema.AssistantMessage(content, nil), nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	msgs := make([]*schema.Message, 0, len(m.chunks))
	for _, c := range m.chunks {
		msgs = append(msgs, schema.AssistantMessage(c, nil))
	}
	return schema.StreamReaderFromArray(msgs), nil
}

func TestChatModelClientGenerate(t *testing.T) {
	t.Parallel()
	fake := &fakeChatModel{chunks: []string{"Name: Alice"}}
	client := NewChatModelClient(fake, WithSystemPrompt("be brief"))

	text, err := client.Send(context.Background(), "extract")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if text != "Name: Alice" {
		t.Fatalf("text = %q", text)
	}
	if len(fake.inputs) != 1 || len(fake.inputs[0]) != 2 {
		t.Fatalf("unexpected request messages: %+v", fake.inputs)
	}
	if fake.inputs[0][0].Role != schema.System || fake.inputs[0][1].Content != "extract" {
		t.Errorf("unexpected messages: %+v", fake.inputs[0])
	}
}

func TestChatModelClientStreamBuffersChunks(t *testing.T) {
	t.Parallel()
	fake := &fakeChatModel{chunks: []string{"Name: Al", "ice\nEmail", ": not found"}}
	client := NewChatModelClient(fake, WithStreaming(true))

	text, err := client.Send(context.Background(), "extract")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if text != "Name: Alice\nEmail: not found" {
		t.Fatalf("text = %q", text)
	}
}

func TestChatModelClientError(t *testing.T) {
	t.Parallel()
	boom := errors.New("quota exceeded")
	client := NewChatModelClient(&fakeChatModel{err: boom}, WithStreaming(true))
	if _, err := client.Send(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}

func TestUnavailable(t *testing.T) {
	t.Parallel()
	_, err := Unavailable{Reason: "GOOGLE_API_KEY not set"}.Send(context.Background(), "x")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestFailbackClient(t *testing.T) {
	t.Parallel()
	calls := 0
	failing := ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", errors.New("down")
	})
	working := ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "ok:" + prompt, nil
	})

	text, err := NewFailbackClient(failing, working).Send(context.Background(), "p")
	if err != nil || text != "ok:p" {
		t.Fatalf("Send = %q, %v", text, err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}

	if _, err := NewFailbackClient(failing).Send(context.Background(), "p"); err == nil {
		t.Fatal("expected error when every client fails")
	}
	if _, err := NewFailbackClient().Send(context.Background(), "p"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("empty failback err = %v", err)
	}
}
