package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/intakeagent/followup"
	"github.com/tbxark/intakeagent/types"
)

func TestSessionStoreIsKeyedByContext(t *testing.T) {
	t.Parallel()
	store := NewMemorySessionStore(nil)
	ctxA := WithSessionKey(context.Background(), "a")
	ctxB := WithSessionKey(context.Background(), "b")

	a, err := store.Load(ctxA)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if a.ID != "a" || a.Phase != types.PhaseCollecting {
		t.Fatalf("unexpected new session: %+v", a)
	}
	a.Profile.Merge(types.FieldName, "Alice")
	if err := store.Save(ctxA, a); err != nil {
		t.Fatalf("save: %v", err)
	}

	b, err := store.Load(ctxB)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := b.Profile.Value(types.FieldName); ok {
		t.Fatal("session b sees data from session a")
	}

	again, err := store.Load(ctxA)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v, _ := again.Profile.Value(types.FieldName); v != "Alice" {
		t.Fatalf("name = %q", v)
	}

	if err := store.Clear(ctxA); err != nil {
		t.Fatalf("clear: %v", err)
	}
	cleared, _ := store.Load(ctxA)
	if _, ok := cleared.Profile.Value(types.FieldName); ok {
		t.Fatal("cleared session still holds data")
	}
}

func TestSessionStoreDefaultKeyAndInit(t *testing.T) {
	t.Parallel()
	store := NewMemorySessionStore(func(ctx context.Context, s *Session) error {
		return s.Profile.Prefill(map[types.Field]string{types.FieldEmail: "x@example.com"})
	})
	s, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.ID != defaultSessionKey {
		t.Errorf("id = %q", s.ID)
	}
	if v, ok := s.Profile.Value(types.FieldEmail); !ok || v != "x@example.com" {
		t.Errorf("prefill not applied: %+v", s.Profile)
	}

	failing := NewMemorySessionStore(func(ctx context.Context, s *Session) error {
		return errors.New("boom")
	})
	if _, err := failing.Load(context.Background()); err == nil {
		t.Fatal("expected init error")
	}
}

func TestAgentRunsThroughRunner(t *testing.T) {
	t.Parallel()
	ctx := WithSessionKey(context.Background(), "runner")
	sessions := NewMemorySessionStore(nil)
	controller := NewController(fixedExtractor{values: map[types.Field]string{types.FieldName: "Bob"}}, followup.LocalGenerator{})
	a := NewAgent("Intake", "collects profile details", controller, sessions)
	runner := adk.NewRunner(ctx, adk.RunnerConfig{Agent: a})

	iter := runner.Run(ctx, []adk.Message{schema.UserMessage("I'm Bob")})
	var got []string
	for {
		event, ok := iter.Next()
		if !ok {
			break
		}
		if event.Err != nil {
			t.Fatalf("event error: %v", event.Err)
		}
		msg, err := event.Output.MessageOutput.GetMessage()
		if err != nil {
			t.Fatalf("get message: %v", err)
		}
		got = append(got, msg.Content)
	}
	if len(got) != 1 || got[0] != "Thanks, Bob! Could you tell me your place of birth?" {
		t.Fatalf("replies = %q", got)
	}

	s, err := sessions.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Messages) != 2 {
		t.Fatalf("session has %d messages", len(s.Messages))
	}
}

func TestAgentRejectsEmptyInput(t *testing.T) {
	t.Parallel()
	a := NewAgent("Intake", "", NewController(fixedExtractor{}, followup.LocalGenerator{}), nil)
	iter := a.Run(context.Background(), &adk.AgentInput{})
	event, ok := iter.Next()
	if !ok || event.Err == nil {
		t.Fatal("expected an error event")
	}
}

func TestResponseProfileIsACopy(t *testing.T) {
	t.Parallel()
	c := NewController(fixedExtractor{values: map[types.Field]string{types.FieldName: "Bob"}}, followup.LocalGenerator{})
	s := NewSession("")
	resp, err := c.Turn(context.Background(), s, "I'm Bob")
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	resp.Profile.Merge(types.FieldName, "Mallory")
	if v, _ := s.Profile.Value(types.FieldName); v != "Bob" {
		t.Fatalf("session profile changed through response: %q", v)
	}
}
