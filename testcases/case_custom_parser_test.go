package testcases

import (
	"context"
	"testing"

	"github.com/tbxark/intakeagent/agent"
	"github.com/tbxark/intakeagent/extract"
	"github.com/tbxark/intakeagent/types"
)

// TestSubstringParser runs the original line matching against a live reply.
func TestSubstringParser(t *testing.T) {
	t.Parallel()
	ctx := agent.WithSessionKey(context.Background(), "substring")
	intake := NewTestAgent(t, WithParser(extract.SubstringParser{}))

	resp, err := intake.Invoke(ctx, "My email address is carol@example.com")
	if err != nil {
		t.Fatalf("turn failed: %v", err)
	}
	if v, ok := resp.Profile.Value(types.FieldEmail); !ok || v != "carol@example.com" {
		t.Errorf("email = %q (acquired %v)", v, ok)
	}
	if resp.Phase != types.PhaseCollecting {
		t.Errorf("phase = %s, want collecting", resp.Phase)
	}
}

// TestToolExtraction asks for a JSON record through forced tool calling.
func TestToolExtraction(t *testing.T) {
	t.Parallel()
	ctx := agent.WithSessionKey(context.Background(), "tool")
	intake := NewTestAgent(t, WithToolExtraction())

	resp, err := intake.Invoke(ctx, "I'm Dana, I studied Biology at Stanford")
	if err != nil {
		t.Fatalf("turn failed: %v", err)
	}
	for _, f := range []types.Field{types.FieldName, types.FieldUniversity, types.FieldOfStudy} {
		if _, ok := resp.Profile.Value(f); !ok {
			t.Errorf("%s not acquired", f)
		}
	}
	if _, ok := resp.Profile.Value(types.FieldEmail); ok {
		t.Errorf("email should still be missing")
	}
}
