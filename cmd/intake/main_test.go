package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samber/do"
	"github.com/tbxark/intakeagent/agent"
	"github.com/tbxark/intakeagent/config"
	"github.com/tbxark/intakeagent/llm"
	"github.com/tbxark/intakeagent/transcript"
	"github.com/tbxark/intakeagent/types"
)

func offlineConfig(driver string) *config.Config {
	return &config.Config{
		Provider:   config.ProviderGemini,
		Extraction: config.Extraction{Mode: config.ModeKeyValue},
		Followup:   config.Followup{LocalFallback: true},
		Transcript: config.Transcript{Driver: driver},
		Log:        config.Log{Level: "info"},
	}
}

func TestInjectorWithoutCredential(t *testing.T) {
	t.Parallel()
	di := newInjector(context.Background(), offlineConfig(config.DriverMemory))
	defer di.Shutdown()

	client := do.MustInvoke[llm.Client](di)
	if _, err := client.Send(context.Background(), "hi"); !errors.Is(err, llm.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}

	controller := do.MustInvoke[*agent.Controller](di)
	resp, err := controller.Turn(context.Background(), agent.NewSession("offline"), "I'm Alice")
	if err != nil {
		t.Fatalf("turn: %v", err)
	}
	if resp.Metadata["extraction_outcome"] != string(types.OutcomeServiceError) {
		t.Errorf("extraction outcome = %q", resp.Metadata["extraction_outcome"])
	}
	if resp.Message != "Could you tell me your name?" {
		t.Errorf("reply = %q", resp.Message)
	}

	stored, err := do.MustInvoke[transcript.Store](di).Load(context.Background(), "offline")
	if err != nil || len(stored) != 2 {
		t.Fatalf("stored = %d, err = %v", len(stored), err)
	}
}

func TestRunChatOffline(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := offlineConfig(config.DriverFile)
	cfg.Transcript.Path = t.TempDir()
	di := newInjector(ctx, cfg)
	defer di.Shutdown()

	in := strings.NewReader("hello\nmy name is Alice\n")
	var out bytes.Buffer
	opts := &chatOptions{session: "cli", prefill: map[string]string{"Email": "alice@example.com"}}
	if err := runChat(ctx, di, opts, in, &out); err != nil {
		t.Fatalf("run chat: %v", err)
	}
	if strings.Count(out.String(), "assistant: Could you tell me your name?") != 2 {
		t.Fatalf("output = %q", out.String())
	}

	var shown bytes.Buffer
	if err := showTranscript(ctx, do.MustInvoke[transcript.Store](di), "cli", &shown); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(shown.String(), "user: my name is Alice") {
		t.Errorf("transcript = %q", shown.String())
	}

	var listed bytes.Buffer
	if err := listTranscripts(ctx, do.MustInvoke[transcript.Store](di), &listed); err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.TrimSpace(listed.String()) != "cli" {
		t.Errorf("list = %q", listed.String())
	}
}

func TestSessionInitSkipsPlaceholderPrefill(t *testing.T) {
	t.Parallel()
	prefill := map[types.Field]string{
		types.FieldName:       "not found",
		types.FieldEmail:      "N/A",
		types.FieldUniversity: " MIT ",
	}
	initSession := newSessionInit(transcript.NewMemorySink(), prefill, acceptFunc(offlineConfig(config.DriverMemory)))
	s := agent.NewSession("prefill")
	if err := initSession(context.Background(), s); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, f := range []types.Field{types.FieldName, types.FieldEmail} {
		if v, ok := s.Profile.Value(f); ok {
			t.Errorf("%s acquired with %q", f, v)
		}
	}
	if v, ok := s.Profile.Value(types.FieldUniversity); !ok || v != "MIT" {
		t.Errorf("university = %q (acquired %v)", v, ok)
	}
	if got := s.Profile.MissingFields(); len(got) != 4 || got[0] != types.FieldName {
		t.Errorf("missing = %v", got)
	}
}

func TestParsePrefill(t *testing.T) {
	t.Parallel()
	got, err := parsePrefill(map[string]string{"Place of Birth": "Paris"})
	if err != nil || got[types.FieldPlaceOfBirth] != "Paris" {
		t.Fatalf("got %v, err %v", got, err)
	}
	if _, err := parsePrefill(map[string]string{"Age": "3"}); err == nil {
		t.Fatal("expected unknown field error")
	}
}
