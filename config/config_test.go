package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INTAKEAGENT_PROVIDER", "")
	t.Setenv("GOOGLE_API_KEY", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider != ProviderGemini || cfg.Extraction.Mode != ModeKeyValue {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Transcript.Driver != DriverFile || cfg.Transcript.Path != "chat_history" {
		t.Errorf("unexpected transcript defaults: %+v", cfg.Transcript)
	}
	if cfg.APIKey() != "" {
		t.Errorf("api key = %q, want empty", cfg.APIKey())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	t.Setenv("INTAKEAGENT_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OPENAI_BASE_URL", "")
	path := writeConfig(t, `
provider: openai
openai:
  model: gpt-4.1-mini
extraction:
  mode: tool
  legacy_accept: true
transcript:
  driver: sqlite
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey() != "sk-env" {
		t.Errorf("api key = %q", cfg.APIKey())
	}
	if cfg.OpenAI.Model != "gpt-4.1-mini" || !cfg.Extraction.LegacyAccept {
		t.Errorf("file values lost: %+v", cfg)
	}
	if cfg.Transcript.Path != "chat_history.db" {
		t.Errorf("transcript path = %q", cfg.Transcript.Path)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("INTAKEAGENT_PROVIDER", "")
	cases := map[string]string{
		"provider": "provider: claude\n",
		"mode":     "extraction:\n  mode: regex\n",
		"tool":     "provider: gemini\nextraction:\n  mode: tool\n",
		"level":    "log:\n  level: loud\n",
		"yaml":     "provider: [\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
