package llm

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv unsets every variable LoadConfig reads for the duration of t.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QUIZGEN_LLM_PROVIDER", "MODEL_NAME",
		"QUIZGEN_OPENAI_API_KEY", "QUIZGEN_OPENAI_MODEL", "QUIZGEN_OPENAI_BASE_URL",
		"QUIZGEN_ANTHROPIC_API_KEY", "QUIZGEN_ANTHROPIC_MODEL",
		"QUIZGEN_GEMINI_API_KEY", "QUIZGEN_GEMINI_MODEL",
		"QUIZGEN_OPENROUTER_API_KEY", "QUIZGEN_OPENROUTER_MODEL",
		"OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "openai" || cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Fatalf("expected retries disabled by default, got %d attempts", cfg.Retry.MaxAttempts)
	}
	if cfg.Validate() == nil {
		t.Fatal("expected missing key to fail validation")
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "quizgen.yaml")
	data := []byte(`provider: anthropic
anthropic:
  api_key: sk-file
  model: claude-sonnet
timeout: 15s
retry:
  max_attempts: 3
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QUIZGEN_ANTHROPIC_MODEL", "claude-haiku")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-file" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Fatalf("env should override file, got model %q", cfg.Anthropic.Model)
	}
	if cfg.Timeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %s", cfg.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.Multiplier != 2.0 {
		t.Fatalf("expected partial retry override, got %+v", cfg.Retry)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfig_DiscoversVendorKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
		t.Fatalf("expected gemini discovery, got %+v", cfg)
	}
}

func TestLoadConfig_ExplicitProviderLimitsDiscovery(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUIZGEN_LLM_PROVIDER", "anthropic")
	t.Setenv("OPENAI_API_KEY", "o-key")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Fatalf("explicit provider must be kept, got %q", cfg.Provider)
	}
	if cfg.Validate() == nil {
		t.Fatal("expected anthropic without key to fail validation")
	}
}

func TestLoadConfig_ModelNameFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODEL_NAME", "gpt-4o")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("expected MODEL_NAME to select the model, got %q", cfg.OpenAI.Model)
	}
}
