package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nikogura/storyboard-scorer/pkg/llm"
	"github.com/nikogura/storyboard-scorer/pkg/scorer"
	"github.com/nikogura/storyboard-scorer/pkg/sharktank"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GROQ_API_KEY",
		"GEMINI_API_KEY",
		"STORYBOARD_SCORER_PROVIDER",
		"STORYBOARD_SCORER_API_KEY",
		"STORYBOARD_SCORER_ADDR",
	} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	minWords := 30
	testConfig := Config{
		Provider:   llm.ProviderGroq,
		GroqAPIKey: "gsk_test",
		Models:     ModelsConfig{Groq: "llama-3.3-70b-versatile"},
		Evaluator: EvaluatorConfig{
			TimeoutSeconds: 5,
			CacheSize:      16,
			Policy:         sharktank.PolicyOmit,
		},
		CriteriaPatch: &scorer.CriteriaPatch{MinWordsPerSection: &minWords},
	}

	data, err := json.MarshalIndent(testConfig, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}
	writeFile(t, configPath, string(data))

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.APIKey() != "gsk_test" {
		t.Errorf("Expected API key gsk_test, got %s", cfg.APIKey())
	}

	if cfg.Model() != "llama-3.3-70b-versatile" {
		t.Errorf("Expected configured model, got %s", cfg.Model())
	}

	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", cfg.Timeout())
	}

	if cfg.Evaluator.Policy != sharktank.PolicyOmit {
		t.Errorf("Expected omit policy, got %s", cfg.Evaluator.Policy)
	}

	criteria := cfg.Criteria()
	if criteria.MinWordsPerSection != 30 || criteria.MaxWordsPerSection != 2000 {
		t.Errorf("Expected min 30 / max 2000, got %d / %d", criteria.MinWordsPerSection, criteria.MaxWordsPerSection)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %s", cfg.Server.Addr)
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, configPath, `provider: gemini
gemini_api_key: gem-test
structure_rules: true
criteria:
  maxWordsPerSection: 800
server:
  addr: 127.0.0.1:9090
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Provider != llm.ProviderGemini {
		t.Errorf("Expected gemini provider, got %s", cfg.Provider)
	}

	if cfg.APIKey() != "gem-test" {
		t.Errorf("Expected gemini key, got %s", cfg.APIKey())
	}

	if cfg.Criteria().MaxWordsPerSection != 800 {
		t.Errorf("Expected max words 800, got %d", cfg.Criteria().MaxWordsPerSection)
	}

	if len(cfg.Rules()) != len(scorer.DefaultRules())+len(scorer.StructureRules()) {
		t.Errorf("Expected structure rules to be enabled, got %d rules", len(cfg.Rules()))
	}

	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("Expected configured addr, got %s", cfg.Server.Addr)
	}

	if cfg.Evaluator.Policy != sharktank.PolicyFallback {
		t.Errorf("Expected fallback policy by default, got %s", cfg.Evaluator.Policy)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, configPath, `{"provider": "groq", "groq_api_key": "from-file"}`)

	t.Setenv("GROQ_API_KEY", "from-env")
	t.Setenv("STORYBOARD_SCORER_API_KEY", "server-secret")
	t.Setenv("STORYBOARD_SCORER_ADDR", ":7070")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GroqAPIKey != "from-env" {
		t.Errorf("Expected env key to win, got %s", cfg.GroqAPIKey)
	}

	if cfg.Server.APIKey != "server-secret" {
		t.Errorf("Expected server API key from env, got %s", cfg.Server.APIKey)
	}

	if cfg.Server.Addr != ":7070" {
		t.Errorf("Expected addr from env, got %s", cfg.Server.Addr)
	}
}

func TestLoadNonexistent(t *testing.T) {
	clearEnv(t)
	_, err := Load("/nonexistent/path/config.json")
	if err == nil {
		t.Fatal("Expected error loading nonexistent config, got nil")
	}

	if !strings.Contains(err.Error(), "init") {
		t.Errorf("Expected hint to run init, got %v", err)
	}
}

func TestLoadMissingDefaultIsNotAnError(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected defaults when no config exists, got %v", err)
	}

	if cfg.Provider != llm.ProviderGroq {
		t.Errorf("Expected groq provider by default, got %s", cfg.Provider)
	}
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{"bad json", `{"provider": `},
		{"unknown provider", `{"provider": "openai"}`},
		{"unknown policy", `{"evaluator": {"policy": "retry"}}`},
		{"negative timeout", `{"evaluator": {"timeout_seconds": -1}}`},
		{"inverted word limits", `{"criteria": {"minWordsPerSection": 3000}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.json")
			writeFile(t, configPath, tt.content)

			_, err := Load(configPath)
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Config{}

	err := cfg.Validate()
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if cfg.Provider != llm.ProviderGroq {
		t.Errorf("Expected groq provider, got %s", cfg.Provider)
	}

	if cfg.Evaluator.Policy != sharktank.PolicyFallback {
		t.Errorf("Expected fallback policy, got %s", cfg.Evaluator.Policy)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected default addr, got %s", cfg.Server.Addr)
	}

	if cfg.Timeout() != sharktank.DefaultTimeout {
		t.Errorf("Expected default timeout, got %v", cfg.Timeout())
	}
}

func TestInitConfig(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "nested", "config.json")

	err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}

	if llm.UsableKey(cfg.APIKey()) {
		t.Errorf("Expected placeholder key in generated config, got %s", cfg.APIKey())
	}

	err = InitConfig(configPath)
	if err == nil {
		t.Error("Expected error when config already exists, got nil")
	}
}

func TestInitConfigYAML(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}

	if cfg.Evaluator.CacheSize != sharktank.DefaultCacheSize {
		t.Errorf("Expected default cache size, got %d", cfg.Evaluator.CacheSize)
	}
}
