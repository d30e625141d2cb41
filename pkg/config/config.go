package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nikogura/storyboard-scorer/pkg/llm"
	"github.com/nikogura/storyboard-scorer/pkg/scorer"
	"github.com/nikogura/storyboard-scorer/pkg/sharktank"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Provider       llm.Provider          `json:"provider" yaml:"provider"`
	GroqAPIKey     string                `json:"groq_api_key,omitempty" yaml:"groq_api_key,omitempty"`
	GeminiAPIKey   string                `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty"`
	Models         ModelsConfig          `json:"models,omitempty" yaml:"models,omitempty"`
	Evaluator      EvaluatorConfig       `json:"evaluator" yaml:"evaluator"`
	StructureRules bool                  `json:"structure_rules,omitempty" yaml:"structure_rules,omitempty"`
	CriteriaPatch  *scorer.CriteriaPatch `json:"criteria,omitempty" yaml:"criteria,omitempty"`
	Server         ServerConfig          `json:"server" yaml:"server"`
}

// ModelsConfig holds model selection per provider.
type ModelsConfig struct {
	Groq   string `json:"groq,omitempty" yaml:"groq,omitempty"`
	Gemini string `json:"gemini,omitempty" yaml:"gemini,omitempty"`
}

// EvaluatorConfig controls the external judge.
type EvaluatorConfig struct {
	TimeoutSeconds int              `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	CacheSize      int              `json:"cache_size,omitempty" yaml:"cache_size,omitempty"`
	Policy         sharktank.Policy `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	Addr   string `json:"addr,omitempty" yaml:"addr,omitempty"`
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() (cfg Config) {
	cfg = Config{
		Provider: llm.ProviderGroq,
		Evaluator: EvaluatorConfig{
			TimeoutSeconds: int(sharktank.DefaultTimeout / time.Second),
			CacheSize:      sharktank.DefaultCacheSize,
			Policy:         sharktank.PolicyFallback,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
	return cfg
}

// DefaultPath returns $HOME/.storyboard-scorer/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".storyboard-scorer", "config.json")
	return path, err
}

// APIKey returns the key for the selected provider.
func (c *Config) APIKey() (key string) {
	switch c.Provider {
	case llm.ProviderGemini:
		key = c.GeminiAPIKey
	case llm.ProviderGroq, "":
		key = c.GroqAPIKey
	}
	return key
}

// Model returns the model for the selected provider, empty meaning the backend default.
func (c *Config) Model() (model string) {
	switch c.Provider {
	case llm.ProviderGemini:
		model = c.Models.Gemini
	case llm.ProviderGroq, "":
		model = c.Models.Groq
	}
	return model
}

// Timeout returns the external evaluation timeout.
func (c *Config) Timeout() (timeout time.Duration) {
	timeout = sharktank.DefaultTimeout
	if c.Evaluator.TimeoutSeconds > 0 {
		timeout = time.Duration(c.Evaluator.TimeoutSeconds) * time.Second
	}
	return timeout
}

// Criteria returns the default criteria with any configured overrides applied.
func (c *Config) Criteria() (criteria scorer.Criteria) {
	criteria = scorer.DefaultCriteria()
	if c.CriteriaPatch != nil {
		criteria = criteria.Apply(*c.CriteriaPatch)
	}
	return criteria
}

// Rules returns the rule set selected by the configuration.
func (c *Config) Rules() (rules []scorer.Rule) {
	rules = scorer.DefaultRules()
	if c.StructureRules {
		rules = append(rules, scorer.StructureRules()...)
	}
	return rules
}

// Load reads configuration from file with .env and environment variable overrides. With an empty
// configPath a missing default file is not an error; an explicit path must exist.
func Load(configPath string) (cfg Config, err error) {
	_ = godotenv.Load()

	cfg = Default()

	path := configPath
	explicit := path != ""
	if !explicit {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = decode(path, data, &cfg)
		if err != nil {
			return cfg, err
		}
	case os.IsNotExist(err) && !explicit:
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'storyboard-scorer init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	applyEnv(&cfg)

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func decode(path string, data []byte, cfg *Config) (err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return err
	}
	return err
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("STORYBOARD_SCORER_PROVIDER")); v != "" {
		cfg.Provider = llm.Provider(strings.ToLower(v))
	}
	if v := strings.TrimSpace(os.Getenv("GROQ_API_KEY")); v != "" {
		cfg.GroqAPIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("STORYBOARD_SCORER_API_KEY")); v != "" {
		cfg.Server.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("STORYBOARD_SCORER_ADDR")); v != "" {
		cfg.Server.Addr = v
	}
}

// Validate checks the configuration. Missing API keys are allowed: the scorer then runs on the
// local fallback evaluator.
func (c *Config) Validate() (err error) {
	switch c.Provider {
	case llm.ProviderGroq, llm.ProviderGemini, llm.ProviderNone:
	case "":
		c.Provider = llm.ProviderGroq
	default:
		err = errors.Errorf("unknown provider %q (expected groq, gemini or none)", c.Provider)
		return err
	}

	switch c.Evaluator.Policy {
	case sharktank.PolicyFallback, sharktank.PolicyOmit:
	case "":
		c.Evaluator.Policy = sharktank.PolicyFallback
	default:
		err = errors.Errorf("unknown evaluator policy %q (expected fallback or omit)", c.Evaluator.Policy)
		return err
	}

	if c.Evaluator.TimeoutSeconds < 0 {
		err = errors.New("evaluator.timeout_seconds must not be negative")
		return err
	}

	if c.Evaluator.CacheSize < 0 {
		err = errors.New("evaluator.cache_size must not be negative")
		return err
	}

	err = c.Criteria().Validate()
	if err != nil {
		err = errors.Wrap(err, "criteria")
		return err
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Default()
	defaultConfig.GroqAPIKey = "your-groq-api-key-here"

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(defaultConfig)
	default:
		data, err = json.MarshalIndent(defaultConfig, "", "  ")
	}
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
