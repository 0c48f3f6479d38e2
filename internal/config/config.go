package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

const DefaultJudgeModel = "gpt-4o"

type Config struct {
	Judge   JudgeConfig   `yaml:"judge"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

type JudgeConfig struct {
	Model     string                    `yaml:"model,omitempty"`
	MaxTokens int                       `yaml:"max_tokens,omitempty"`
	Providers map[string]ProviderConfig `yaml:"providers,omitempty"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
}

type StorageConfig struct {
	Type string `yaml:"type,omitempty"` // "sqlite" or "memory"
	Path string `yaml:"path,omitempty"` // SQLite file path
}

type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Load reads a config file and applies environment overrides. A missing
// file at the default path is not an error: the tool must be able to run
// with only env-var API keys set.
func Load(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != "" && strings.TrimSpace(path) != DefaultPath
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults only.
	default:
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	if cfg.Judge.Providers == nil {
		cfg.Judge.Providers = make(map[string]ProviderConfig)
	}
	if strings.TrimSpace(cfg.Judge.Model) == "" {
		cfg.Judge.Model = DefaultJudgeModel
	}

	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		p := cfg.Judge.Providers["openai"]
		p.APIKey = v
		cfg.Judge.Providers["openai"] = p
	}

	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" {
		p := cfg.Judge.Providers["claude"]
		p.APIKey = v
		cfg.Judge.Providers["claude"] = p
	} else if v := strings.TrimSpace(os.Getenv("ANTHROPIC_AUTH_TOKEN")); v != "" {
		p := cfg.Judge.Providers["claude"]
		p.APIKey = v
		cfg.Judge.Providers["claude"] = p
	}

	return &cfg, nil
}
