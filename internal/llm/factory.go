package llm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/knowmebench/knowme-eval/internal/config"
)

func NewRegistryFromConfig(cfg *config.Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.New("llm: nil config")
	}

	r := NewRegistry()
	for name, pcfg := range cfg.Judge.Providers {
		key := strings.ToLower(strings.TrimSpace(name))
		switch key {
		case "":
			continue
		case "claude", "anthropic":
			r.Register(NewClaudeProvider(pcfg.APIKey, pcfg.BaseURL, ""))
		case "openai":
			r.Register(NewOpenAIProvider(pcfg.APIKey, pcfg.BaseURL, ""))
		default:
			return nil, fmt.Errorf("llm: unknown provider %q", name)
		}
	}

	return r, nil
}

// ProviderNameForModel maps a judge model identifier to the provider that
// serves it.
func ProviderNameForModel(model string) string {
	m := strings.ToLower(strings.TrimSpace(model))
	switch {
	case strings.HasPrefix(m, "claude"):
		return "claude"
	default:
		return "openai"
	}
}

// ProviderForModel resolves the configured provider serving a judge model.
func ProviderForModel(cfg *config.Config, model string) (Provider, error) {
	if cfg == nil {
		return nil, errors.New("llm: nil config")
	}
	reg, err := NewRegistryFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	name := ProviderNameForModel(model)
	if p, ok := reg.Get(name); ok {
		return p, nil
	}

	available := make([]string, 0, len(reg.providers))
	for k := range reg.providers {
		available = append(available, k)
	}
	sort.Strings(available)
	if len(available) == 0 {
		return nil, fmt.Errorf("llm: provider %q not configured for model %q (no API keys set)", name, model)
	}
	return nil, fmt.Errorf("llm: provider %q not configured for model %q (available: %s)", name, model, strings.Join(available, ", "))
}
