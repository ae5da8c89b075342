package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawConfig mirrors Config with loosely typed rule and global values, the
// shape YAML decoding naturally produces.
type rawConfig struct {
	Rules           map[string]any  `yaml:"rules"`
	Globals         map[string]any  `yaml:"globals"`
	Envs            []string        `yaml:"envs"`
	LanguageOptions LanguageOptions `yaml:"languageOptions"`
	Settings        map[string]any  `yaml:"settings"`
}

// FromYAML decodes a YAML (or JSON, which YAML subsumes) document into a
// validated Config.
func FromYAML(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg := New()
	if raw.LanguageOptions.EcmaVersion != nil {
		cfg.LanguageOptions.EcmaVersion = raw.LanguageOptions.EcmaVersion
	}
	if raw.LanguageOptions.SourceType != "" {
		cfg.LanguageOptions.SourceType = raw.LanguageOptions.SourceType
	}
	cfg.LanguageOptions.Parser = raw.LanguageOptions.Parser
	cfg.Envs = raw.Envs
	cfg.Settings = raw.Settings

	for id, value := range raw.Rules {
		entry, err := ParseRuleEntry(value)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", id, err)
		}
		cfg.Rules[id] = entry
	}
	for name, value := range raw.Globals {
		gv, err := ParseGlobalValue(value)
		if err != nil {
			return nil, fmt.Errorf("global %q: %w", name, err)
		}
		cfg.Globals[name] = gv
	}
	return cfg, nil
}
