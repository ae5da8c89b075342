// Package config defines the rule-configuration types consumed by the
// linting core. These are pure data structures; loading and merging of
// configuration files happens outside the core.
package config

import "fmt"

// Severity is the reporting level of a rule.
type Severity int

// Severity levels.
const (
	SeverityOff   Severity = 0
	SeverityWarn  Severity = 1
	SeverityError Severity = 2
)

// String returns the canonical name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOff:
		return "off"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// IsValid returns true for the three defined levels.
func (s Severity) IsValid() bool {
	return s >= SeverityOff && s <= SeverityError
}

// ParseSeverity converts a configuration value (number or name) into a
// Severity. Accepted forms: 0/1/2 and "off"/"warn"/"error".
func ParseSeverity(value any) (Severity, error) {
	switch v := value.(type) {
	case int:
		s := Severity(v)
		if !s.IsValid() {
			return 0, fmt.Errorf("severity %d out of range [0, 2]", v)
		}
		return s, nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("severity %v is not an integer", v)
		}
		return ParseSeverity(int(v))
	case string:
		switch v {
		case "off":
			return SeverityOff, nil
		case "warn":
			return SeverityWarn, nil
		case "error":
			return SeverityError, nil
		}
		return 0, fmt.Errorf("unknown severity %q (want off, warn, or error)", v)
	default:
		return 0, fmt.Errorf("severity must be a number or string, got %T", value)
	}
}

// RuleEntry is a rule's configured severity and options.
type RuleEntry struct {
	// Severity is the configured reporting level.
	Severity Severity

	// Options are the rule-specific option values, if any.
	Options []any
}

// ParseRuleEntry converts a configuration value into a RuleEntry.
// A bare severity configures a rule with no options; an array form
// [severity, options...] carries both.
func ParseRuleEntry(value any) (RuleEntry, error) {
	if list, ok := value.([]any); ok {
		if len(list) == 0 {
			return RuleEntry{}, fmt.Errorf("rule entry array is empty")
		}
		sev, err := ParseSeverity(list[0])
		if err != nil {
			return RuleEntry{}, err
		}
		return RuleEntry{Severity: sev, Options: list[1:]}, nil
	}

	sev, err := ParseSeverity(value)
	if err != nil {
		return RuleEntry{}, err
	}
	return RuleEntry{Severity: sev}, nil
}

// GlobalValue describes how a configured global may be used.
type GlobalValue string

// Global access levels.
const (
	GlobalReadonly GlobalValue = "readonly"
	GlobalWritable GlobalValue = "writable"
	GlobalOff      GlobalValue = "off"
)

// ParseGlobalValue normalizes a configured global value, including the
// legacy boolean forms (true means writable, false means readonly).
func ParseGlobalValue(value any) (GlobalValue, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return GlobalWritable, nil
		}
		return GlobalReadonly, nil
	case string:
		switch v {
		case "readonly", "readable", "":
			return GlobalReadonly, nil
		case "writable", "writeable":
			return GlobalWritable, nil
		case "off":
			return GlobalOff, nil
		}
		return "", fmt.Errorf("'%s' is not a valid configuration for a global (use 'readonly', 'writable', or 'off')", v)
	default:
		return "", fmt.Errorf("global value must be a string or boolean, got %T", value)
	}
}

// LanguageOptions selects the language level for parsing and linting.
type LanguageOptions struct {
	// EcmaVersion is a year (2015+), an edition number (5, 6, ...), or
	// the string "latest", meaning the newest version the parser
	// supports.
	EcmaVersion any `yaml:"ecmaVersion"`

	// SourceType is "script", "module", or "commonjs".
	SourceType string `yaml:"sourceType"`

	// Parser names a registered parser; empty selects the default.
	Parser string `yaml:"parser"`
}

// Config enumerates the rules and language settings for one lint run.
// A Config is sealed once a run starts; inline directives produce an
// overlay that shadows it for that file only.
type Config struct {
	// Rules maps rule ids to their configured entries.
	Rules map[string]RuleEntry `yaml:"rules"`

	// Globals maps identifier names to their access level.
	Globals map[string]GlobalValue `yaml:"globals"`

	// Envs lists environment names whose globals are merged in.
	Envs []string `yaml:"envs"`

	// LanguageOptions selects the language level.
	LanguageOptions LanguageOptions `yaml:"languageOptions"`

	// Settings is opaque shared data exposed to every rule.
	Settings map[string]any `yaml:"settings"`
}

// New returns an empty Config with defaults applied.
func New() *Config {
	return &Config{
		Rules:   make(map[string]RuleEntry),
		Globals: make(map[string]GlobalValue),
		LanguageOptions: LanguageOptions{
			EcmaVersion: "latest",
			SourceType:  "module",
		},
	}
}

// Clone returns a deep copy. Overlay mutation never touches the base.
func (c *Config) Clone() *Config {
	if c == nil {
		return New()
	}
	clone := &Config{
		Rules:           make(map[string]RuleEntry, len(c.Rules)),
		Globals:         make(map[string]GlobalValue, len(c.Globals)),
		Envs:            append([]string(nil), c.Envs...),
		LanguageOptions: c.LanguageOptions,
		Settings:        c.Settings,
	}
	for id, entry := range c.Rules {
		clone.Rules[id] = RuleEntry{
			Severity: entry.Severity,
			Options:  append([]any(nil), entry.Options...),
		}
	}
	for name, value := range c.Globals {
		clone.Globals[name] = value
	}
	return clone
}
