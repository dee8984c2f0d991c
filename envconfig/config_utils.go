// config_utils.go - generic getters and export for configuration
//
// Contains:
// - Bool: boolean getter with default
// - EnvVar: struct describing a single environment variable
// - AsMap: all recognized configuration as a map, for env-var doc generation
package envconfig

import (
	"strconv"
)

// BoolWithDefault returns a function reading a bool with a default value.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool returns a function reading a bool (default: false).
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// EnvVar describes an environment variable and its current value, used to
// render the CLI's env-var help block.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns all recognized configuration as a map of name to EnvVar.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"BPETOK_DEBUG":      {"BPETOK_DEBUG", LogLevel(), "Show additional debug information (e.g. BPETOK_DEBUG=1)"},
		"BPETOK_PATTERN":    {"BPETOK_PATTERN", Pattern(), "Override the default pre-tokenizer split pattern"},
		"BPETOK_VOCAB_SIZE": {"BPETOK_VOCAB_SIZE", VocabSize(), "Default vocabulary size for `train` (default 512)"},
	}
}
