// config.go - process configuration for the bpetok CLI
//
// Contains:
// - LogLevel: log verbosity (BPETOK_DEBUG)
// - Pattern: default pre-tokenizer pattern override (BPETOK_PATTERN)
// - VocabSize: default training vocabulary size (BPETOK_VOCAB_SIZE)
//
// Further configuration is split out into config_utils.go (generic
// getters, EnvVar/AsMap export).
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel returns the configured log level.
// Configurable via BPETOK_DEBUG.
// Values: unset = INFO (default), true/1 = DEBUG, signed int = slog level * -4.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("BPETOK_DEBUG"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			if b {
				level = slog.LevelDebug
			}
		} else if i, err := strconv.ParseInt(s, 10, 64); err == nil && i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Pattern returns the pre-tokenizer regex override, or "" to use the
// tokenizer's built-in default.
// Configurable via BPETOK_PATTERN.
func Pattern() string {
	return Var("BPETOK_PATTERN")
}

// VocabSize returns the default --vocab-size for `train` when the flag is
// not passed.
// Configurable via BPETOK_VOCAB_SIZE. Default: 512.
func VocabSize() int {
	if s := Var("BPETOK_VOCAB_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 512
}

// Var returns an environment variable, trimming surrounding whitespace and
// quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
