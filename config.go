package weightvm

import (
	"log/slog"

	"github.com/coregx/weightvm/literal"
)

// Config controls how a Matcher is compiled.
//
// Example:
//
//	config := weightvm.DefaultConfig()
//	config.EnablePrefilter = false // always run the virtual machine
//	m, err := weightvm.CompileWithConfig(prog, config)
type Config struct {
	// EnablePrefilter enables literal-based prefiltering.
	// When false, no prefilter is used even if literals are available.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals limits the number of prefix literals to extract.
	// Programs needing more get no prefilter.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen caps the length of each prefix literal.
	// Default: 64
	MaxLiteralLen int

	// MaxClassSize is the widest byte range expanded into alternative
	// literals.
	// Default: 10
	MaxClassSize int

	// Logger receives diagnostics about compilation. Matching never logs.
	// Default: nil (discard)
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	lits := literal.DefaultConfig()
	return Config{
		EnablePrefilter: true,
		MaxLiterals:     lits.MaxLiterals,
		MaxLiteralLen:   lits.MaxLiteralLen,
		MaxClassSize:    lits.MaxClassSize,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges (checked only when EnablePrefilter is set):
//   - MaxLiterals: 1 to 1,000
//   - MaxLiteralLen: 1 to 256
//   - MaxClassSize: 1 to 256
func (c Config) Validate() error {
	if !c.EnablePrefilter {
		return nil
	}
	if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
		return &ConfigError{
			Field:   "MaxLiterals",
			Message: "must be between 1 and 1,000",
		}
	}
	if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 256 {
		return &ConfigError{
			Field:   "MaxLiteralLen",
			Message: "must be between 1 and 256",
		}
	}
	if c.MaxClassSize < 1 || c.MaxClassSize > 256 {
		return &ConfigError{
			Field:   "MaxClassSize",
			Message: "must be between 1 and 256",
		}
	}
	return nil
}

func (c Config) extractorConfig() literal.ExtractorConfig {
	return literal.ExtractorConfig{
		MaxLiterals:   c.MaxLiterals,
		MaxLiteralLen: c.MaxLiteralLen,
		MaxClassSize:  c.MaxClassSize,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "weightvm: invalid config: " + e.Field + ": " + e.Message
}
