package checker

import "time"

const (
	defaultCompiler      = "javac"
	defaultTimeout       = 30 * time.Second
	defaultMaxConcurrent = 4
)

// Config holds compiler invocation parameters.
type Config struct {
	// Compiler is the compiler binary name or path, resolved via PATH lookup
	// when not absolute.
	Compiler string `json:"compiler" mapstructure:"compiler"`
	// Timeout bounds a single compiler invocation. On expiry the subprocess
	// is killed and the check reports ErrCompileTimeout.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
	// MaxConcurrent bounds compiler subprocesses running at once across all
	// sessions.
	MaxConcurrent int64 `json:"max_concurrent" mapstructure:"max_concurrent"`
}

// DefaultConfig returns the default checker configuration.
func DefaultConfig() Config {
	return Config{
		Compiler:      defaultCompiler,
		Timeout:       defaultTimeout,
		MaxConcurrent: defaultMaxConcurrent,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Compiler != "" {
		c.Compiler = source.Compiler
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
	if source.MaxConcurrent > 0 {
		c.MaxConcurrent = source.MaxConcurrent
	}
}
