// Package config provides configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the skel CLI configuration.
// Loaded from ~/.skel/config.yaml, merged with SKEL_* environment
// variables.
type Config struct {
	// TemplateDirs are extra directories searched for template sets, in
	// order, before the embedded sets.
	// Env: SKEL_TEMPLATE_DIRS (colon-separated)
	TemplateDirs []string `json:"templateDirs,omitempty" mapstructure:"templateDirs"`

	// DefaultSet is the template set used when `skel generate` is run
	// without a set name.
	// Env: SKEL_DEFAULT_SET
	DefaultSet string `json:"defaultSet,omitempty" mapstructure:"defaultSet"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		DefaultSet: "component",
	}
}

// WithDefaults fills unset fields with their default values.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.DefaultSet == "" {
		out.DefaultSet = "component"
	}
	return &out
}
