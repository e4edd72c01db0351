// Package config holds the CLI configuration loaded from .polytype.yaml,
// environment variables, and flags.
package config

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config is the merged migration configuration. Field names follow the
// .polytype.yaml keys.
type Config struct {
	// OutputDir receives generated Java files; empty means next to sources.
	OutputDir string `mapstructure:"output_dir"`
	// PackageName is the Java package declared in every output file.
	PackageName string `mapstructure:"package"`
	// Recursive extends discovery into subdirectories.
	Recursive bool `mapstructure:"recursive"`
	// IgnorePatterns are glob patterns excluded from discovery.
	IgnorePatterns []string `mapstructure:"ignore"`
	// Emitter overlays emitter option keys, e.g. generate-javadoc: true.
	Emitter map[string]any `mapstructure:"emitter"`
	// Validate gates every output through the Java grammar.
	Validate bool `mapstructure:"validate"`
	// Verbose enables development logging.
	Verbose bool `mapstructure:"verbose"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{Recursive: true}
}

// Load merges the viper state (config file, env, bound flags) over the
// defaults.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "parsing configuration")
	}
	return cfg, nil
}
