package config

import (
	"github.com/spf13/viper"

	"qgenenc/codec"
	"qgenenc/generator"
)

// File names
const (
	FileName  = "qgenenc.toml"
	EnvPrefix = "QGENENC"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("symbols.gate_separator", codec.DefaultGateSeparator)
	v.SetDefault("symbols.angle_separator", codec.DefaultAngleSeparator)

	v.SetDefault("prune.threshold", codec.DefaultPruneThreshold)

	v.SetDefault("generator.qubits", 4)
	v.SetDefault("generator.depth", 0) // one moment per qubit
	v.SetDefault("generator.connectivity", generator.AllToAll)
	v.SetDefault("generator.generators", generator.DefaultGenerators)
	v.SetDefault("generator.fix_angles", map[string]string{})
	v.SetDefault("generator.seed", 0)

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")

	v.SetDefault("export.color", true)
	v.SetDefault("export.expand_generators", true)
	v.SetDefault("export.decompose_controls", true)
}

// Default returns the configuration with only the defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var c Config
	// defaults alone always decode
	_ = v.Unmarshal(&c)
	return &c
}
