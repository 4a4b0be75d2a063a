// Package config holds the qgenenc settings: codec separators, pruning,
// random-circuit generation, logging and export. Values come from
// qgenenc.toml files and QGENENC_* environment variables on top of the
// defaults in SetDefaults.
package config

import (
	"qgenenc/angle"
	"qgenenc/codec"
	"qgenenc/errors"
	"qgenenc/generator"
)

// Config is the complete qgenenc configuration.
type Config struct {
	Symbols   SymbolsConfig   `mapstructure:"symbols" toml:"symbols" json:"symbols" yaml:"symbols"`
	Prune     PruneConfig     `mapstructure:"prune" toml:"prune" json:"prune" yaml:"prune"`
	Generator GeneratorConfig `mapstructure:"generator" toml:"generator" json:"generator" yaml:"generator"`
	Log       LogConfig       `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
	Export    ExportConfig    `mapstructure:"export" toml:"export" json:"export" yaml:"export"`
}

// SymbolsConfig are the token separators.
type SymbolsConfig struct {
	GateSeparator  string `mapstructure:"gate_separator" toml:"gate_separator" json:"gate_separator" yaml:"gate_separator"`
	AngleSeparator string `mapstructure:"angle_separator" toml:"angle_separator" json:"angle_separator" yaml:"angle_separator"`
}

type PruneConfig struct {
	Threshold float64 `mapstructure:"threshold" toml:"threshold" json:"threshold" yaml:"threshold"`
}

// GeneratorConfig drives `qgenenc random` and the inspector's random key.
type GeneratorConfig struct {
	Qubits       int               `mapstructure:"qubits" toml:"qubits" json:"qubits" yaml:"qubits"`
	Depth        int               `mapstructure:"depth" toml:"depth" json:"depth" yaml:"depth"`                             // 0 = one moment per qubit
	Connectivity string            `mapstructure:"connectivity" toml:"connectivity" json:"connectivity" yaml:"connectivity"` // all_to_all, local_line, local_ring
	Generators   []string          `mapstructure:"generators" toml:"generators" json:"generators" yaml:"generators"`
	FixAngles    map[string]string `mapstructure:"fix_angles" toml:"fix_angles" json:"fix_angles" yaml:"fix_angles"` // XY = "pi/2"
	Seed         uint64            `mapstructure:"seed" toml:"seed" json:"seed" yaml:"seed"`                         // 0 = random
}

type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Level string `mapstructure:"level" toml:"level" json:"level" yaml:"level"`
}

type ExportConfig struct {
	Color             bool `mapstructure:"color" toml:"color" json:"color" yaml:"color"`
	ExpandGenerators  bool `mapstructure:"expand_generators" toml:"expand_generators" json:"expand_generators" yaml:"expand_generators"`
	DecomposeControls bool `mapstructure:"decompose_controls" toml:"decompose_controls" json:"decompose_controls" yaml:"decompose_controls"`
}

// Codec builds a codec with the configured separators.
func (c *Config) Codec() (*codec.Codec, error) {
	return codec.New(codec.WithSymbols(codec.Symbols{
		GateSeparator:  c.Symbols.GateSeparator,
		AngleSeparator: c.Symbols.AngleSeparator,
	}))
}

// FixedAngles parses generator.fix_angles.
func (c *Config) FixedAngles() (map[string]float64, error) {
	out := make(map[string]float64, len(c.Generator.FixAngles))
	for p, text := range c.Generator.FixAngles {
		v, ok := angle.ParseExpr(text)
		if !ok {
			return nil, errors.Newf("generator.fix_angles.%s: %q is not a number", p, text)
		}
		out[p] = v
	}
	return out, nil
}

// GeneratorOptions turns the generator section into generator options.
func (c *Config) GeneratorOptions() ([]generator.Option, error) {
	fixed, err := c.FixedAngles()
	if err != nil {
		return nil, err
	}
	opts := []generator.Option{
		generator.WithDepth(c.Generator.Depth),
		generator.WithLayout(c.Generator.Connectivity),
		generator.WithFixedAngles(fixed),
	}
	if len(c.Generator.Generators) > 0 {
		opts = append(opts, generator.WithGenerators(c.Generator.Generators...))
	}
	if c.Generator.Seed != 0 {
		opts = append(opts, generator.WithSeed(c.Generator.Seed))
	}
	return opts, nil
}

// NewGenerator builds the configured random-circuit generator.
func (c *Config) NewGenerator() (*generator.Generator, error) {
	opts, err := c.GeneratorOptions()
	if err != nil {
		return nil, err
	}
	return generator.New(c.Generator.Qubits, opts...)
}
