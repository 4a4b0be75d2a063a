package config

import (
	"slices"
	"strings"

	"go.uber.org/zap/zapcore"

	"qgenenc/errors"
	"qgenenc/generator"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := c.Codec(); err != nil {
		return errors.Wrap(err, "symbols")
	}

	if c.Prune.Threshold < 0 {
		return errors.Newf("prune.threshold must be >= 0, got %g", c.Prune.Threshold)
	}

	if c.Generator.Qubits < 0 {
		return errors.Newf("generator.qubits must be >= 0, got %d", c.Generator.Qubits)
	}
	if c.Generator.Depth < 0 {
		return errors.Newf("generator.depth must be >= 0, got %d", c.Generator.Depth)
	}
	if !slices.Contains(generator.Layouts, strings.ToLower(c.Generator.Connectivity)) {
		return errors.WithHintf(
			errors.Newf("generator.connectivity: unknown layout %q", c.Generator.Connectivity),
			"known layouts: %s", strings.Join(generator.Layouts, ", "),
		)
	}
	for _, p := range c.Generator.Generators {
		if _, err := generator.NormalizeGenerator(p); err != nil {
			return errors.Wrap(err, "generator.generators")
		}
	}
	if _, err := c.FixedAngles(); err != nil {
		return err
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Newf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}
