package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qgenenc/codec"
	"qgenenc/generator"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "|", c.Symbols.GateSeparator)
	assert.Equal(t, "@", c.Symbols.AngleSeparator)
	assert.Equal(t, codec.DefaultPruneThreshold, c.Prune.Threshold)
	assert.Equal(t, generator.AllToAll, c.Generator.Connectivity)
	assert.Equal(t, generator.DefaultGenerators, c.Generator.Generators)
	assert.Equal(t, "info", c.Log.Level)
	assert.True(t, c.Export.Color)

	cd, err := c.Codec()
	require.NoError(t, err)
	assert.Equal(t, codec.DefaultSymbols(), cd.Symbols())
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeFile(t, `
[symbols]
gate_separator = ";"
angle_separator = ":"

[generator]
qubits = 6
connectivity = "local_ring"
generators = ["x", "zz"]
seed = 12

[generator.fix_angles]
ZZ = "pi/2"
`)
	c, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, ";", c.Symbols.GateSeparator)
	assert.Equal(t, 6, c.Generator.Qubits)
	assert.Equal(t, uint64(12), c.Generator.Seed)
	// untouched sections keep their defaults
	assert.Equal(t, codec.DefaultPruneThreshold, c.Prune.Threshold)

	fixed, err := c.FixedAngles()
	require.NoError(t, err)
	require.Len(t, fixed, 1)
	for k, v := range fixed {
		assert.Equal(t, "zz", k, "viper lower-cases keys")
		assert.InDelta(t, math.Pi/2, v, 1e-12)
	}

	g, err := c.NewGenerator()
	require.NoError(t, err)
	assert.Equal(t, 6, g.NumQubits())
	assert.Equal(t, []string{"X", "ZZ"}, g.Generators())
	assert.Equal(t, map[string]float64{"ZZ": math.Pi / 2}, g.FixedAngles())
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"separator":   "[symbols]\ngate_separator = \"X\"\n",
		"overlap":     "[symbols]\ngate_separator = \"@\"\n",
		"threshold":   "[prune]\nthreshold = -1.0\n",
		"layout":      "[generator]\nconnectivity = \"star\"\n",
		"generator":   "[generator]\ngenerators = [\"XQ\"]\n",
		"fixed angle": "[generator.fix_angles]\nX = \"half\"\n",
		"log level":   "[log]\nlevel = \"loud\"\n",
		"broken toml": "[symbols\n",
		"depth":       "[generator]\ndepth = -2\n",
	} {
		_, err := LoadFromFile(writeFile(t, body))
		assert.Error(t, err, name)
	}

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("QGENENC_PRUNE_THRESHOLD", "0.01")
	t.Setenv("QGENENC_LOG_LEVEL", "debug")
	path := writeFile(t, "[prune]\nthreshold = 0.5\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.01, c.Prune.Threshold)
	assert.Equal(t, "debug", c.Log.Level)

	// LoadFromFile ignores the environment
	c, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, c.Prune.Threshold)
}

func TestLoadFindsProjectConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("[generator]\nqubits = 9\n"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, c.Generator.Qubits)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false))
	require.NoError(t, WriteDefault(path, true))

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	want := Default()
	assert.Empty(t, c.Generator.FixAngles)
	want.Generator.FixAngles, c.Generator.FixAngles = nil, nil
	assert.Equal(t, want, c)
}
