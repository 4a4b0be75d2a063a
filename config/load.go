package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"qgenenc/errors"
	"qgenenc/logger"
)

// Load reads the configuration. With a path, only that file is read;
// otherwise the user file (~/.config/qgenenc/qgenenc.toml) and then the
// nearest qgenenc.toml at or above the working directory are merged.
// QGENENC_* environment variables override both, e.g.
// QGENENC_SYMBOLS_GATE_SEPARATOR.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		if err := mergeFile(v, path); err != nil {
			return nil, err
		}
	} else {
		for _, p := range searchPaths() {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := mergeFile(v, p); err != nil {
				return nil, err
			}
		}
	}
	return unmarshal(v)
}

// LoadFromFile reads one TOML file over the defaults, without environment
// overrides.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	if err := mergeFile(v, path); err != nil {
		return nil, err
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

func mergeFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.MergeInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	logger.Named("config").Debugw("merged config file", logger.FieldFile, path)
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// searchPaths lists the config files Load merges, lowest precedence first.
func searchPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "qgenenc", FileName))
	}
	if p := findProjectConfig(); p != "" {
		paths = append(paths, p)
	}
	return paths
}

// findProjectConfig walks up from the working directory to the first
// qgenenc.toml.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		p := filepath.Join(dir, FileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// WriteDefault writes the default configuration to path as TOML. An
// existing file is left alone unless overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.Newf("%s already exists", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(Default()); err != nil {
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return nil
}
