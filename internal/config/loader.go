package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"voicevoxcore/internal/common/fsutil"
)

// EnvLibrary names the environment variable that supplies a default library
// path.
const EnvLibrary = "VOICEVOX_CORE_LIB"

// Env holds the environment variables that fill fields left unset by the
// config file and flags.
type Env struct {
	Library  string `env:"VOICEVOX_CORE_LIB"`
	RootDir  string `env:"VOICEVOX_ROOT_DIR"`
	Addr     string `env:"VOICEVOX_ADDR"`
	LogLevel string `env:"VOICEVOX_LOG_LEVEL"`
}

// DefaultAddr is the diagnostics server's listen address when none is set.
const DefaultAddr = "127.0.0.1:50021"

// Config holds runtime parameters for the binding and its tools.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Library     string   `json:"library" yaml:"library" toml:"library"`
	RootDir     string   `json:"root_dir" yaml:"root_dir" toml:"root_dir"`
	UseGPU      bool     `json:"use_gpu" yaml:"use_gpu" toml:"use_gpu"`
	Addr        string   `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel    string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFile     string   `json:"log_file" yaml:"log_file" toml:"log_file"`
	LogFormat   string   `json:"log_format" yaml:"log_format" toml:"log_format"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyDefaults fills unspecified fields from the environment, then from
// built-in defaults, and expands '~' in paths.
func (c *Config) ApplyDefaults() error {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	for _, f := range []struct {
		dst    *string
		v, def string
	}{
		{&c.Library, e.Library, ""},
		{&c.RootDir, e.RootDir, ""},
		{&c.Addr, e.Addr, DefaultAddr},
		{&c.LogLevel, e.LogLevel, "info"},
	} {
		if *f.dst == "" {
			*f.dst = f.v
		}
		if *f.dst == "" {
			*f.dst = f.def
		}
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
	for _, p := range []*string{&c.Library, &c.RootDir, &c.LogFile} {
		v, err := fsutil.ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = v
	}
	return nil
}

// Validate reports configuration that cannot work.
func (c Config) Validate() error {
	var errs []error
	if c.Library == "" {
		errs = append(errs, fmt.Errorf("library: not set (use --lib, the config file or %s)", EnvLibrary))
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format: unknown format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
