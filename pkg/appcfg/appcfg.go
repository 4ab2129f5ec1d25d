package appcfg

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLogDir   = "logs/"
	DefaultLogLevel = "trace"
)

type Config struct {
	LogDir               string `yaml:"log_dir"`   // directory prefix of the per-run log file
	LogLevel             string `yaml:"log_level"` // "trace"|"debug"|"info"|"warn"|"error"
	LogConsole           bool   `yaml:"log_console"`
	HideSecretsInConsole bool   `yaml:"hide_secrets_in_console"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{LogDir: DefaultLogDir, LogLevel: DefaultLogLevel}
}

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open app config %q: %w", path, err)
	}
	defer f.Close()

	var c Config
	if err := yaml.NewDecoder(f).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode app yaml %q: %w", path, err)
	}

	// defaults
	if c.LogDir == "" {
		c.LogDir = DefaultLogDir
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return &c, nil
}
