package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration, stored in ~/.time-checker/config.yaml.
// Environment variables override file values.
type Config struct {
	// DataFile is the JSON document holding the whole log. A leading ~ is
	// expanded to the home directory.
	DataFile string    `yaml:"data_file" env:"TIME_CHECKER_DATA_FILE"`
	Log      LogConfig `yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"TIME_CHECKER_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"TIME_CHECKER_LOG_FORMAT" env-default:"text"`
}

// ErrConfig marks every error returned by Load.
var ErrConfig = errors.New("config")

const (
	dirName        = ".time-checker"
	configFileName = "config.yaml"
	dataFileName   = "data.json"
)

// configTemplate is the annotated config written on first run.
const configTemplate = `# time-checker configuration
#
# All settings are optional. Environment variables override the values
# below: TIME_CHECKER_DATA_FILE, TIME_CHECKER_LOG_LEVEL, TIME_CHECKER_LOG_FORMAT.

# Where the time log is stored. "~" expands to your home directory.
data_file: ~/.time-checker/data.json

log:
  # debug, info, warn or error
  level: warn
  # text or json; log output always goes to stderr
  format: text
`

// Dir returns ~/.time-checker.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath returns ~/.time-checker/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the configuration. An empty path means the default location,
// which is created with an annotated template on first run. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrConfig, path, err)
		}
	} else if explicit || !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: file %s: %w", ErrConfig, path, err)
	} else {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%w: read env: %w", ErrConfig, err)
		}
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: validate: %w", ErrConfig, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.DataFile == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		c.DataFile = filepath.Join(dir, dataFileName)
	}
	expanded, err := expandHome(c.DataFile)
	if err != nil {
		return err
	}
	c.DataFile = expanded
	return nil
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("config: marshal: %w", err)
	}
	return string(out), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
