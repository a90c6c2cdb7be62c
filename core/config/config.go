package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Model         string         `mapstructure:"model"`
	Recommended   []string       `mapstructure:"recommended"`
	SaveSelection bool           `mapstructure:"save_selection"`
	Provider      ProviderConfig `mapstructure:"provider"`
	Log           LogConfig      `mapstructure:"log"`

	// path of the file the values came from, empty when only defaults/env were used
	path string
}

// ProviderConfig holds model discovery settings.
type ProviderConfig struct {
	Driver          string        `mapstructure:"driver"`
	Profile         string        `mapstructure:"profile"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	Models          []string      `mapstructure:"models"`
	GroupLabel      string        `mapstructure:"group_label"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Path returns the config file the values were read from
func (c Config) Path() string {
	return c.path
}

// DefaultPath returns ~/.config/modelpicker/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".config", "modelpicker", "config.yaml")
}

// Load reads configuration from file and env. Env var overrides use prefix MODELPICKER_.
//
// path wins over MODELPICKER_CONFIG which wins over the default location. Only an
// explicitly named file has to exist.
func Load(path string) (Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()

	// default values
	v.SetDefault("model", "o4-mini")
	v.SetDefault("recommended", []string{"o4-mini", "o3"})
	v.SetDefault("save_selection", false)
	v.SetDefault("provider.driver", "openai")
	v.SetDefault("provider.profile", "default")
	v.SetDefault("provider.credentials_file", filepath.Join(home, ".config", "modelpicker", "credentials"))
	v.SetDefault("provider.models", []string{})
	v.SetDefault("provider.group_label", "OpenAI")
	v.SetDefault("provider.timeout", 15*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigType("yaml")

	explicit := path != ""
	if !explicit {
		if envPath := os.Getenv("MODELPICKER_CONFIG"); envPath != "" {
			path = envPath
			explicit = true
		}
	}
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MODELPICKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.path = v.ConfigFileUsed()

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the values viper cannot check for us
func (c Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("invalid config: model must not be empty")
	}
	if c.Provider.Timeout < 0 {
		return fmt.Errorf("invalid config: provider.timeout must not be negative")
	}
	return nil
}

// SaveModel writes model into the config file at path, keeping every other key
// already in it. The config directory is created if needed.
func SaveModel(path, model string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	v.Set("model", model)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
