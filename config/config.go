// Package config loads libdiff configuration from YAML files and resolves
// runtime properties.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/libdiff/differr"
)

const opLoad = "config.Load"

// Config is the libdiff configuration file.
type Config struct {
	// ShowMitigationValues renders changed mitigation percentages in
	// relation trees. A runtime property source may override it.
	ShowMitigationValues bool `yaml:"show_mitigation_values"`

	// ListComparison is "ordered" (default) or "sorted".
	ListComparison string `yaml:"list_comparison" validate:"oneof=ordered sorted"`

	Log        LogConfig        `yaml:"log"`
	Store      StoreConfig      `yaml:"store"`
	Properties PropertiesConfig `yaml:"properties"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// StoreConfig selects where snapshots are read from.
type StoreConfig struct {
	// Kind is "file" or "redis".
	Kind string `yaml:"kind" validate:"oneof=file redis"`

	// Dir holds one <version>.yaml or <version>.json file per version.
	Dir string `yaml:"dir" validate:"required_if=Kind file"`

	Redis *RedisConfig `yaml:"redis,omitempty" validate:"required_if=Kind redis"`
}

// RedisConfig configures the Redis snapshot store.
type RedisConfig struct {
	URL    string `yaml:"url" validate:"required,url"`
	Prefix string `yaml:"prefix"`
}

// PropertiesConfig configures runtime property sources.
type PropertiesConfig struct {
	Etcd *EtcdConfig `yaml:"etcd,omitempty"`
}

// EtcdConfig configures the etcd property source.
type EtcdConfig struct {
	Endpoints   []string      `yaml:"endpoints" validate:"required,min=1,dive,required"`
	Prefix      string        `yaml:"prefix"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ListComparison: "ordered",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Store: StoreConfig{
			Kind: "file",
			Dir:  "snapshots",
		},
	}
}

var validate = validator.New()

// Load reads the YAML file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, differr.NewConfiguration(opLoad, fmt.Errorf("failed to read config file: %w", err)).
			WithContext(map[string]any{"path": path})
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, differr.NewConfiguration(opLoad, fmt.Errorf("%w: failed to parse config: %v", differr.ErrInvalidConfig, err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its field constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return differr.NewConfiguration(opLoad, fmt.Errorf("%w: %v", differr.ErrInvalidConfig, err))
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return differr.NewConfiguration(opLoad, fmt.Errorf("%w: %s", differr.ErrInvalidConfig, strings.Join(msgs, "; ")))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
