package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/productfactory/core/metrics"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore: PF_SERVER__ADDRESS=:9000.
const EnvPrefix = "PF_"

type Config struct {
	Server  ServerConfig   `json:"server"`
	Logging LoggingConfig  `json:"logging"`
	Metrics metrics.Config `json:"metrics"`
	Catalog CatalogConfig  `json:"catalog"`
	Sentry  SentryConfig   `json:"sentry"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults fills unset values of every section.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks struct tags first and then each section's own rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return c.Catalog.Validate()
}

// Load reads the YAML or JSON file at path, applies PF_ environment
// overrides, defaults and validation. An empty path loads defaults and
// environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envValue maps PF_CATALOG__DISABLED_TYPES=book,clothing to
// catalog.disabled_types = [book clothing].
func envValue(key, value string) (string, any) {
	key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return key, parts
	}
	return key, value
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
