package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ModelConfig describes one configured model endpoint. CallName is the
// routing key clients use to pick a model; Name is the model identifier sent
// to the API.
type ModelConfig struct {
	CallName string `yaml:"call_name"`
	Name     string `yaml:"name"`
	APIBase  string `yaml:"api_base"`
	APIKey   string `yaml:"api_key"`
	Label    string `yaml:"label"`

	// Capability flags
	Vision bool `yaml:"vision"`
	Audio  bool `yaml:"audio"`
}

// Config is the model registry loaded from YAML.
type Config struct {
	Models []ModelConfig `yaml:"models"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads a YAML model registry from path. Environment references of the
// form ${VAR} are expanded before parsing; unset variables are left verbatim
// so validation can point at them. A .env file in the working directory is
// loaded first when present, so registry files can reference keys kept out
// of version control.
func Load(path string) (*Config, error) {
	// Best effort: absence of a .env file is the normal case.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse parses a YAML model registry from raw bytes, expanding ${VAR}
// references against the current environment.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultCallName returns the call name of the first configured model, which
// serves as the default route.
func (cfg *Config) DefaultCallName() string {
	if len(cfg.Models) == 0 {
		return ""
	}
	return cfg.Models[0].CallName
}

// Model looks up a model by call name.
func (cfg *Config) Model(callName string) (ModelConfig, bool) {
	for _, model := range cfg.Models {
		if model.CallName == callName {
			return model, true
		}
	}
	return ModelConfig{}, false
}

func applyDefaults(cfg *Config) {
	for i := range cfg.Models {
		if cfg.Models[i].Label == "" {
			cfg.Models[i].Label = cfg.Models[i].Name
		}
	}
}

func (cfg *Config) validate() error {
	if len(cfg.Models) == 0 {
		return fmt.Errorf("config has no models")
	}

	seen := make(map[string]bool, len(cfg.Models))
	for i, model := range cfg.Models {
		if model.CallName == "" {
			return fmt.Errorf("model %d: call_name is empty", i)
		}
		if seen[model.CallName] {
			return fmt.Errorf("duplicate call_name %q", model.CallName)
		}
		seen[model.CallName] = true

		if model.Name == "" {
			return fmt.Errorf("model %q: name is empty", model.CallName)
		}
		if model.APIBase == "" {
			return fmt.Errorf("model %q: api_base is empty", model.CallName)
		}
	}
	return nil
}

func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match
	})
}
