// Package config loads console configuration from the process
// environment and an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the config file nor the environment
// overrides them.
const (
	DefaultRegion       = "us-east-1"
	DefaultImageID      = "ami-0c02fb55956c7d316"
	DefaultInstanceType = "t2.micro"
	DefaultEnvironment  = "Production"
	DefaultDepartment   = "Finance"
)

// Config holds everything the console needs: the credential pair, the
// target region, and the fixed launch and tag defaults.
type Config struct {
	AccessKeyID     string `yaml:"-"`
	SecretAccessKey string `yaml:"-"`

	Region string       `yaml:"region"`
	Launch LaunchConfig `yaml:"launch"`
	Tags   TagDefaults  `yaml:"tags"`
}

// LaunchConfig holds the fixed parameters used when creating an instance.
type LaunchConfig struct {
	ImageID      string `yaml:"image_id"`
	InstanceType string `yaml:"instance_type"`
}

// TagDefaults holds the values the tag action writes to the Environment
// and Department tags.
type TagDefaults struct {
	Environment string `yaml:"environment"`
	Department  string `yaml:"department"`
}

// Load builds the configuration from the environment plus an optional
// YAML file. AWS_REGION overrides the file's region. Both credential
// variables are required; a missing one aborts startup.
func Load(path string) (*Config, error) {
	// Load .env if present; does not override existing env vars
	_ = godotenv.Load()

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.Region = region
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Launch.ImageID == "" {
		cfg.Launch.ImageID = DefaultImageID
	}
	if cfg.Launch.InstanceType == "" {
		cfg.Launch.InstanceType = DefaultInstanceType
	}
	if cfg.Tags.Environment == "" {
		cfg.Tags.Environment = DefaultEnvironment
	}
	if cfg.Tags.Department == "" {
		cfg.Tags.Department = DefaultDepartment
	}
}

// Validate ensures the required credential pair is present.
func (c *Config) Validate() error {
	if c.AccessKeyID == "" {
		return fmt.Errorf("AWS_ACCESS_KEY_ID is required")
	}
	if c.SecretAccessKey == "" {
		return fmt.Errorf("AWS_SECRET_ACCESS_KEY is required")
	}
	return nil
}
