// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultNexusRepository is the hosted PyPI repository name Nexus ships with
	DefaultNexusRepository = "pypi-hosted"

	// DefaultArtifactRegistryLocation is the Artifact Registry region used when none is set
	DefaultArtifactRegistryLocation = "us-central1"

	// DefaultArtifactRegistryRepository is the Python repository name used when none is set
	DefaultArtifactRegistryRepository = "python"

	// DefaultTimeout bounds a single CLI command
	DefaultTimeout = 2 * time.Minute

	// DefaultConcurrency is the number of packages a report evaluates at once
	DefaultConcurrency = 4
)

// Config holds libyear configuration
type Config struct {
	Backend          string                 `yaml:"backend"`
	Debug            bool                   `yaml:"debug"`
	Output           string                 `yaml:"output"`
	Timeout          time.Duration          `yaml:"timeout"`
	Concurrency      int                    `yaml:"concurrency"`
	Nexus            NexusConfig            `yaml:"nexus"`
	ArtifactRegistry ArtifactRegistryConfig `yaml:"artifact_registry"`
}

// NexusConfig addresses a Nexus PyPI repository
type NexusConfig struct {
	URL        string `yaml:"url"`
	Repository string `yaml:"repository"`
	Username   string `yaml:"username,omitempty"`
	Password   string `yaml:"password,omitempty"`
}

// ArtifactRegistryConfig addresses a Google Artifact Registry Python repository
type ArtifactRegistryConfig struct {
	Project         string `yaml:"project"`
	Location        string `yaml:"location"`
	Repository      string `yaml:"repository"`
	CredentialsFile string `yaml:"credentials_file,omitempty"`
	Endpoint        string `yaml:"endpoint,omitempty"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend:     "", // Auto-detect
		Output:      "table",
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		Nexus: NexusConfig{
			Repository: DefaultNexusRepository,
		},
		ArtifactRegistry: ArtifactRegistryConfig{
			Location:   DefaultArtifactRegistryLocation,
			Repository: DefaultArtifactRegistryRepository,
		},
	}
}

// DefaultConfigPath returns $HOME/.config/libyear/config.yaml
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "libyear", "config.yaml")
}

// LoadConfig loads configuration from file.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
		if path == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
		if path == "" {
			return fmt.Errorf("no config path: home directory unknown")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// may hold a Nexus password
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
