// pkg/backend/types.go
package backend

import (
	"context"
	"log"
	"time"

	"github.com/arc-language/libyear/pkg/core"
)

// BackendType represents the package registry backend
type BackendType string

const (
	// BackendNexus queries a Sonatype Nexus PyPI repository
	BackendNexus BackendType = "nexus"
	// BackendArtifactRegistry queries a Google Artifact Registry Python repository
	BackendArtifactRegistry BackendType = "artifactregistry"
	// BackendAuto picks whichever backend is configured
	BackendAuto BackendType = "auto"
)

// Types lists the concrete backends
func Types() []BackendType {
	return []BackendType{BackendNexus, BackendArtifactRegistry}
}

// Backend defines the interface that all registry backends must implement
type Backend interface {
	// ListVersions returns every version of name ascending, or only the
	// version spelled exactly like exact when it is non-empty
	ListVersions(ctx context.Context, name, exact string) (*core.VersionSet, error)

	// PublishTimestamp returns when name==version was published, or nil
	// when the registry has no such version
	PublishTimestamp(ctx context.Context, name, version string) (*time.Time, error)

	// Name returns the name of the backend
	Name() string

	// Close cleans up resources
	Close() error
}

// Config holds configuration for every backend
type Config struct {
	// Timeout for a single registry request
	Timeout time.Duration

	// RetryMaxElapsed bounds retries of a request that failed in transit
	RetryMaxElapsed time.Duration

	// Debug enables debug logging
	Debug bool

	// Logger for custom logging
	Logger *log.Logger

	// Nexus-specific configuration
	Nexus *NexusConfig

	// Artifact Registry-specific configuration
	ArtifactRegistry *ArtifactRegistryConfig
}

// NexusConfig holds Nexus-specific configuration
type NexusConfig struct {
	URL        string // Required
	Repository string // Default: pypi-hosted
	Username   string
	Password   string
}

// ArtifactRegistryConfig holds Artifact Registry-specific configuration
type ArtifactRegistryConfig struct {
	Project         string // Required
	Location        string // Default: us-central1
	Repository      string // Default: python
	CredentialsFile string
	Endpoint        string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Timeout:         30 * time.Second,
		RetryMaxElapsed: 30 * time.Second,
		Nexus: &NexusConfig{
			Repository: core.DefaultNexusRepository,
		},
		ArtifactRegistry: &ArtifactRegistryConfig{
			Location:   core.DefaultArtifactRegistryLocation,
			Repository: core.DefaultArtifactRegistryRepository,
		},
	}
}

// FromCoreConfig converts the file/environment configuration into a backend configuration
func FromCoreConfig(cfg *core.Config, logger *log.Logger) *Config {
	out := DefaultConfig()
	if cfg == nil {
		return out
	}

	out.Debug = cfg.Debug
	out.Logger = logger
	out.Nexus = &NexusConfig{
		URL:        cfg.Nexus.URL,
		Repository: cfg.Nexus.Repository,
		Username:   cfg.Nexus.Username,
		Password:   cfg.Nexus.Password,
	}
	out.ArtifactRegistry = &ArtifactRegistryConfig{
		Project:         cfg.ArtifactRegistry.Project,
		Location:        cfg.ArtifactRegistry.Location,
		Repository:      cfg.ArtifactRegistry.Repository,
		CredentialsFile: cfg.ArtifactRegistry.CredentialsFile,
		Endpoint:        cfg.ArtifactRegistry.Endpoint,
	}
	return out
}

// Detect returns the configured backend, preferring Nexus when both are set
func Detect(config *Config) (BackendType, bool) {
	if config == nil {
		return "", false
	}
	if config.Nexus != nil && config.Nexus.URL != "" {
		return BackendNexus, true
	}
	if config.ArtifactRegistry != nil && config.ArtifactRegistry.Project != "" {
		return BackendArtifactRegistry, true
	}
	return "", false
}
