// pkg/backend/artifactregistry.go
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/arc-language/libyear/pkg/artifactregistry"
	"github.com/arc-language/libyear/pkg/core"
)

// ArtifactRegistryBackend implements the Backend interface for Google Artifact Registry
type ArtifactRegistryBackend struct {
	manager *artifactregistry.PackageManager
	config  *Config
}

// NewArtifactRegistryBackend dials Artifact Registry and creates a backend
func NewArtifactRegistryBackend(ctx context.Context, config *Config) (*ArtifactRegistryBackend, error) {
	arConfig, err := artifactRegistryConfig(config)
	if err != nil {
		return nil, err
	}

	manager, err := artifactregistry.NewPackageManager(ctx, arConfig)
	if err != nil {
		return nil, err
	}

	return &ArtifactRegistryBackend{manager: manager, config: config}, nil
}

// NewArtifactRegistryBackendWithAPI creates a backend over an existing API client
func NewArtifactRegistryBackendWithAPI(api artifactregistry.API, config *Config) (*ArtifactRegistryBackend, error) {
	arConfig, err := artifactRegistryConfig(config)
	if err != nil {
		return nil, err
	}

	manager, err := artifactregistry.NewPackageManagerWithAPI(api, arConfig)
	if err != nil {
		return nil, err
	}

	return &ArtifactRegistryBackend{manager: manager, config: config}, nil
}

func artifactRegistryConfig(config *Config) (*artifactregistry.Config, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.ArtifactRegistry == nil {
		return nil, fmt.Errorf("%w: missing artifact registry section", core.ErrNotConfigured)
	}

	return &artifactregistry.Config{
		Project:         config.ArtifactRegistry.Project,
		Location:        config.ArtifactRegistry.Location,
		Repository:      config.ArtifactRegistry.Repository,
		CredentialsFile: config.ArtifactRegistry.CredentialsFile,
		Endpoint:        config.ArtifactRegistry.Endpoint,
		Debug:           config.Debug,
		Logger:          config.Logger,
	}, nil
}

// ListVersions lists versions under the package resource
func (b *ArtifactRegistryBackend) ListVersions(ctx context.Context, name, exact string) (*core.VersionSet, error) {
	return b.manager.ListVersions(ctx, name, exact)
}

// PublishTimestamp returns the Python package's update time
func (b *ArtifactRegistryBackend) PublishTimestamp(ctx context.Context, name, version string) (*time.Time, error) {
	return b.manager.PublishTimestamp(ctx, name, version)
}

// Name returns the backend name
func (b *ArtifactRegistryBackend) Name() string {
	return string(BackendArtifactRegistry)
}

// Close closes the API connection
func (b *ArtifactRegistryBackend) Close() error {
	return b.manager.Close()
}
