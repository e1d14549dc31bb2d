// pkg/backend/nexus.go
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/arc-language/libyear/pkg/core"
	"github.com/arc-language/libyear/pkg/nexus"
)

// NexusBackend implements the Backend interface for Nexus
type NexusBackend struct {
	manager *nexus.PackageManager
	config  *Config
}

// NewNexusBackend creates a new Nexus backend
func NewNexusBackend(config *Config) (*NexusBackend, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Nexus == nil {
		return nil, fmt.Errorf("%w: missing nexus section", core.ErrNotConfigured)
	}

	manager, err := nexus.NewPackageManager(&nexus.Config{
		URL:             config.Nexus.URL,
		Repository:      config.Nexus.Repository,
		Username:        config.Nexus.Username,
		Password:        config.Nexus.Password,
		Timeout:         config.Timeout,
		RetryMaxElapsed: config.RetryMaxElapsed,
		Debug:           config.Debug,
		Logger:          config.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &NexusBackend{
		manager: manager,
		config:  config,
	}, nil
}

// ListVersions lists versions from the Nexus search API
func (b *NexusBackend) ListVersions(ctx context.Context, name, exact string) (*core.VersionSet, error) {
	return b.manager.ListVersions(ctx, name, exact)
}

// PublishTimestamp returns the asset's last-modified time
func (b *NexusBackend) PublishTimestamp(ctx context.Context, name, version string) (*time.Time, error) {
	return b.manager.PublishTimestamp(ctx, name, version)
}

// Name returns the backend name
func (b *NexusBackend) Name() string {
	return string(BackendNexus)
}

// Close cleans up resources
func (b *NexusBackend) Close() error {
	return nil
}
