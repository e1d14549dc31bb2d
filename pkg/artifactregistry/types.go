// types.go
package artifactregistry

import (
	"context"
	"log"

	"cloud.google.com/go/artifactregistry/apiv1/artifactregistrypb"
)

// Config configures the Artifact Registry package manager
type Config struct {
	Project         string      // Required: Google Cloud project ID
	Location        string      // Default: us-central1
	Repository      string      // Default: python
	CredentialsFile string      // Optional: service account key, otherwise ADC
	Endpoint        string      // Optional: API endpoint override
	Debug           bool        // Enable debug logging
	Logger          *log.Logger // Custom logger (optional)
}

// API is the subset of the Artifact Registry service used here
type API interface {
	// ListVersions returns one page of versions below parent and the next page token
	ListVersions(ctx context.Context, parent, pageToken string) ([]*artifactregistrypb.Version, string, error)

	// GetPythonPackage fetches a single Python package version
	GetPythonPackage(ctx context.Context, name string) (*artifactregistrypb.PythonPackage, error)

	// Close releases the underlying connection
	Close() error
}

// PackageManager answers version and timestamp queries against one Python repository
type PackageManager struct {
	api    API
	config *Config
	logger *log.Logger
}
