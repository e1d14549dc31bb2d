// constants.go
package artifactregistry

const (
	// DefaultLocation is the Artifact Registry region
	DefaultLocation = "us-central1"

	// DefaultRepository is the Python repository name
	DefaultRepository = "python"

	// DefaultPageSize is requested for every ListVersions page
	DefaultPageSize = 500
)
