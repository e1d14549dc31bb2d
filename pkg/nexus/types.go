// types.go
package nexus

import (
	"log"
	"time"
)

// Config configures the Nexus package manager
type Config struct {
	URL             string        // Required: base URL, e.g. https://nexus.example.com
	Repository      string        // Default: pypi-hosted
	Username        string        // Optional: basic auth
	Password        string        // Optional: basic auth
	Timeout         time.Duration // Per-request timeout
	RetryMaxElapsed time.Duration // Upper bound on retrying one page
	Debug           bool          // Enable debug logging
	Logger          *log.Logger   // Custom logger (optional)
}

// PackageManager answers version and timestamp queries against one Nexus repository
type PackageManager struct {
	client *Client
	config *Config
	logger *log.Logger
}

// SearchQuery selects assets by PyPI name and optionally version
type SearchQuery struct {
	Name    string
	Version string
}

// SearchResponse is one page of /service/rest/v1/search/assets
type SearchResponse struct {
	Items             []Asset `json:"items"`
	ContinuationToken *string `json:"continuationToken"`
}

// NextToken returns the continuation token, or "" on the last page
func (r *SearchResponse) NextToken() string {
	if r == nil || r.ContinuationToken == nil {
		return ""
	}
	return *r.ContinuationToken
}

// Asset is a single file stored in the repository (wheel, sdist, ...)
type Asset struct {
	ID           string       `json:"id"`
	Path         string       `json:"path"`
	DownloadURL  string       `json:"downloadUrl"`
	Repository   string       `json:"repository"`
	Format       string       `json:"format"`
	LastModified string       `json:"lastModified"`
	PyPI         PyPIMetadata `json:"pypi"`
}

// PyPIMetadata is the format-specific block of a PyPI asset
type PyPIMetadata struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	LastModified string `json:"lastModified"`
}

// Modified returns the asset's last-modified string, preferring the asset-level field
func (a Asset) Modified() string {
	if a.LastModified != "" {
		return a.LastModified
	}
	return a.PyPI.LastModified
}
