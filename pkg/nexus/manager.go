// manager.go
package nexus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/arc-language/libyear/pkg/core"
	"github.com/arc-language/libyear/pkg/version"
)

// NewPackageManager creates a new Nexus package manager
func NewPackageManager(cfg *Config) (*PackageManager, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: nexus url is required", core.ErrNotConfigured)
	}

	// Set defaults
	if cfg.Repository == "" {
		cfg.Repository = DefaultRepository
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryMaxElapsed == 0 {
		cfg.RetryMaxElapsed = DefaultRetryMaxElapsed
	}

	// Setup logger
	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	client := NewClientWithTimeout(cfg.Timeout, cfg.RetryMaxElapsed, logger)
	if cfg.Username != "" {
		client.SetBasicAuth(cfg.Username, cfg.Password)
	}

	pm := &PackageManager{
		client: client,
		config: cfg,
		logger: logger,
	}

	if cfg.Debug {
		pm.logger.Printf("Initialized Nexus PackageManager")
		pm.logger.Printf("  URL: %s", cfg.URL)
		pm.logger.Printf("  Repository: %s", cfg.Repository)
		pm.logger.Printf("  Timeout: %s", cfg.Timeout)
	}

	return pm, nil
}

// Pages returns the search result pages for q, following continuation tokens.
//
// The sequence is lazy and restartable: every range over it starts again at
// the first page. A non-2xx answer ends the sequence without an error.
func (pm *PackageManager) Pages(ctx context.Context, q SearchQuery) iter.Seq2[*SearchResponse, error] {
	return func(yield func(*SearchResponse, error) bool) {
		token := ""
		for {
			searchURL, err := pm.searchURL(q, token)
			if err != nil {
				yield(nil, err)
				return
			}

			pm.logger.Printf("[Nexus API] GET %s", searchURL)
			page, err := pm.client.SearchAssets(ctx, searchURL)
			if err != nil {
				var statusErr *StatusError
				if errors.As(err, &statusErr) {
					pm.logger.Printf("[Nexus API] %v, treating as end of results", statusErr)
					return
				}
				yield(nil, err)
				return
			}

			if !yield(page, nil) {
				return
			}

			token = page.NextToken()
			if token == "" {
				return
			}
		}
	}
}

// ListVersions returns every version of name, or only exact when it is set.
// Assets whose PyPI name differs from name are ignored.
func (pm *PackageManager) ListVersions(ctx context.Context, name, exact string) (*core.VersionSet, error) {
	var versions []core.PackageVersion

	for page, err := range pm.Pages(ctx, SearchQuery{Name: name, Version: exact}) {
		if err != nil {
			return nil, fmt.Errorf("searching assets for %s: %w", name, err)
		}
		for _, asset := range page.Items {
			if asset.PyPI.Name != name {
				continue
			}
			if exact != "" && asset.PyPI.Version != exact {
				continue
			}

			v, err := version.Parse(asset.PyPI.Version)
			if err != nil {
				pm.logger.Printf("Skipping %s asset %s: %v", name, asset.Path, err)
				continue
			}

			versions = append(versions, core.PackageVersion{
				Name:      asset.PyPI.Name,
				Version:   v,
				Published: pm.modified(asset),
			})
		}
	}

	return core.NewVersionSet(name, versions), nil
}

// PublishTimestamp returns the last-modified time of the first asset matching
// name and ver exactly. It returns nil when no asset matches.
func (pm *PackageManager) PublishTimestamp(ctx context.Context, name, ver string) (*time.Time, error) {
	for page, err := range pm.Pages(ctx, SearchQuery{Name: name, Version: ver}) {
		if err != nil {
			return nil, fmt.Errorf("searching assets for %s==%s: %w", name, ver, err)
		}
		for _, asset := range page.Items {
			if asset.PyPI.Name != name || asset.PyPI.Version != ver {
				continue
			}
			if ts := pm.modified(asset); ts != nil {
				return ts, nil
			}
		}
	}

	pm.logger.Printf("No asset with a timestamp for %s==%s", name, ver)
	return nil, nil
}

func (pm *PackageManager) modified(asset Asset) *time.Time {
	raw := asset.Modified()
	if raw == "" {
		return nil
	}
	ts, err := ParseLastModified(raw)
	if err != nil {
		pm.logger.Printf("Ignoring timestamp of %s: %v", asset.Path, err)
		return nil
	}
	return &ts
}

func (pm *PackageManager) searchURL(q SearchQuery, token string) (string, error) {
	u, err := url.Parse(strings.TrimRight(pm.config.URL, "/") + SearchAssetsPath)
	if err != nil {
		return "", fmt.Errorf("parsing nexus url: %w", err)
	}

	params := url.Values{}
	params.Set("repository", pm.config.Repository)
	params.Set("name", q.Name)
	if q.Version != "" {
		params.Set("version", q.Version)
	}
	if token != "" {
		params.Set("continuationToken", token)
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// ParseLastModified parses a Nexus lastModified value such as
// "2023-01-31T09:12:44.123+00:00"
func ParseLastModified(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range lastModifiedLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("parsing lastModified %q: %w", s, firstErr)
}

// Repository returns the configured repository name
func (pm *PackageManager) Repository() string {
	return pm.config.Repository
}
