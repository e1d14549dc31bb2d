// manager.go
package artifactregistry

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/artifactregistry/apiv1/artifactregistrypb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/arc-language/libyear/pkg/core"
	"github.com/arc-language/libyear/pkg/version"
)

// NewPackageManager creates a package manager backed by the Artifact Registry API
func NewPackageManager(ctx context.Context, cfg *Config) (*PackageManager, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Project == "" {
		return nil, fmt.Errorf("%w: artifact registry project is required", core.ErrNotConfigured)
	}

	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewPackageManagerWithAPI(client, cfg)
}

// NewPackageManagerWithAPI creates a package manager on top of an existing API
func NewPackageManagerWithAPI(api API, cfg *Config) (*PackageManager, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Project == "" {
		return nil, fmt.Errorf("%w: artifact registry project is required", core.ErrNotConfigured)
	}

	// Set defaults
	if cfg.Location == "" {
		cfg.Location = DefaultLocation
	}
	if cfg.Repository == "" {
		cfg.Repository = DefaultRepository
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

	pm := &PackageManager{
		api:    api,
		config: cfg,
		logger: logger,
	}

	if cfg.Debug {
		pm.logger.Printf("Initialized Artifact Registry PackageManager")
		pm.logger.Printf("  Repository: %s", pm.repositoryPath())
	}

	return pm, nil
}

func (pm *PackageManager) repositoryPath() string {
	return fmt.Sprintf("projects/%s/locations/%s/repositories/%s",
		pm.config.Project, pm.config.Location, pm.config.Repository)
}

// PackagePath returns the resource name that versions of name are listed under
func (pm *PackageManager) PackagePath(name string) string {
	return fmt.Sprintf("%s/packages/%s", pm.repositoryPath(), name)
}

// PythonPackagePath returns the resource name of one Python package version
func (pm *PackageManager) PythonPackagePath(name, ver string) string {
	return fmt.Sprintf("%s/pythonPackages/%s:%s", pm.repositoryPath(), name, ver)
}

// Pages returns the version pages listed under parent.
// Each range over the sequence starts from the first page.
func (pm *PackageManager) Pages(ctx context.Context, parent string) iter.Seq2[[]*artifactregistrypb.Version, error] {
	return func(yield func([]*artifactregistrypb.Version, error) bool) {
		token := ""
		for {
			pm.logger.Printf("[Artifact Registry] ListVersions %s token=%q", parent, token)
			page, next, err := pm.api.ListVersions(ctx, parent, token)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(page, nil) {
				return
			}
			if next == "" {
				return
			}
			token = next
		}
	}
}

// ListVersions returns every version of name, or only exact when it is set.
// A package the repository does not know yields an empty set.
func (pm *PackageManager) ListVersions(ctx context.Context, name, exact string) (*core.VersionSet, error) {
	var versions []core.PackageVersion

	for page, err := range pm.Pages(ctx, pm.PackagePath(name)) {
		if err != nil {
			if status.Code(err) == codes.NotFound {
				pm.logger.Printf("Package %s not found in %s", name, pm.repositoryPath())
				break
			}
			return nil, fmt.Errorf("listing versions of %s: %w: %w", name, core.ErrBackendUnavailable, err)
		}

		for _, item := range page {
			pkg, raw, ok := splitVersionName(item.GetName())
			if !ok || pkg != name {
				continue
			}
			if exact != "" && raw != exact {
				continue
			}

			v, err := version.Parse(raw)
			if err != nil {
				pm.logger.Printf("Skipping %s: %v", item.GetName(), err)
				continue
			}

			versions = append(versions, core.PackageVersion{
				Name:      pkg,
				Version:   v,
				Published: timestamp(item.GetUpdateTime()),
			})
		}
	}

	return core.NewVersionSet(name, versions), nil
}

// PublishTimestamp returns the update time of name==ver, or nil if the
// repository does not hold that version
func (pm *PackageManager) PublishTimestamp(ctx context.Context, name, ver string) (*time.Time, error) {
	resource := pm.PythonPackagePath(name, ver)
	pm.logger.Printf("[Artifact Registry] GetPythonPackage %s", resource)

	pkg, err := pm.api.GetPythonPackage(ctx, resource)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("getting %s: %w: %w", resource, core.ErrBackendUnavailable, err)
	}

	return timestamp(pkg.GetUpdateTime()), nil
}

// Close releases the API connection
func (pm *PackageManager) Close() error {
	return pm.api.Close()
}

// splitVersionName extracts the package and version IDs from
// projects/p/locations/l/repositories/r/packages/{pkg}/versions/{ver}
func splitVersionName(resource string) (pkg, ver string, ok bool) {
	parts := strings.Split(resource, "/")
	for i := 0; i+3 < len(parts); i++ {
		if parts[i] == "packages" && parts[i+2] == "versions" {
			pkg, err := url.PathUnescape(parts[i+1])
			if err != nil {
				return "", "", false
			}
			ver, err := url.PathUnescape(parts[i+3])
			if err != nil {
				return "", "", false
			}
			return pkg, ver, true
		}
	}
	return "", "", false
}

func timestamp(ts *timestamppb.Timestamp) *time.Time {
	if !ts.IsValid() {
		return nil
	}
	t := ts.AsTime()
	return &t
}
