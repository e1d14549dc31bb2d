// client.go
package artifactregistry

import (
	"context"
	"fmt"

	gar "cloud.google.com/go/artifactregistry/apiv1"
	"cloud.google.com/go/artifactregistry/apiv1/artifactregistrypb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Client adapts the generated Artifact Registry client to API
type Client struct {
	api      *gar.Client
	pageSize int
}

// NewClient dials Artifact Registry using application default credentials
// unless cfg names a credentials file
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := gar.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating artifact registry client: %w", err)
	}

	return &Client{api: client, pageSize: DefaultPageSize}, nil
}

// ListVersions fetches the page of versions that starts at pageToken
func (c *Client) ListVersions(ctx context.Context, parent, pageToken string) ([]*artifactregistrypb.Version, string, error) {
	it := c.api.ListVersions(ctx, &artifactregistrypb.ListVersionsRequest{Parent: parent})

	var page []*artifactregistrypb.Version
	next, err := iterator.NewPager(it, c.pageSize, pageToken).NextPage(&page)
	if err != nil {
		return nil, "", err
	}
	return page, next, nil
}

// GetPythonPackage fetches one Python package version by resource name
func (c *Client) GetPythonPackage(ctx context.Context, name string) (*artifactregistrypb.PythonPackage, error) {
	return c.api.GetPythonPackage(ctx, &artifactregistrypb.GetPythonPackageRequest{Name: name})
}

// Close closes the gRPC connection
func (c *Client) Close() error {
	return c.api.Close()
}
