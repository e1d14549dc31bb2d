// constants.go
package nexus

import "time"

const (
	// DefaultRepository is the hosted PyPI repository created by a fresh Nexus install
	DefaultRepository = "pypi-hosted"

	// SearchAssetsPath is the Nexus REST endpoint for asset search
	SearchAssetsPath = "/service/rest/v1/search/assets"

	// DefaultTimeout is the per-request HTTP timeout
	DefaultTimeout = 30 * time.Second

	// DefaultRetryMaxElapsed bounds retries of a single page request
	DefaultRetryMaxElapsed = 30 * time.Second

	userAgent = "libyear-nexus/1.0"
)

// lastModifiedLayouts are tried in order. Nexus emits milliseconds and a
// colon offset ("2023-01-31T09:12:44.123+00:00"); some proxies drop the colon.
var lastModifiedLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999-0700",
}
