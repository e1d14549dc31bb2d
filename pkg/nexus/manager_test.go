package nexus_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/libyear/pkg/core"
	"github.com/arc-language/libyear/pkg/nexus"
)

func asset(name, ver, modified string) nexus.Asset {
	return nexus.Asset{
		ID:           name + "-" + ver,
		Path:         name + "/" + ver + "/" + name + "-" + ver + ".tar.gz",
		Format:       "pypi",
		LastModified: modified,
		PyPI:         nexus.PyPIMetadata{Name: name, Version: ver},
	}
}

// pagedServer serves pages in order, chaining them with "page-N" tokens.
func pagedServer(t *testing.T, pages ...[]nexus.Asset) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, nexus.SearchAssetsPath, r.URL.Path)

		idx := 0
		if tok := r.URL.Query().Get("continuationToken"); tok != "" {
			_, err := fmt.Sscanf(tok, "page-%d", &idx)
			assert.NoError(t, err)
		}

		resp := nexus.SearchResponse{Items: filter(pages[idx], r.URL.Query().Get("version"))}
		if idx+1 < len(pages) {
			next := fmt.Sprintf("page-%d", idx+1)
			resp.ContinuationToken = &next
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func filter(items []nexus.Asset, ver string) []nexus.Asset {
	if ver == "" {
		return items
	}
	var out []nexus.Asset
	for _, a := range items {
		if a.PyPI.Version == ver {
			out = append(out, a)
		}
	}
	return out
}

func newManager(t *testing.T, url string) *nexus.PackageManager {
	t.Helper()
	pm, err := nexus.NewPackageManager(&nexus.Config{
		URL:             url,
		Timeout:         2 * time.Second,
		RetryMaxElapsed: time.Millisecond,
	})
	require.NoError(t, err)
	return pm
}

func versionsOf(set *core.VersionSet) []string {
	out := make([]string, 0, set.Len())
	for _, pv := range set.Versions {
		out = append(out, pv.Version.String())
	}
	return out
}

func TestListVersionsMergesPages(t *testing.T) {
	paged, calls := pagedServer(t,
		[]nexus.Asset{asset("requests", "2.0.0", "2023-03-01T00:00:00.000+00:00")},
		[]nexus.Asset{asset("requests", "1.0.0", "2023-01-01T00:00:00.000+00:00")},
		[]nexus.Asset{asset("requests", "1.2.0", "2023-02-01T00:00:00.000+00:00")},
	)
	single, _ := pagedServer(t, []nexus.Asset{
		asset("requests", "2.0.0", "2023-03-01T00:00:00.000+00:00"),
		asset("requests", "1.0.0", "2023-01-01T00:00:00.000+00:00"),
		asset("requests", "1.2.0", "2023-02-01T00:00:00.000+00:00"),
	})

	fromPages, err := newManager(t, paged.URL).ListVersions(context.Background(), "requests", "")
	require.NoError(t, err)
	fromSingle, err := newManager(t, single.URL).ListVersions(context.Background(), "requests", "")
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []string{"1.0.0", "1.2.0", "2.0.0"}, versionsOf(fromPages))
	assert.Equal(t, versionsOf(fromSingle), versionsOf(fromPages))
	for i := range fromPages.Versions {
		require.NotNil(t, fromPages.Versions[i].Published)
		assert.True(t, fromPages.Versions[i].Published.Equal(*fromSingle.Versions[i].Published))
	}
}

func TestListVersionsDropsOtherNames(t *testing.T) {
	srv, _ := pagedServer(t, []nexus.Asset{
		asset("requests", "2.0.0", ""),
		asset("requests-toolbelt", "9.0.0", ""),
		asset("Requests", "3.0.0", ""),
	})

	set, err := newManager(t, srv.URL).ListVersions(context.Background(), "requests", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2.0.0"}, versionsOf(set))
	assert.Nil(t, set.Versions[0].Published)
}

func TestListVersionsExact(t *testing.T) {
	srv, _ := pagedServer(t, []nexus.Asset{
		asset("flask", "1.0", ""),
		asset("flask", "1.0.0", ""),
		asset("flask", "2.0", ""),
	})

	set, err := newManager(t, srv.URL).ListVersions(context.Background(), "flask", "1.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0"}, versionsOf(set))
}

func TestListVersionsSkipsUnparseableVersions(t *testing.T) {
	srv, _ := pagedServer(t, []nexus.Asset{
		asset("flask", "1.0", ""),
		asset("flask", "not-a-version", ""),
	})

	set, err := newManager(t, srv.URL).ListVersions(context.Background(), "flask", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0"}, versionsOf(set))
}

func TestNonSuccessStatusEndsPaginationSilently(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			next := "page-1"
			_ = json.NewEncoder(w).Encode(nexus.SearchResponse{
				Items:             []nexus.Asset{asset("requests", "1.0.0", "")},
				ContinuationToken: &next,
			})
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	set, err := newManager(t, srv.URL).ListVersions(context.Background(), "requests", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.0"}, versionsOf(set))
	assert.Equal(t, int32(2), calls.Load(), "status errors are not retried")
}

func TestUnreachableBackendIsDistinguishable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	pm := newManager(t, url)

	_, err := pm.ListVersions(context.Background(), "requests", "")
	assert.ErrorIs(t, err, core.ErrBackendUnavailable)

	_, err = pm.PublishTimestamp(context.Background(), "requests", "1.0.0")
	assert.ErrorIs(t, err, core.ErrBackendUnavailable)
}

func TestPublishTimestamp(t *testing.T) {
	srv, _ := pagedServer(t,
		[]nexus.Asset{asset("requests", "1.0.0", "2023-01-01T00:00:00.000+00:00")},
		[]nexus.Asset{asset("requests", "2.0.0", "2023-01-31T12:30:00.250+0100")},
	)
	pm := newManager(t, srv.URL)

	ts, err := pm.PublishTimestamp(context.Background(), "requests", "2.0.0")
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.True(t, ts.Equal(time.Date(2023, 1, 31, 11, 30, 0, 250_000_000, time.UTC)))

	ts, err = pm.PublishTimestamp(context.Background(), "requests", "3.0.0")
	require.NoError(t, err)
	assert.Nil(t, ts)
}

func TestPublishTimestampFallsBackToPyPIBlock(t *testing.T) {
	a := asset("requests", "1.0.0", "")
	a.PyPI.LastModified = "2023-05-05T05:05:05.5Z"
	srv, _ := pagedServer(t, []nexus.Asset{a})

	ts, err := newManager(t, srv.URL).PublishTimestamp(context.Background(), "requests", "1.0.0")
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.Equal(t, 2023, ts.Year())
}

func TestRequestCarriesQueryAndAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "pypi-internal", q.Get("repository"))
		assert.Equal(t, "my pkg", q.Get("name"))
		assert.Equal(t, "1.0", q.Get("version"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "ci", user)
		assert.Equal(t, "s3cret", pass)
		_, _ = w.Write([]byte(`{"items":[],"continuationToken":null}`))
	}))
	defer srv.Close()

	pm, err := nexus.NewPackageManager(&nexus.Config{
		URL:        srv.URL + "/",
		Repository: "pypi-internal",
		Username:   "ci",
		Password:   "s3cret",
	})
	require.NoError(t, err)

	ts, err := pm.PublishTimestamp(context.Background(), "my pkg", "1.0")
	require.NoError(t, err)
	assert.Nil(t, ts)
}

func TestPagesIsRestartable(t *testing.T) {
	srv, calls := pagedServer(t,
		[]nexus.Asset{asset("a", "1", "")},
		[]nexus.Asset{asset("a", "2", "")},
	)
	pm := newManager(t, srv.URL)
	seq := pm.Pages(context.Background(), nexus.SearchQuery{Name: "a"})

	for range 2 {
		n := 0
		for page, err := range seq {
			require.NoError(t, err)
			n += len(page.Items)
		}
		assert.Equal(t, 2, n)
	}
	assert.Equal(t, int32(4), calls.Load())
}

func TestNewPackageManagerRequiresURL(t *testing.T) {
	_, err := nexus.NewPackageManager(&nexus.Config{})
	assert.ErrorIs(t, err, core.ErrNotConfigured)

	pm, err := nexus.NewPackageManager(&nexus.Config{URL: "http://nexus"})
	require.NoError(t, err)
	assert.Equal(t, nexus.DefaultRepository, pm.Repository())
}

func TestParseLastModified(t *testing.T) {
	for _, s := range []string{
		"2023-01-31T09:12:44.123+00:00",
		"2023-01-31T09:12:44.123456+0000",
		"2023-01-31T09:12:44Z",
	} {
		_, err := nexus.ParseLastModified(s)
		assert.NoError(t, err, s)
	}
	_, err := nexus.ParseLastModified("31/01/2023")
	assert.Error(t, err)
}
