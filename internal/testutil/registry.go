// Package testutil provides an in-memory registry for tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/arc-language/libyear/pkg/core"
	"github.com/arc-language/libyear/pkg/version"
)

// Release is one published version held by FakeRegistry
type Release struct {
	Version   string
	Published *time.Time
}

// FakeRegistry is an in-memory registry backend. It is safe for concurrent use.
type FakeRegistry struct {
	mu             sync.Mutex
	packages       map[string][]Release
	listErr        map[string]error
	timestampErr   error
	ListCalls      int
	TimestampCalls int
}

// NewFakeRegistry returns an empty registry
func NewFakeRegistry() *FakeRegistry {
	return &FakeRegistry{
		packages: make(map[string][]Release),
		listErr:  make(map[string]error),
	}
}

// Add publishes name==ver at published
func (f *FakeRegistry) Add(name, ver string, published time.Time) *FakeRegistry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.packages[name] = append(f.packages[name], Release{Version: ver, Published: &published})
	return f
}

// AddUndated publishes name==ver without a timestamp
func (f *FakeRegistry) AddUndated(name, ver string) *FakeRegistry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.packages[name] = append(f.packages[name], Release{Version: ver})
	return f
}

// FailList makes ListVersions for name return err
func (f *FakeRegistry) FailList(name string, err error) *FakeRegistry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr[name] = err
	return f
}

// FailTimestamps makes every PublishTimestamp call return err
func (f *FakeRegistry) FailTimestamps(err error) *FakeRegistry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timestampErr = err
	return f
}

// ListVersions implements backend.Backend
func (f *FakeRegistry) ListVersions(_ context.Context, name, exact string) (*core.VersionSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++

	if err := f.listErr[name]; err != nil {
		return nil, err
	}

	var versions []core.PackageVersion
	for _, r := range f.packages[name] {
		if exact != "" && r.Version != exact {
			continue
		}
		versions = append(versions, core.PackageVersion{
			Name:      name,
			Version:   version.MustParse(r.Version),
			Published: r.Published,
		})
	}
	return core.NewVersionSet(name, versions), nil
}

// PublishTimestamp implements backend.Backend
func (f *FakeRegistry) PublishTimestamp(_ context.Context, name, ver string) (*time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TimestampCalls++

	if f.timestampErr != nil {
		return nil, f.timestampErr
	}
	for _, r := range f.packages[name] {
		if r.Version == ver {
			return r.Published, nil
		}
	}
	return nil, nil
}

// Name implements backend.Backend
func (f *FakeRegistry) Name() string {
	return "fake"
}

// Close implements backend.Backend
func (f *FakeRegistry) Close() error {
	return nil
}

// Date returns midnight UTC on the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
