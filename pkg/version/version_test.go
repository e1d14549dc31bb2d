package version_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/libyear/pkg/version"
)

func TestParseAcceptsRegistryForms(t *testing.T) {
	for _, raw := range []string{
		"1", "1.0", "1.0.0", "v1.2.3", "==2.0", " 3.1.4 ",
		"1.0a1", "1.0b2", "1.0rc1", "1.0.0-rc.1", "2.0.0-beta",
		"1.0.post1", "1.0-1", "1.0.dev3", "1.0a1.dev1",
		"2023.10.1.4", "1.0+local.7", "1.0.0-snapshot",
	} {
		t.Run(raw, func(t *testing.T) {
			v, err := version.Parse(raw)
			require.NoError(t, err)
			assert.False(t, v.IsZero())
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "latest", "1.x", "one.two"} {
		_, err := version.Parse(raw)
		assert.ErrorIs(t, err, version.ErrInvalid, raw)
	}
}

func TestEqualIsSemantic(t *testing.T) {
	assert.True(t, version.MustParse("1.0").Equal(version.MustParse("1.0.0")))
	assert.True(t, version.MustParse("v1.2").Equal(version.MustParse("1.2.0")))
	assert.True(t, version.MustParse("1.0RC1").Equal(version.MustParse("1.0rc1")))
	assert.True(t, version.MustParse("1.0rc01").Equal(version.MustParse("1.0rc1")))
	assert.False(t, version.MustParse("1.0").Equal(version.MustParse("1.0.1")))
}

func TestCompareOrdering(t *testing.T) {
	ordered := []string{
		"0.9",
		"1.0.0-snapshot",
		"1.0.dev1",
		"1.0a1",
		"1.0b1",
		"1.0rc1",
		"1.0",
		"1.0+local.7",
		"1.0.post1",
		"1.0.1",
		"1.2.0",
		"1.10.0",
		"2.0.0",
		"2.0.0.1",
		"1!0.1",
	}
	for i := 0; i < len(ordered)-1; i++ {
		a, b := version.MustParse(ordered[i]), version.MustParse(ordered[i+1])
		assert.Equal(t, -1, a.Compare(b), "%s < %s", ordered[i], ordered[i+1])
		assert.Equal(t, 1, b.Compare(a), "%s > %s", ordered[i+1], ordered[i])
	}
}

func TestSortIsNotLexical(t *testing.T) {
	raw := []string{"1.10.0", "1.9.0", "1.2.0", "10.0", "2.0"}
	vs := make([]version.Version, len(raw))
	for i, r := range raw {
		vs[i] = version.MustParse(r)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].Less(vs[j]) })

	got := make([]string, len(vs))
	for i, v := range vs {
		got[i] = v.String()
	}
	assert.Equal(t, []string{"1.2.0", "1.9.0", "1.10.0", "2.0", "10.0"}, got)
}

func TestStringKeepsRegistrySpelling(t *testing.T) {
	v := version.MustParse("1.0")
	assert.Equal(t, "1.0", v.String())
	assert.Equal(t, "1.0", v.Canonical())
	assert.Equal(t, "2.0rc1", version.MustParse("v2.0-RC01").Canonical())
	assert.Equal(t, "1.0.0-snapshot", version.MustParse("1.0.0-snapshot").Canonical())
	assert.True(t, version.MustParse("1.0rc1").IsPrerelease())
	assert.False(t, v.IsPrerelease())
}

func TestLeadingZeroSegments(t *testing.T) {
	tests := []struct {
		raw, canonical string
	}{
		{"1.0rc01", "1.0rc1"},
		{"1.0a01", "1.0a1"},
		{"2.0.0b02", "2.0.0b2"},
		{"1.0.post01", "1.0.post1"},
		{"1.0.dev007", "1.0.dev7"},
		{"01.02", "1.2"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := version.Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, v.Canonical())
			assert.Equal(t, tt.raw, v.String())
		})
	}

	assert.True(t, version.MustParse("2.0.0b02").Less(version.MustParse("2.0.0b10")))
	assert.True(t, version.MustParse("2.0.0b10").Less(version.MustParse("2.0.0")))
}
