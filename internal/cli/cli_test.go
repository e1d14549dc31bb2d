package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/libyear"
	"github.com/arc-language/libyear/internal/testutil"
)

func fakeRegistry() *testutil.FakeRegistry {
	return testutil.NewFakeRegistry().
		Add("requests", "2.0.0", testutil.Date(2022, 1, 1)).
		Add("requests", "2.31.0", testutil.Date(2023, 1, 1))
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command against reg with an empty config file
func execute(t *testing.T, reg *testutil.FakeRegistry, args ...string) (string, string, error) {
	t.Helper()

	for _, env := range []string{"NEXUS_URL", "NEXUS_PASSWORD", "GOOGLE_ARTIFACT_REGISTRY_PROJECT", "LIBYEAR_BACKEND", "LIBYEAR_TIMEOUT"} {
		t.Setenv(env, "")
	}

	orig := newCalculator
	newCalculator = func(_ context.Context, diagnostics io.Writer) (*libyear.Calculator, error) {
		return libyear.NewCalculatorWithBackend(reg, nil, libyear.WithDiagnostics(diagnostics)), nil
	}
	t.Cleanup(func() {
		newCalculator = orig
		resetFlags(rootCmd)
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDaysCommand(t *testing.T) {
	out, _, err := execute(t, fakeRegistry(), "days", "requests", "--version", "2.0.0")
	require.NoError(t, err)
	assert.Equal(t, "requests 2.0.0 -> 2.31.0: 365 days (1.00 years)\n", out)
}

func TestDaysUnsatisfiable(t *testing.T) {
	out, stderr, err := execute(t, fakeRegistry(), "days", "requests", "--lt", "1.0")
	require.NoError(t, err)
	assert.Equal(t, "requests: 0 days (no version below 1.0)\n", out)
	assert.Contains(t, stderr, "Unsatisfiable constraint: requests<1.0")
}

func TestDaysWithoutPinReportsNoData(t *testing.T) {
	reg := fakeRegistry()
	out, _, err := execute(t, reg, "days", "requests")
	require.NoError(t, err)
	assert.Equal(t, "requests: no data (pass --version or --lt)\n", out)
	assert.Zero(t, reg.TimestampCalls)
}

func TestDaysJSON(t *testing.T) {
	out, _, err := execute(t, fakeRegistry(), "days", "requests", "--lt", "2.31.0", "-o", "json")
	require.NoError(t, err)

	var res libyear.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "2.0.0", res.Version)
	assert.Equal(t, 365, res.Days)
	assert.Equal(t, libyear.StatusKnown, res.Status)
}

func TestDaysRejectsBothFlags(t *testing.T) {
	_, _, err := execute(t, fakeRegistry(), "days", "requests", "--version", "2.0.0", "--lt", "3")
	assert.Error(t, err)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, _, err := execute(t, fakeRegistry(), "days", "requests", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestReleasesCommand(t *testing.T) {
	out, _, err := execute(t, fakeRegistry(), "releases", "requests", "2.0.0")
	require.NoError(t, err)
	assert.Equal(t, "requests 2.0.0: 1 newer releases\n", out)

	_, _, err = execute(t, fakeRegistry(), "releases", "requests", "9.9")
	assert.ErrorIs(t, err, libyear.ErrVersionNotFound)
}

func TestVersionsCommand(t *testing.T) {
	out, _, err := execute(t, fakeRegistry(), "versions", "requests")
	require.NoError(t, err)
	assert.Equal(t,
		"2.0.0                2022-01-01T00:00:00Z\n"+
			"2.31.0               2023-01-01T00:00:00Z\n", out)

	_, _, err = execute(t, fakeRegistry(), "versions", "ghost")
	assert.ErrorIs(t, err, libyear.ErrPackageNotFound)
}

func TestResolveCommand(t *testing.T) {
	out, _, err := execute(t, fakeRegistry(), "resolve", "requests", "--lt", "2.31.0")
	require.NoError(t, err)
	assert.Contains(t, out, "Current: 2.0.0 (2022-01-01T00:00:00Z)")
	assert.Contains(t, out, "Latest:  2.31.0 (2023-01-01T00:00:00Z)")
	assert.Contains(t, out, "Backend: fake")
}

func TestReportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("requests==2.0.0\nghost==1.0\nflask\n"), 0644))

	out, stderr, err := execute(t, fakeRegistry(), "report", path)
	require.NoError(t, err)
	assert.Contains(t, out, "requests")
	assert.Contains(t, out, "1/2 packages evaluated")
	assert.Contains(t, stderr, "[SKIP] ghost")

	empty := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(empty, []byte("flask\n"), 0644))
	_, _, err = execute(t, fakeRegistry(), "report", empty)
	assert.ErrorContains(t, err, "no pinned requirements")
}

func TestBackendsCommand(t *testing.T) {
	out, _, err := execute(t, fakeRegistry(), "backends")
	require.NoError(t, err)
	assert.Contains(t, out, "No backend configured")

	resetFlags(rootCmd)
	t.Setenv("NEXUS_URL", "https://nexus.example.com")
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "c.yaml"), "backends"})
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "* nexus")
	assert.Contains(t, buf.String(), "https://nexus.example.com repository=pypi-hosted")
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	run := func(args ...string) (string, error) {
		resetFlags(rootCmd)
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetErr(io.Discard)
		rootCmd.SetArgs(append([]string{"--config", path}, args...))
		err := rootCmd.Execute()
		return buf.String(), err
	}
	t.Cleanup(func() { resetFlags(rootCmd) })
	t.Setenv("NEXUS_URL", "https://nexus.example.com")
	t.Setenv("NEXUS_PASSWORD", "s3cret")

	out, err := run("config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	assert.FileExists(t, path)

	_, err = run("config", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err = run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "url: https://nexus.example.com")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "s3cret")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, fakeRegistry(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "libyear version "+Version)
}
