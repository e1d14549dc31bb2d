// pkg/core/env.go
package core

import (
	"fmt"

	"github.com/spf13/viper"
)

// Environment variables read once at start-up
const (
	EnvBackend             = "LIBYEAR_BACKEND"
	EnvTimeout             = "LIBYEAR_TIMEOUT"
	EnvNexusURL            = "NEXUS_URL"
	EnvNexusRepository     = "NEXUS_PYPI_REPOSITORY"
	EnvNexusUsername       = "NEXUS_USERNAME"
	EnvNexusPassword       = "NEXUS_PASSWORD"
	EnvArtifactProject     = "GOOGLE_ARTIFACT_REGISTRY_PROJECT"
	EnvArtifactLocation    = "GOOGLE_ARTIFACT_REGISTRY_LOCATION"
	EnvArtifactRepository  = "GOOGLE_ARTIFACT_REGISTRY_PYPI_REPOSITORY"
	EnvArtifactCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
)

var envBindings = map[string]string{
	"backend":                            EnvBackend,
	"timeout":                            EnvTimeout,
	"nexus.url":                          EnvNexusURL,
	"nexus.repository":                   EnvNexusRepository,
	"nexus.username":                     EnvNexusUsername,
	"nexus.password":                     EnvNexusPassword,
	"artifact_registry.project":          EnvArtifactProject,
	"artifact_registry.location":         EnvArtifactLocation,
	"artifact_registry.repository":       EnvArtifactRepository,
	"artifact_registry.credentials_file": EnvArtifactCredentials,
}

// ApplyEnv overrides cfg with any of the bound environment variables that are set
func ApplyEnv(cfg *Config) error {
	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}

	fields := map[string]*string{
		"backend":                            &cfg.Backend,
		"nexus.url":                          &cfg.Nexus.URL,
		"nexus.repository":                   &cfg.Nexus.Repository,
		"nexus.username":                     &cfg.Nexus.Username,
		"nexus.password":                     &cfg.Nexus.Password,
		"artifact_registry.project":          &cfg.ArtifactRegistry.Project,
		"artifact_registry.location":         &cfg.ArtifactRegistry.Location,
		"artifact_registry.repository":       &cfg.ArtifactRegistry.Repository,
		"artifact_registry.credentials_file": &cfg.ArtifactRegistry.CredentialsFile,
	}
	for key, dst := range fields {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	if v.IsSet("timeout") {
		d := v.GetDuration("timeout")
		if d <= 0 {
			return fmt.Errorf("%s: invalid duration %q", EnvTimeout, v.GetString("timeout"))
		}
		cfg.Timeout = d
	}

	return nil
}
