// Package testutils holds fixtures shared by the tests of several packages.
package testutils

import (
	"testing"

	"github.com/notaspie/notaspie/config"
)

// NewTestConfig returns the default configuration with document storage in
// a temporary directory.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.Storage.Type = "local"
	cfg.Storage.Local.Path = t.TempDir()
	cfg.Correction.Language = "en-US"
	cfg.Auth.Required = false
	return cfg
}
