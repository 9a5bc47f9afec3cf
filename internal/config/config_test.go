// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.APIEndpoint != "https://api.github.com" {
		t.Errorf("APIEndpoint = %q, want https://api.github.com", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GITHUB_TOKEN" {
		t.Errorf("TokenEnv = %q, want GITHUB_TOKEN", cfg.GitHub.TokenEnv)
	}
	if cfg.Defaults.PerPage != 30 {
		t.Errorf("PerPage = %d, want 30", cfg.Defaults.PerPage)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "hub.yaml")

	content := `
github:
  api_endpoint: https://github.example.com/api/v3
  graphql_endpoint: https://github.example.com/api/graphql
  token_env: GHE_TOKEN
defaults:
  per_page: 50
  output_format: minimal
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://github.example.com/api/v3" {
		t.Errorf("APIEndpoint = %q", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GHE_TOKEN" {
		t.Errorf("TokenEnv = %q, want GHE_TOKEN", cfg.GitHub.TokenEnv)
	}
	if cfg.Defaults.PerPage != 50 {
		t.Errorf("PerPage = %d, want 50", cfg.Defaults.PerPage)
	}
	if cfg.Defaults.OutputFormat != "minimal" {
		t.Errorf("OutputFormat = %q, want minimal", cfg.Defaults.OutputFormat)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() with explicit missing file should fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_API_ENDPOINT", "https://ghe.internal/api/v3")
	t.Setenv("SIRSEER_HUB_PER_PAGE", "75")
	t.Setenv("SIRSEER_HUB_FORMAT", "markdown")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://ghe.internal/api/v3" {
		t.Errorf("APIEndpoint = %q, env override not applied", cfg.GitHub.APIEndpoint)
	}
	if cfg.Defaults.PerPage != 75 {
		t.Errorf("PerPage = %d, want 75", cfg.Defaults.PerPage)
	}
	if cfg.Defaults.OutputFormat != "markdown" {
		t.Errorf("OutputFormat = %q, want markdown", cfg.Defaults.OutputFormat)
	}
}

func TestEnvOverrideIgnoresInvalidPerPage(t *testing.T) {
	t.Setenv("SIRSEER_HUB_PER_PAGE", "not-a-number")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Defaults.PerPage != 30 {
		t.Errorf("PerPage = %d, want default 30", cfg.Defaults.PerPage)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero per_page", func(c *Config) { c.Defaults.PerPage = 0 }, true},
		{"per_page above limit", func(c *Config) { c.Defaults.PerPage = 101 }, true},
		{"unknown format", func(c *Config) { c.Defaults.OutputFormat = "xml" }, true},
		{"empty api endpoint", func(c *Config) { c.GitHub.APIEndpoint = "" }, true},
		{"empty graphql endpoint", func(c *Config) { c.GitHub.GraphQLEndpoint = "" }, true},
		{"empty token env", func(c *Config) { c.GitHub.TokenEnv = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
