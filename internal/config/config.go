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

// Package config provides configuration management for sirseer-hub with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. It's designed to work
// seamlessly with GitHub Enterprise deployments through custom endpoint
// settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .sirseer-hub.yaml (current directory)
//   - .sirseer-hub.yml (current directory)
//   - ~/.sirseer/hub.yaml
//   - ~/.sirseer/hub.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".sirseer-hub.yaml",
			".sirseer-hub.yml",
			filepath.Join(os.Getenv("HOME"), ".sirseer", "hub.yaml"),
			filepath.Join(os.Getenv("HOME"), ".sirseer", "hub.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}

	if perPage := os.Getenv("SIRSEER_HUB_PER_PAGE"); perPage != "" {
		if n, err := strconv.Atoi(perPage); err == nil && n > 0 {
			cfg.Defaults.PerPage = n
		}
	}
	if format := os.Getenv("SIRSEER_HUB_FORMAT"); format != "" {
		cfg.Defaults.OutputFormat = format
	}
}

// Validate checks if the configuration contains valid values. It ensures
// page sizes are within GitHub's limits, endpoints are not empty, and the
// output format names a known encoding. This should be called after loading
// configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Defaults.PerPage <= 0 {
		return fmt.Errorf("default per_page must be positive, got: %d", c.Defaults.PerPage)
	}
	if c.Defaults.PerPage > 100 {
		return fmt.Errorf("default per_page %d exceeds GitHub API limit of 100", c.Defaults.PerPage)
	}
	switch c.Defaults.OutputFormat {
	case "json", "markdown", "minimal":
	default:
		return fmt.Errorf("unknown output format %q (expected json, markdown, or minimal)", c.Defaults.OutputFormat)
	}
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	if c.GitHub.TokenEnv == "" {
		return fmt.Errorf("token environment variable name cannot be empty")
	}
	return nil
}
