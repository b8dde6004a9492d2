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

// Package config provides configuration management for the xms CLI with
// support for multiple configuration sources and a well-defined
// precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. The API token is
// never read from the file itself, only from the environment variable
// the file names.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them
// in the correct precedence order. If configPath is provided, it loads
// from that specific file. Otherwise, it searches standard locations:
//   - .xms.yaml (current directory)
//   - .xms.yml (current directory)
//   - ~/.xms/config.yaml
//   - ~/.xms/config.yml
//
// Environment variables are applied after loading the config file,
// allowing runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but
// will succeed with defaults if no config file is found in standard
// locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".xms.yaml",
			".xms.yml",
			filepath.Join(os.Getenv("HOME"), ".xms", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".xms", "config.yml"),
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
	if endpoint := os.Getenv("XMS_ENDPOINT"); endpoint != "" {
		cfg.XMS.Endpoint = endpoint
	}
	if plan := os.Getenv("XMS_SERVICE_PLAN_ID"); plan != "" {
		cfg.XMS.ServicePlanID = plan
	}
	if pageSize := os.Getenv("XMS_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
	if level := os.Getenv("XMS_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Validate checks if the configuration contains valid values. It ensures
// the page size is within the API's limits and endpoints are not empty.
// This should be called after loading configuration to catch invalid
// settings early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("default page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > 100 {
		return fmt.Errorf("default page size %d exceeds API limit of 100", c.Defaults.PageSize)
	}
	if c.XMS.Endpoint == "" {
		return fmt.Errorf("XMS endpoint cannot be empty")
	}
	if c.XMS.TokenEnv == "" {
		return fmt.Errorf("token environment variable name cannot be empty")
	}
	return nil
}
