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

import "os"

// Config represents the complete CLI configuration. It consolidates
// settings from the config file and environment variables and provides a
// unified interface for accessing configuration values.
type Config struct {
	XMS      XMSConfig      `yaml:"xms"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Log      LogConfig      `yaml:"log"`
}

// XMSConfig contains connection settings for the XMS API. The token is
// never stored in the file; TokenEnv names the environment variable that
// holds it.
type XMSConfig struct {
	Endpoint      string `yaml:"endpoint"`
	ServicePlanID string `yaml:"service_plan_id"`
	TokenEnv      string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to all list
// operations unless overridden by command-line flags.
type DefaultsConfig struct {
	PageSize     int    `yaml:"page_size"`
	OutputFormat string `yaml:"output_format"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults suitable for the
// public XMS endpoint.
func DefaultConfig() *Config {
	return &Config{
		XMS: XMSConfig{
			Endpoint: "https://api.clxcommunications.com/xms",
			TokenEnv: "XMS_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize:     30,
			OutputFormat: "ndjson",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Token resolves the API token from the configured environment variable.
func (c *Config) Token() string {
	return os.Getenv(c.XMS.TokenEnv)
}
