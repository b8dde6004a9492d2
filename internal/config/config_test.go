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
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.XMS.Endpoint != "https://api.clxcommunications.com/xms" {
		t.Errorf("Endpoint = %s, want https://api.clxcommunications.com/xms", cfg.XMS.Endpoint)
	}
	if cfg.XMS.TokenEnv != "XMS_TOKEN" {
		t.Errorf("TokenEnv = %s, want XMS_TOKEN", cfg.XMS.TokenEnv)
	}

	if cfg.Defaults.PageSize != 30 {
		t.Errorf("PageSize = %d, want 30", cfg.Defaults.PageSize)
	}
	if cfg.Defaults.OutputFormat != "ndjson" {
		t.Errorf("OutputFormat = %s, want ndjson", cfg.Defaults.OutputFormat)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %s, want warn", cfg.Log.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
xms:
  endpoint: https://xms.internal.example.com
  service_plan_id: myplan
  token_env: XMS_STAGING_TOKEN

defaults:
  page_size: 25
  output_format: json

log:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.XMS.Endpoint != "https://xms.internal.example.com" {
		t.Errorf("Endpoint = %s, want https://xms.internal.example.com", cfg.XMS.Endpoint)
	}
	if cfg.XMS.ServicePlanID != "myplan" {
		t.Errorf("ServicePlanID = %s, want myplan", cfg.XMS.ServicePlanID)
	}
	if cfg.XMS.TokenEnv != "XMS_STAGING_TOKEN" {
		t.Errorf("TokenEnv = %s, want XMS_STAGING_TOKEN", cfg.XMS.TokenEnv)
	}

	if cfg.Defaults.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.Defaults.PageSize)
	}
	if cfg.Defaults.OutputFormat != "json" {
		t.Errorf("OutputFormat = %s, want json", cfg.Defaults.OutputFormat)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("LoadConfig with a missing explicit file should fail")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	os.Setenv("XMS_ENDPOINT", "https://custom.example.com")
	os.Setenv("XMS_SERVICE_PLAN_ID", "envplan")
	os.Setenv("XMS_PAGE_SIZE", "75")
	os.Setenv("XMS_LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("XMS_ENDPOINT")
		os.Unsetenv("XMS_SERVICE_PLAN_ID")
		os.Unsetenv("XMS_PAGE_SIZE")
		os.Unsetenv("XMS_LOG_LEVEL")
	}()

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.XMS.Endpoint != "https://custom.example.com" {
		t.Errorf("Endpoint = %s, want https://custom.example.com", cfg.XMS.Endpoint)
	}
	if cfg.XMS.ServicePlanID != "envplan" {
		t.Errorf("ServicePlanID = %s, want envplan", cfg.XMS.ServicePlanID)
	}
	if cfg.Defaults.PageSize != 75 {
		t.Errorf("PageSize = %d, want 75", cfg.Defaults.PageSize)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
	}
}

func TestToken(t *testing.T) {
	os.Setenv("XMS_TEST_TOKEN", "secret")
	defer os.Unsetenv("XMS_TEST_TOKEN")

	cfg := DefaultConfig()
	cfg.XMS.TokenEnv = "XMS_TEST_TOKEN"

	if got := cfg.Token(); got != "secret" {
		t.Errorf("Token() = %s, want secret", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: "",
		},
		{
			name: "negative page size",
			config: &Config{
				Defaults: DefaultsConfig{PageSize: -1},
				XMS:      XMSConfig{Endpoint: "http://api", TokenEnv: "XMS_TOKEN"},
			},
			wantErr: "page size must be positive",
		},
		{
			name: "page size too large",
			config: &Config{
				Defaults: DefaultsConfig{PageSize: 150},
				XMS:      XMSConfig{Endpoint: "http://api", TokenEnv: "XMS_TOKEN"},
			},
			wantErr: "exceeds API limit of 100",
		},
		{
			name: "empty endpoint",
			config: &Config{
				Defaults: DefaultsConfig{PageSize: 30},
				XMS:      XMSConfig{Endpoint: "", TokenEnv: "XMS_TOKEN"},
			},
			wantErr: "endpoint cannot be empty",
		},
		{
			name: "empty token env",
			config: &Config{
				Defaults: DefaultsConfig{PageSize: 30},
				XMS:      XMSConfig{Endpoint: "http://api", TokenEnv: ""},
			},
			wantErr: "token environment variable name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() error = nil, want %s", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Validate() error = %v, want containing %s", err, tt.wantErr)
				}
			}
		})
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"50", 50, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePositiveInt(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePositiveInt(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePositiveInt(%s) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
