package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBaseConfigApplyDefaults(t *testing.T) {
	var c BaseConfig
	c.ApplyDefaults()

	if c.Environment != "development" {
		t.Errorf("environment = %q, want development", c.Environment)
	}
	if !c.Debug {
		t.Error("development must enable debug")
	}

	c = BaseConfig{Environment: "production"}
	c.ApplyDefaults()
	if c.Debug {
		t.Error("production must not force debug on")
	}
}

func TestBaseConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BaseConfig
		wantErr bool
	}{
		{"valid", BaseConfig{Name: "svc", Environment: "development"}, false},
		{"staging", BaseConfig{Name: "svc", Environment: "staging"}, false},
		{"missing name", BaseConfig{Environment: "development"}, true},
		{"bad environment", BaseConfig{Name: "svc", Environment: "local"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

type testConfig struct {
	Base   BaseConfig `mapstructure:"base"`
	Server struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeTestConfig(t, `
base:
  name: webdemo
  environment: development
server:
  host: 127.0.0.1
  port: 9090
`)

	var cfg testConfig
	if err := LoadConfig("webdemo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Base.Name != "webdemo" || cfg.Base.Environment != "development" {
		t.Errorf("base = %+v", cfg.Base)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeTestConfig(t, `
base:
  name: webdemo
server:
  port: 8080
`)
	t.Setenv("SERVER_PORT", "9999")

	var cfg testConfig
	if err := LoadConfig("webdemo", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want env override 9999", cfg.Server.Port)
	}
}

func TestLoadConfigMissingFileIsNotFatal(t *testing.T) {
	var cfg testConfig
	if err := LoadConfig("nosuchservice", &cfg, WithConfigFile("/nonexistent/config.yml")); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"PORT", []string{"port"}},
		{"SERVER_PORT", []string{"server_port", "server.port"}},
		{
			"AUTH_SESSION_COOKIE",
			[]string{
				"auth_session_cookie",
				"auth.session.cookie",
				"auth.session_cookie",
				"auth.session.cookie",
			},
		},
	}

	for _, tc := range tests {
		got := envKeyVariants(tc.key)
		// Variants are deduplicated.
		want := dedupe(tc.want)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("envKeyVariants(%s) = %v, want %v", tc.key, got, want)
		}
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
