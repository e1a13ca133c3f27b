package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/restkit/client"
)

type appConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Backend client.Config `yaml:"backend" mapstructure:"backend"`
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})

	t.Run("logging defaults applied", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Logging.Level != "info" {
			t.Errorf("expected logging level 'info', got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.Logging.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr string
	}{
		{"valid", func(c *ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "config.name is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, "config.environment must be one of"},
		{"invalid logging", func(c *ServiceConfig) { c.Logging.Level = "bad" }, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: test-service
environment: staging
version: "1.0.0"
logging:
  level: debug
  format: json
backend:
  protocol: https
  hostname: api.example.com
  port: 8443
  path_prefix: /api/
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg appConfig
	err := LoadConfig("test-service", &cfg, WithConfigFile(configPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "test-service" {
		t.Errorf("expected name 'test-service', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
	}
	if cfg.Backend.Hostname != "api.example.com" {
		t.Errorf("expected backend hostname, got %q", cfg.Backend.Hostname)
	}
	if cfg.Backend.Port != 8443 {
		t.Errorf("expected backend port 8443, got %d", cfg.Backend.Port)
	}
	if cfg.Backend.PathPrefix != "/api/" {
		t.Errorf("expected backend path prefix '/api/', got %q", cfg.Backend.PathPrefix)
	}
}

func TestLoadConfigTagValidation(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: test-service
environment: staging
backend:
  protocol: https
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg appConfig
	err := LoadConfig("test-service", &cfg, WithConfigFile(configPath))
	if err == nil {
		t.Fatal("expected validation error for missing backend hostname")
	}
	if !strings.Contains(err.Error(), "hostname") {
		t.Errorf("expected hostname in error, got %q", err.Error())
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: test-service
environment: staging
backend:
  hostname: api.example.com
  secret: from-file
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	os.Setenv("BACKEND_SECRET", "from-env")
	defer os.Unsetenv("BACKEND_SECRET")

	var cfg appConfig
	err := LoadConfig("test-service", &cfg, WithConfigFile(configPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Backend.Secret != "from-env" {
		t.Errorf("expected env override, got %q", cfg.Backend.Secret)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	envPath := filepath.Join(dir, ".env")

	yamlContent := `
name: test-service
environment: staging
backend:
  hostname: api.example.com
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := os.WriteFile(envPath, []byte("BACKEND_USER_AGENT=envkit/9.9\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	defer os.Unsetenv("BACKEND_USER_AGENT")

	var cfg appConfig
	err := LoadConfig("test-service", &cfg, WithConfigFile(configPath), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Backend.UserAgent != "envkit/9.9" {
		t.Errorf("expected user agent from .env, got %q", cfg.Backend.UserAgent)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	type plainConfig struct {
		Value string `yaml:"value" mapstructure:"value"`
	}

	var cfg plainConfig
	// With no config file found, LoadConfig should still succeed (just empty config)
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigValidateHookFailure(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
environment: staging
backend:
  hostname: api.example.com
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg appConfig
	err := LoadConfig("test-service", &cfg, WithConfigFile(configPath))
	if err == nil {
		t.Fatal("expected error from Validate hook")
	}
	if !strings.Contains(err.Error(), "config.name is required") {
		t.Errorf("expected name error, got %q", err.Error())
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/my-svc/config.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != "./cmd/my-svc/config.yml" {
		t.Errorf("expected config file at ./cmd/my-svc/config.yml, got %q", files.ConfigFile)
	}
}

func TestResolverFindsEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/.env.my-svc": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.EnvFile != "./config/.env.my-svc" {
		t.Errorf("expected env file at ./config/.env.my-svc, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPathsWin(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config.yml": true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{
		ConfigFile: "/explicit/config.yml",
		EnvFile:    "/explicit/.env",
	})
	if files.ConfigFile != "/explicit/config.yml" {
		t.Errorf("explicit config file must win, got %q", files.ConfigFile)
	}
	if files.EnvFile != "/explicit/.env" {
		t.Errorf("explicit env file must win, got %q", files.EnvFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
func (m *mockFS) Getwd() (string, error)    { return "/mock", nil }

func TestWithFileSystemOption(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
}

func TestWithConfigFileOption(t *testing.T) {
	var lc LoaderConfig
	WithConfigFile("/path/to/config.yml")(&lc)
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
}

func TestWithEnvFileOption(t *testing.T) {
	var lc LoaderConfig
	WithEnvFile("/path/to/.env")(&lc)
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"SECRET", []string{"secret"}},
		{"BACKEND_SECRET", []string{"backend_secret", "backend.secret"}},
		{"BACKEND_PATH_PREFIX", []string{
			"backend_path_prefix",
			"backend.path.prefix",
			"backend.path_prefix",
		}},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			got := generateEnvKeyVariants(tc.key)
			for _, want := range tc.want {
				found := false
				for _, g := range got {
					if g == want {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("variants %v missing %q", got, want)
				}
			}
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type tagged struct {
		Host string `mapstructure:"host" validate:"required"`
		Port int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	}

	if err := ValidateStruct(&tagged{Host: "h", Port: 80}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ValidateStruct(&tagged{})
	if err == nil {
		t.Fatal("expected error for missing host")
	}
	if !strings.Contains(err.Error(), "host is required") {
		t.Errorf("expected mapstructure field name, got %q", err.Error())
	}

	err = ValidateStruct(&tagged{Host: "h", Port: 99999})
	if err == nil {
		t.Fatal("expected error for port out of range")
	}
	if !strings.Contains(err.Error(), "port must be at most 65535") {
		t.Errorf("expected range message, got %q", err.Error())
	}
}
