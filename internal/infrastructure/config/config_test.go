package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	// Create a temporary config file
	content := `
service:
  name: "hublink-test"
hub:
  host: "192.168.1.20"
  use_ssl: true
database:
  path: "/tmp/test.db"
  wal_mode: true
  busy_timeout: 5
mqtt:
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
profile:
  dir: "/tmp/profile"
  archive: "/tmp/profile.zip"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Service.Name != "hublink-test" {
		t.Errorf("Service.Name = %q, want %q", cfg.Service.Name, "hublink-test")
	}

	if cfg.Hub.Host != "192.168.1.20" {
		t.Errorf("Hub.Host = %q, want %q", cfg.Hub.Host, "192.168.1.20")
	}

	if !cfg.Hub.UseSSL {
		t.Error("Hub.UseSSL = false, want true")
	}

	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/test.db")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("service:\n  name: hublink\n"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Hub.UseSSL {
		t.Error("Hub.UseSSL default = true, want false")
	}
	if cfg.Hub.Timeout != 10 {
		t.Errorf("Hub.Timeout default = %d, want 10", cfg.Hub.Timeout)
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("MQTT.Broker.Port default = %d, want 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.Profile.Dir != "./profile" {
		t.Errorf("Profile.Dir default = %q, want %q", cfg.Profile.Dir, "./profile")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `
hub:
  host: "file-host"
  use_ssl: false
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("HUBLINK_HUB_HOST", "env-host")
	t.Setenv("HUBLINK_HUB_USE_SSL", "true")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Hub.Host != "env-host" {
		t.Errorf("Hub.Host = %q, want env override %q", cfg.Hub.Host, "env-host")
	}
	if !cfg.Hub.UseSSL {
		t.Error("Hub.UseSSL = false, want env override true")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "default config is valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "empty service name",
			mutate:  func(c *Config) { c.Service.Name = "" },
			wantErr: true,
		},
		{
			name:    "invalid hub port",
			mutate:  func(c *Config) { c.Hub.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "zero hub timeout",
			mutate:  func(c *Config) { c.Hub.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name:    "invalid qos",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: true,
		},
		{
			name:    "empty profile dir",
			mutate:  func(c *Config) { c.Profile.Dir = "" },
			wantErr: true,
		},
		{
			name:    "zero poll interval",
			mutate:  func(c *Config) { c.Poll.Long = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
