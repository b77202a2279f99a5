package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr() != "0.0.0.0:5000" {
		t.Fatalf("expected 0.0.0.0:5000, got %s", cfg.Addr())
	}
	if cfg.Storage.Type != StorageFile || cfg.Storage.FilePath != "file.json" {
		t.Fatalf("unexpected storage defaults %+v", cfg.Storage)
	}
	if cfg.Server.Prefix != "/api/v1" || cfg.IsTest() {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadLayersEnvOverYAML(t *testing.T) {
	path := writeYAML(t, `
server:
  port: 8080
  prefix: /v2
storage:
  type: db
database:
  driver: sqlite
  dsn: hbnb.db
`)
	t.Setenv("HBNB_API_PORT", "9090")
	t.Setenv("HBNB_ENV", "test")
	t.Setenv("HBNB_CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("expected env port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.Prefix != "/v2" || cfg.Server.Host != "0.0.0.0" {
		t.Fatalf("expected yaml prefix and default host, got %+v", cfg.Server)
	}
	if cfg.Storage.Type != StorageDB || cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "hbnb.db" {
		t.Fatalf("unexpected storage %+v %+v", cfg.Storage, cfg.Database)
	}
	if !cfg.IsTest() {
		t.Fatal("expected HBNB_ENV=test to be honored")
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown storage", map[string]string{"HBNB_TYPE_STORAGE": "s3"}},
		{"port range", map[string]string{"HBNB_API_PORT": "70000"}},
		{"prefix slash", map[string]string{"HBNB_API_PREFIX": "api/"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(""); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadEnvError(t *testing.T) {
	t.Setenv("HBNB_API_PORT", "not-a-port")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}
