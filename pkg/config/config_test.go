package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfig tests loading default config
func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}
	if cfg == nil {
		t.Fatal("Config is nil")
	}
}

// TestLoadConfigDefaults tests default values are set
func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Address == "" {
		t.Error("Server address should not be empty")
	}
	if cfg.Chat.ReceiveTimeout != 3600 {
		t.Errorf("Expected receive timeout 3600, got %d", cfg.Chat.ReceiveTimeout)
	}
	if cfg.Chat.SendRetries != 3 {
		t.Errorf("Expected 3 send retries, got %d", cfg.Chat.SendRetries)
	}
	if cfg.VectorDB.TopK != 20 {
		t.Errorf("Expected top_k 20, got %d", cfg.VectorDB.TopK)
	}
	if cfg.Chat.Greeting == "" {
		t.Error("Greeting should not be empty")
	}
}

// TestLoadConfigFromFile tests loading from a YAML file
func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  address: ":9000"
chat:
  receive_timeout_seconds: 60
vectordb:
  type: memory
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Address != ":9000" {
		t.Errorf("Expected address :9000, got %s", cfg.Server.Address)
	}
	if cfg.Chat.ReceiveTimeout != 60 {
		t.Errorf("Expected receive timeout 60, got %d", cfg.Chat.ReceiveTimeout)
	}
	if cfg.VectorDB.Type != "memory" {
		t.Errorf("Expected vectordb type memory, got %s", cfg.VectorDB.Type)
	}
	// Untouched fields keep their defaults.
	if cfg.Chat.SendRetries != 3 {
		t.Errorf("Expected default send retries 3, got %d", cfg.Chat.SendRetries)
	}
}

// TestEnvOverrides tests environment variable overrides
func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7777")
	t.Setenv("VECTORDB_TYPE", "memory")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Address != ":7777" {
		t.Errorf("Expected address :7777, got %s", cfg.Server.Address)
	}
	if cfg.VectorDB.Type != "memory" {
		t.Errorf("Expected vectordb type memory, got %s", cfg.VectorDB.Type)
	}
}

// TestValidate tests configuration validation
func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VectorDB.Type = "cassandra"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for unsupported vectordb type")
	}

	cfg = DefaultConfig()
	cfg.Chat.ReceiveTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for zero receive timeout")
	}

	cfg = DefaultConfig()
	cfg.Server.TLS.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for TLS without cert files")
	}
}
