package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvEndpoint, "http://gpu-box:11434/api/generate")
	t.Setenv(EnvModel, "mistral")
	t.Setenv(EnvTimeout, "42")
	t.Setenv(EnvContextWindow, "6")
	t.Setenv(EnvLogLevel, "debug")

	cfg := ApplyEnv(DefaultConfig())

	if cfg.Endpoint != "http://gpu-box:11434/api/generate" {
		t.Errorf("Endpoint = %s", cfg.Endpoint)
	}
	if cfg.Model != "mistral" {
		t.Errorf("Model = %s", cfg.Model)
	}
	if cfg.TimeoutSeconds != 42 {
		t.Errorf("TimeoutSeconds = %d", cfg.TimeoutSeconds)
	}
	if cfg.ContextWindow != 6 {
		t.Errorf("ContextWindow = %d", cfg.ContextWindow)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestApplyEnv_InvalidNumbersIgnored(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")
	t.Setenv(EnvContextWindow, "-3")

	cfg := ApplyEnv(DefaultConfig())
	if cfg.TimeoutSeconds != DefaultConfig().TimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want default", cfg.TimeoutSeconds)
	}
	if cfg.ContextWindow != 0 {
		t.Errorf("ContextWindow = %d, want 0", cfg.ContextWindow)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CVISCHAT_MODEL=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// Register cleanup for the variable godotenv is about to set.
	t.Setenv(EnvModel, "")
	os.Unsetenv(EnvModel)

	LoadDotEnv(path)

	if got := os.Getenv(EnvModel); got != "from-dotenv" {
		t.Errorf("%s = %q, want from-dotenv", EnvModel, got)
	}
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CVISCHAT_MODEL=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvModel, "from-shell")

	LoadDotEnv(path)

	if got := os.Getenv(EnvModel); got != "from-shell" {
		t.Errorf("%s = %q, want from-shell", EnvModel, got)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvModel, "env-model")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Model != "env-model" {
		t.Errorf("Model = %s, want env-model", cfg.Model)
	}
}
