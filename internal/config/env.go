package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file
const (
	EnvEndpoint      = "CVISCHAT_ENDPOINT"
	EnvModel         = "CVISCHAT_MODEL"
	EnvTimeout       = "CVISCHAT_TIMEOUT"
	EnvContextWindow = "CVISCHAT_CONTEXT_WINDOW"
	EnvLogLevel      = "CVISCHAT_LOG_LEVEL"
)

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overlays environment variables onto cfg
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv(EnvContextWindow); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ContextWindow = n
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

// Load reads .env, the config file and the environment, in increasing
// precedence. A broken config file is reported but defaults are still usable.
func Load() (Config, error) {
	LoadDotEnv()
	cfg, err := LoadConfig()
	return ApplyEnv(cfg), err
}
