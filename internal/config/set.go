package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type setter func(cfg *Config, value string) error

var setters = map[string]setter{
	"endpoint": func(cfg *Config, v string) error {
		if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			return fmt.Errorf("endpoint must start with http:// or https://")
		}
		cfg.Endpoint = v
		return nil
	},
	"model": func(cfg *Config, v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("model cannot be empty")
		}
		cfg.Model = v
		return nil
	},
	"timeout_seconds": func(cfg *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout_seconds must be a positive integer")
		}
		cfg.TimeoutSeconds = n
		return nil
	},
	"context_window": func(cfg *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("context_window must be a non-negative integer")
		}
		cfg.ContextWindow = n
		return nil
	},
	"verbose": boolSetter(func(cfg *Config, b bool) { cfg.Verbose = b }),
	"copy_to_clipboard": boolSetter(func(cfg *Config, b bool) { cfg.CopyToClipboard = b }),
	"log_level": func(cfg *Config, v string) error {
		switch strings.ToLower(v) {
		case "debug", "info", "warn", "error", "disabled":
			cfg.LogLevel = strings.ToLower(v)
			return nil
		}
		return fmt.Errorf("log_level must be one of debug, info, warn, error, disabled")
	},
	"log_file": func(cfg *Config, v string) error {
		cfg.LogFile = v
		return nil
	},
	"tui_theme": func(cfg *Config, v string) error {
		cfg.TUITheme = v
		return nil
	},
	"markdown.style": func(cfg *Config, v string) error {
		cfg.Markdown.Style = v
		return nil
	},
}

func boolSetter(apply func(cfg *Config, b bool)) setter {
	return func(cfg *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("value must be true or false")
		}
		apply(cfg, b)
		return nil
	}
}

// Set updates one key of cfg from its string form
func Set(cfg *Config, key, value string) error {
	fn, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := fn(cfg, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return nil
}

// Keys returns the settable config keys, sorted
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
