package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// demoConfig is the resolved configuration for the demo host.
type demoConfig struct {
	ServerCommand string
	ServerPath    string
	ServerArgs    []string
	CallTimeout   time.Duration
	Debug         bool
}

// fileConfig is the randdemo config.toml key mapping.
type fileConfig struct {
	ServerCommand string   `toml:"server_command"`
	ServerPath    string   `toml:"server_path"`
	ServerArgs    []string `toml:"server_args"`
	CallTimeout   string   `toml:"call_timeout"`
	Debug         bool     `toml:"debug"`
}

func defaultConfig() demoConfig {
	return demoConfig{
		CallTimeout: 30 * time.Second,
	}
}

// loadConfig overlays config.toml (if present) and environment variables on
// the defaults. Environment wins over file: RANDMCP_SERVER_COMMAND,
// RANDMCP_SERVER_PATH, RANDMCP_CALL_TIMEOUT, RANDMCP_DEBUG.
func loadConfig(path string) (demoConfig, error) {
	cfg := defaultConfig()

	if path != "" {
		var raw fileConfig

		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return demoConfig{}, fmt.Errorf("load demo config: %w", err)
		}

		if meta.IsDefined("server_command") {
			cfg.ServerCommand = strings.TrimSpace(raw.ServerCommand)
		}

		if meta.IsDefined("server_path") {
			cfg.ServerPath = strings.TrimSpace(raw.ServerPath)
		}

		if meta.IsDefined("server_args") {
			cfg.ServerArgs = raw.ServerArgs
		}

		if meta.IsDefined("call_timeout") {
			timeout, err := time.ParseDuration(raw.CallTimeout)
			if err != nil {
				return demoConfig{}, fmt.Errorf("parse call_timeout: %w", err)
			}

			cfg.CallTimeout = timeout
		}

		if meta.IsDefined("debug") {
			cfg.Debug = raw.Debug
		}
	}

	if v := os.Getenv("RANDMCP_SERVER_COMMAND"); v != "" {
		cfg.ServerCommand = v
	}

	if v := os.Getenv("RANDMCP_SERVER_PATH"); v != "" {
		cfg.ServerPath = v
	}

	if v := os.Getenv("RANDMCP_CALL_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return demoConfig{}, fmt.Errorf("parse RANDMCP_CALL_TIMEOUT: %w", err)
		}

		cfg.CallTimeout = timeout
	}

	if v := os.Getenv("RANDMCP_DEBUG"); v != "" {
		cfg.Debug = v != "0" && !strings.EqualFold(v, "false")
	}

	return cfg, nil
}
