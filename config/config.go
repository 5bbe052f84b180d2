// Package config provides server configuration loaded from environment
// variables. Configuration is consumed by main and by handlers; the
// dispatcher core itself never reads it.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds mcp-template configuration.
type Config struct {
	// ServerName is used in diagnostic log output.
	ServerName string `envconfig:"SERVER_NAME" default:"mcp-template"`

	// LogLevel: debug, info, warn, or error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// ResourceFile optionally overrides the usage-guide resource content.
	ResourceFile string `envconfig:"RESOURCE_FILE"`

	// ToolRPS, when positive, throttles the add-numbers tool to this many
	// requests per second with ToolBurst of headroom.
	ToolRPS   float64 `envconfig:"TOOL_RPS"`
	ToolBurst int     `envconfig:"TOOL_BURST" default:"1"`
}

// Load reads configuration from MCP_-prefixed environment variables.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("mcp", &c); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	if c.ToolRPS < 0 {
		return nil, fmt.Errorf("MCP_TOOL_RPS must not be negative")
	}
	return &c, nil
}
