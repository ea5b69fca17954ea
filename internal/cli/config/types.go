// Package config provides configuration management for the granite-ide CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	ToolPath     string `koanf:"tool_path"`
}

// Default configuration values.
const (
	DefaultHost   = "127.0.0.1"
	DefaultPort   = 8765
	DefaultOutput = "table"
)
