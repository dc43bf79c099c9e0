// Package config loads and validates application configuration from
// environment variables and an optional config file.
package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig contains the HTTP server and logging settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port"       validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"omitempty,oneof=json console"`
}

// DatabaseConfig contains the optional durable-backend settings. When URL is
// empty the server runs on the in-memory store.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// AuthConfig contains the token-to-identity mapping settings. TokenMapJSON is
// a JSON object of credential to identity, normally supplied through the
// VAULT_TOKEN_MAP_JSON environment variable.
type AuthConfig struct {
	TokenMapJSON string `mapstructure:"token_map_json"`
}
