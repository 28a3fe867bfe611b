package config

// Config represents the core explbot configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Display  DisplayConfig  `mapstructure:"display"`
	Rate     RateConfig     `mapstructure:"rate"`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig configures the explbot command transport
type ServerConfig struct {
	ListenAddr     string   `mapstructure:"listen_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DisplayConfig configures how entry timestamps are rendered in responses.
// Timezone is an IANA zone name; TimeFormat is a Go reference-time layout.
type DisplayConfig struct {
	Timezone   string `mapstructure:"timezone"`
	TimeFormat string `mapstructure:"time_format"`
}

// RateConfig configures per-user command rate limiting
type RateConfig struct {
	CommandsPerMinute int `mapstructure:"commands_per_minute"` // sustained rate (default: 30)
	Burst             int `mapstructure:"burst"`               // burst allowance (default: 5)
}
