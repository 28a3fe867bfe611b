package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "explbot.db")

	// Server defaults
	v.SetDefault("server.listen_addr", ":8790")
	v.SetDefault("server.allowed_origins", []string{})

	// Display defaults for entry timestamps
	v.SetDefault("display.timezone", "Europe/Helsinki")
	v.SetDefault("display.time_format", "2.1.2006 15:04")

	// Rate limiting defaults
	v.SetDefault("rate.commands_per_minute", 30)
	v.SetDefault("rate.burst", 5)
}
