package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// NotifyConfig holds the WhatsApp gateway settings.
type NotifyConfig struct {
	Enabled        bool   `toml:"enabled"`
	GatewayURL     string `toml:"gateway_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// AppConfig is the file-based portion of configuration. Connection settings
// (database, redis, object storage) come from the environment in main.
type AppConfig struct {
	Notify NotifyConfig `toml:"notify"`
}

// LoadAppConfig loads configuration from a TOML file.
func LoadAppConfig(filename string) (*AppConfig, error) {
	config := &AppConfig{}
	if _, err := toml.DecodeFile(filename, config); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if config.Notify.TimeoutSeconds <= 0 {
		config.Notify.TimeoutSeconds = 10
	}
	return config, nil
}
