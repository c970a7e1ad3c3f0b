// Package config loads dashboard settings through Viper and builds the
// process logger from them.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the fully resolved client configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Poll    PollConfig    `mapstructure:"poll"`
	Logs    LogsConfig    `mapstructure:"logs"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig locates the Talos agent backend.
type ServerConfig struct {
	URL string `mapstructure:"url"`
}

// AuthConfig seeds the credential store. The secret is typically left
// empty and filled in through the 401 reprompt flow.
type AuthConfig struct {
	Identity string `mapstructure:"identity"`
	Secret   string `mapstructure:"secret"`
}

// PollConfig holds the three independent polling cadences.
type PollConfig struct {
	HealthInterval  time.Duration `mapstructure:"health_interval"`
	MetricsInterval time.Duration `mapstructure:"metrics_interval"`
	SkillsInterval  time.Duration `mapstructure:"skills_interval"`
}

// LogsConfig tunes the streaming log channel.
type LogsConfig struct {
	BufferCapacity int           `mapstructure:"buffer_capacity"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
}

// LoggingConfig controls the process's own zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NewViper creates a Viper instance with dashboard defaults and
// TALOSWATCH_* environment binding.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.url", "http://localhost:8080")
	v.SetDefault("auth.identity", "admin")
	v.SetDefault("auth.secret", "")
	v.SetDefault("poll.health_interval", 10*time.Second)
	v.SetDefault("poll.metrics_interval", 5*time.Second)
	v.SetDefault("poll.skills_interval", 15*time.Second)
	v.SetDefault("logs.buffer_capacity", 500)
	v.SetDefault("logs.reconnect_delay", 3*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("TALOSWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load resolves the configuration, optionally merging a config file.
func Load(path string) (*Config, error) {
	v := NewViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Server.URL == "" {
		return nil, fmt.Errorf("server.url must not be empty")
	}
	return &cfg, nil
}

// WebSocketURL derives the log stream endpoint from the server base URL.
func (c *Config) WebSocketURL() string {
	base := strings.TrimRight(c.Server.URL, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/ws/logs"
}
