package model

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DemoConfig holds the fixed identity used for the demo account.
type DemoConfig struct {
	Email    string `mapstructure:"email" yaml:"email"`
	Password string `mapstructure:"password" yaml:"password"`
}

// AppConfig is the top-level service configuration.
type AppConfig struct {
	// ListenAddr is the HTTP bind address (e.g., ":8080").
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`

	// DBPath is the SQLite database file path. ":memory:" is accepted.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// SessionTTLHours is how long a sign-in stays valid.
	SessionTTLHours int `mapstructure:"session_ttl_hours" yaml:"session_ttl_hours"`

	// LogLevel is "debug", "info", "warn", or "error".
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	Demo DemoConfig `mapstructure:"demo" yaml:"demo"`
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		ListenAddr:      ":8080",
		DBPath:          "taskvault.db",
		SessionTTLHours: 72,
		LogLevel:        "info",
		Demo: DemoConfig{
			Email:    "demo@taskvault.com",
			Password: "demo123456",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper,
// with TASKVAULT_* environment variables taking precedence over file values.
// If the file does not exist, it returns the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_path", "taskvault.db")
	v.SetDefault("session_ttl_hours", 72)
	v.SetDefault("log_level", "info")
	v.SetDefault("demo.email", "demo@taskvault.com")
	v.SetDefault("demo.password", "demo123456")

	v.SetEnvPrefix("taskvault")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return unmarshalConfig(v)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return unmarshalConfig(v)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return unmarshalConfig(v)
}

func unmarshalConfig(v *viper.Viper) (*AppConfig, error) {
	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
