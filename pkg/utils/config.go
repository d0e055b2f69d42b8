package utils

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// DefaultConfigPath is read when --config is not given.
const DefaultConfigPath = ".env"

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Session  SessionConfig
}

type AppConfig struct {
	Name         string
	Debug        bool
	LogPath      string
	OutputFormat string
}

type DatabaseConfig struct {
	Path        string
	BusyTimeout time.Duration
}

type AuthConfig struct {
	BcryptCost    int
	AdminUsername string
	AdminPassword string
}

// SessionConfig holds fallback credentials for guarded commands.
type SessionConfig struct {
	Username string
	Password string
}

// LoadConfig reads the optional env file at path, then the environment.
// A missing file is fine; a file that exists but cannot be parsed is not.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "storefront")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("OUTPUT_FORMAT", "text")
	v.SetDefault("DB_PATH", "app.db")
	v.SetDefault("DB_BUSY_TIMEOUT_MS", 5000)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:         v.GetString("APP_NAME"),
			Debug:        v.GetBool("DEBUG"),
			LogPath:      v.GetString("LOG_PATH"),
			OutputFormat: strings.ToLower(v.GetString("OUTPUT_FORMAT")),
		},
		Database: DatabaseConfig{
			Path:        v.GetString("DB_PATH"),
			BusyTimeout: time.Duration(v.GetInt("DB_BUSY_TIMEOUT_MS")) * time.Millisecond,
		},
		Auth: AuthConfig{
			BcryptCost:    v.GetInt("BCRYPT_COST"),
			AdminUsername: v.GetString("ADMIN_USERNAME"),
			AdminPassword: v.GetString("ADMIN_PASSWORD"),
		},
		Session: SessionConfig{
			Username: v.GetString("STOREFRONT_USER"),
			Password: v.GetString("STOREFRONT_PASSWORD"),
		},
	}

	if config.Auth.BcryptCost < bcrypt.MinCost || config.Auth.BcryptCost > bcrypt.MaxCost {
		config.Auth.BcryptCost = bcrypt.DefaultCost
	}

	return config, nil
}
