// Package config loads runtime settings from defaults, an optional config
// file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port               string
	DatabaseURL        string
	JWTSecret          string
	TokenTTL           time.Duration
	BcryptCost         int
	StaticDir          string
	CorsAllowedOrigins []string
	LogLevel           string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5002")
	v.SetDefault("database_url", "blog.db")
	v.SetDefault("jwt_secret_key", "blog-secret-key-2026")
	v.SetDefault("token_ttl", "15m")
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("static_dir", "frontend/dist")
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("log_level", "info")
}

// Load reads blog.yaml from the working directory (or the file named by
// CONFIG_FILE) when present, then applies environment overrides such as
// PORT, DATABASE_URL and JWT_SECRET_KEY.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("blog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:               strings.TrimSpace(v.GetString("port")),
		DatabaseURL:        strings.TrimSpace(v.GetString("database_url")),
		JWTSecret:          v.GetString("jwt_secret_key"),
		TokenTTL:           v.GetDuration("token_ttl"),
		BcryptCost:         v.GetInt("bcrypt_cost"),
		StaticDir:          strings.TrimSpace(v.GetString("static_dir")),
		CorsAllowedOrigins: splitCSV(v.GetString("cors_allowed_origins")),
		LogLevel:           v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Port == "":
		return errors.New("PORT must not be empty")
	case c.DatabaseURL == "":
		return errors.New("DATABASE_URL must not be empty")
	case c.JWTSecret == "":
		return errors.New("JWT_SECRET_KEY must not be empty")
	case c.TokenTTL <= 0:
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	case c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost:
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
