package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"church_backend/pkg/utils"

	"github.com/spf13/viper"
)

// Config is the runtime configuration of the API, read from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	SMS      SMSConfig
	CORS     CORSConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// SMSConfig points at the bulk SMS gateway. An empty APIURL disables delivery.
type SMSConfig struct {
	APIURL  string
	APIKey  string
	Sender  string
	Timeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

var ErrMissingSecret = errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")

func defaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "church")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("ACCESS_TOKEN_SECRET", "")
	v.SetDefault("REFRESH_TOKEN_SECRET", "")
	v.SetDefault("ACCESS_TOKEN_TTL", utils.DefaultAccessTokenTTL)
	v.SetDefault("REFRESH_TOKEN_TTL", utils.DefaultRefreshTokenTTL)
	v.SetDefault("MESSAGE_API", "")
	v.SetDefault("MESSAGE_API_KEY", "")
	v.SetDefault("SENDER", "")
	v.SetDefault("MESSAGE_API_TIMEOUT", 15*time.Second)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
}

// Load reads .env files (when present) and the process environment into a Config.
func Load(envFiles ...string) (*Config, error) {
	if err := utils.LoadDotEnv(envFiles...); err != nil {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			GinMode: v.GetString("GIN_MODE"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			AccessSecret:  v.GetString("ACCESS_TOKEN_SECRET"),
			RefreshSecret: v.GetString("REFRESH_TOKEN_SECRET"),
			AccessTTL:     v.GetDuration("ACCESS_TOKEN_TTL"),
			RefreshTTL:    v.GetDuration("REFRESH_TOKEN_TTL"),
		},
		SMS: SMSConfig{
			APIURL:  v.GetString("MESSAGE_API"),
			APIKey:  v.GetString("MESSAGE_API_KEY"),
			Sender:  v.GetString("SENDER"),
			Timeout: v.GetDuration("MESSAGE_API_TIMEOUT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
	}
	return cfg, nil
}

// Validate reports settings the server cannot start without.
// Migrations only need the database section and skip it.
func (c *Config) Validate() error {
	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		return ErrMissingSecret
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
