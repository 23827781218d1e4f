// Package config defines shared configuration types.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// GetAddr returns the server address in host:port format.
func (c ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Charset  string `mapstructure:"charset"`
}

// GetDSN returns the MySQL data source name.
func (c DatabaseConfig) GetDSN() string {
	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=UTC",
		c.User, c.Password, c.Host, c.Port, c.Name, charset)
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// RedisConfig holds redis connection configuration.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GetAddr returns the redis address in host:port format.
func (c RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AuthConfig holds token lifecycle configuration.
type AuthConfig struct {
	AccessDurationSeconds     int    `mapstructure:"access_duration_seconds"`
	RefreshDurationSeconds    int    `mapstructure:"refresh_duration_seconds"`
	MinRefreshIntervalSeconds int    `mapstructure:"min_refresh_interval_seconds"`
	TokenVersion              string `mapstructure:"token_version"`
	BcryptCost                int    `mapstructure:"bcrypt_cost"`
}

// AccessDuration returns the access token lifetime.
func (c AuthConfig) AccessDuration() time.Duration {
	return time.Duration(c.AccessDurationSeconds) * time.Second
}

// RefreshDuration returns the refresh token lifetime.
func (c AuthConfig) RefreshDuration() time.Duration {
	return time.Duration(c.RefreshDurationSeconds) * time.Second
}

// MinRefreshInterval returns the window within which a repeated refresh
// request replays the previous rotation instead of rotating again.
func (c AuthConfig) MinRefreshInterval() time.Duration {
	return time.Duration(c.MinRefreshIntervalSeconds) * time.Second
}

// RateLimitConfig holds login rate limit configuration.
type RateLimitConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	PerMinute int  `mapstructure:"per_minute"`
	PerHour   int  `mapstructure:"per_hour"`
}
