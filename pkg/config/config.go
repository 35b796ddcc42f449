package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/ideamans/accountclient/pkg/shared/kvs"
	"github.com/ideamans/accountclient/pkg/shared/logging"
)

// Config represents the application configuration
type Config struct {
	API     APIConfig     `yaml:"api" json:"api"`
	Routes  RoutesConfig  `yaml:"routes" json:"routes"`
	Storage kvs.Config    `yaml:"storage" json:"storage"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig locates the account API
type APIConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"` // e.g. "http://localhost:8080"
	Timeout string `yaml:"timeout" json:"timeout"`   // Per-request timeout (default: "10s")
}

// GetTimeout returns the request timeout as a time.Duration
func (a APIConfig) GetTimeout() (time.Duration, error) {
	return time.ParseDuration(a.Timeout)
}

// RoutesConfig contains the redirect targets and the mount point of the
// account screens. An empty redirect target disables that redirect.
type RoutesConfig struct {
	OnAuthRoute      string `yaml:"on_auth_route" json:"on_auth_route"`           // Where to go after signing in (e.g. "/")
	RequireAuthRoute string `yaml:"require_auth_route" json:"require_auth_route"` // Where to go while signed out (e.g. "/authenticate")
	BasePath         string `yaml:"base_path" json:"base_path"`                   // default: "/account/"
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string        `yaml:"level" json:"level"`
	Color bool          `yaml:"color" json:"color"`
	File  LogFileConfig `yaml:"file" json:"file"`
}

// LogFileConfig enables a rotated log file in addition to stderr
type LogFileConfig struct {
	Path       string `yaml:"path" json:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAge     int    `yaml:"max_age" json:"max_age"` // days
	Compress   bool   `yaml:"compress" json:"compress"`
}

// FileRotation converts the file settings for logging.NewLoggerWithFile.
// It returns nil when no path is set.
func (l LoggingConfig) FileRotation() *logging.FileRotationConfig {
	if l.File.Path == "" {
		return nil
	}
	return &logging.FileRotationConfig{
		Path:       l.File.Path,
		MaxSizeMB:  l.File.MaxSizeMB,
		MaxBackups: l.File.MaxBackups,
		MaxAge:     l.File.MaxAge,
		Compress:   l.File.Compress,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrBaseURLRequired
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if c.API.Timeout != "" {
		d, err := c.API.GetTimeout()
		if err != nil || d <= 0 {
			return ErrInvalidTimeout
		}
	}

	for _, route := range []string{c.Routes.OnAuthRoute, c.Routes.RequireAuthRoute} {
		if route != "" && !strings.HasPrefix(route, "/") {
			return ErrInvalidRoute
		}
	}

	switch c.Storage.Type {
	case "", "leveldb", "memory":
	case "redis":
		if c.Storage.Redis.Addr == "" {
			return ErrRedisAddrRequired
		}
	default:
		return ErrUnsupportedStorage
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrInvalidLogLevel
	}

	return nil
}
