package app

import (
	"github.com/ideamans/accountclient/pkg/config"
	"github.com/ideamans/accountclient/pkg/router"
	"github.com/ideamans/accountclient/pkg/shared/kvs"
)

// DefaultConfig returns the configuration used when no config file exists:
// a local account API and tokens in the per-user LevelDB store.
func DefaultConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: config.DefaultTimeout,
		},
		Routes: config.RoutesConfig{
			OnAuthRoute:      "/",
			RequireAuthRoute: "/authenticate",
			BasePath:         router.DefaultBasePath,
		},
		Storage: kvs.Config{
			Type: "leveldb",
		},
		Logging: config.LoggingConfig{
			Level: "info",
		},
	}
}
