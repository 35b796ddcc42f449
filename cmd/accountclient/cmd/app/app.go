// Package app wires the account client components together for the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/ideamans/accountclient/pkg/account"
	"github.com/ideamans/accountclient/pkg/config"
	"github.com/ideamans/accountclient/pkg/gateway"
	"github.com/ideamans/accountclient/pkg/guard"
	"github.com/ideamans/accountclient/pkg/router"
	"github.com/ideamans/accountclient/pkg/session"
	"github.com/ideamans/accountclient/pkg/shared/kvs"
	"github.com/ideamans/accountclient/pkg/shared/logging"
	"github.com/ideamans/accountclient/pkg/tokenstore"
)

// Options configures New
type Options struct {
	ConfigPath string
	// LogLevel overrides logging.level from the config file when set.
	LogLevel string
	// Logger is used instead of building one from the config.
	Logger logging.Logger
}

// App holds the wired components. Close releases them.
type App struct {
	Config  *config.Config
	Logger  logging.Logger
	Store   kvs.Store
	Tokens  *tokenstore.Store
	Gateway *gateway.Gateway
	Session *session.Store
	Router  *router.Router
	Account *account.Client

	detachGuard func()
}

// LoadConfig reads path, falling back to DefaultConfig when the file does
// not exist. The bool reports whether the defaults were used.
func LoadConfig(path string) (*config.Config, bool, error) {
	if path == "" {
		return DefaultConfig(), true, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), true, nil
	}
	cfg, err := config.NewFileLoader(path).Load()
	if err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}

// NewLogger builds the application logger from the logging section.
// A non-empty levelOverride wins over cfg.Level.
func NewLogger(cfg config.LoggingConfig, levelOverride string) (*logging.SimpleLogger, error) {
	level := cfg.Level
	if levelOverride != "" {
		level = levelOverride
	}
	return logging.NewLoggerWithFile("accountclient", logging.ParseLevel(level), cfg.Color, cfg.FileRotation())
}

// New loads the configuration, opens token storage, installs the session
// store and attaches the route guard to the router.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, usedDefaults, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		l, err := NewLogger(cfg.Logging, opts.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l
	}
	if usedDefaults {
		logger.Warn("Config file not found, using default configuration", "path", opts.ConfigPath)
	}

	timeout, err := cfg.API.GetTimeout()
	if err != nil {
		return nil, fmt.Errorf("invalid api timeout: %w", err)
	}

	gw, err := gateway.New(cfg.API.BaseURL, &http.Client{Timeout: timeout}, logger)
	if err != nil {
		return nil, err
	}

	store, err := kvs.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open token storage: %w", err)
	}
	tokens := tokenstore.New(store)

	sess := session.New(session.Options{
		Requester: gw,
		Tokens:    tokens,
		Routes: session.Routes{
			OnAuthRoute:      cfg.Routes.OnAuthRoute,
			RequireAuthRoute: cfg.Routes.RequireAuthRoute,
		},
		Logger: logger,
	})
	rt := router.New(cfg.Routes.BasePath, nil, logger)
	_, detach := guard.UseAuth(session.NewContext(ctx, sess), rt, logger)

	logger.Debug("Account client initialized",
		"api", cfg.API.BaseURL,
		"storage", cfg.Storage.Type,
		"base_path", rt.Base(),
	)

	return &App{
		Config:      cfg,
		Logger:      logger,
		Store:       store,
		Tokens:      tokens,
		Gateway:     gw,
		Session:     sess,
		Router:      rt,
		Account:     account.New(gw, sess, logger),
		detachGuard: detach,
	}, nil
}

// Close detaches the guard and closes token storage.
func (a *App) Close() error {
	a.detachGuard()
	return a.Store.Close()
}
