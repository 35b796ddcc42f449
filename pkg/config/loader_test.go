package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestFileLoader_Load(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  error
		validate func(*testing.T, *Config)
	}{
		{
			name: "valid config",
			content: `
api:
  base_url: "https://accounts.example.com"
  timeout: "3s"

routes:
  on_auth_route: "/"
  require_auth_route: "/authenticate"
  base_path: "/me/"

storage:
  type: "redis"
  namespace: "accountclient"
  redis:
    addr: "localhost:6379"
    db: 2

logging:
  level: "debug"
  color: true
  file:
    path: "/tmp/accountclient.log"
    max_backups: 5
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.API.BaseURL != "https://accounts.example.com" {
					t.Errorf("API.BaseURL = %s, want https://accounts.example.com", cfg.API.BaseURL)
				}
				if d, _ := cfg.API.GetTimeout(); d != 3*time.Second {
					t.Errorf("API.GetTimeout() = %v, want 3s", d)
				}
				if cfg.Routes.OnAuthRoute != "/" || cfg.Routes.RequireAuthRoute != "/authenticate" {
					t.Errorf("Routes = %+v", cfg.Routes)
				}
				if cfg.Routes.BasePath != "/me/" {
					t.Errorf("Routes.BasePath = %s, want /me/", cfg.Routes.BasePath)
				}
				if cfg.Storage.Type != "redis" || cfg.Storage.Redis.Addr != "localhost:6379" || cfg.Storage.Redis.DB != 2 {
					t.Errorf("Storage = %+v", cfg.Storage)
				}
				if !cfg.Logging.Color {
					t.Error("Logging.Color = false, want true")
				}
				rotation := cfg.Logging.FileRotation()
				if rotation == nil || rotation.Path != "/tmp/accountclient.log" || rotation.MaxBackups != 5 {
					t.Errorf("Logging.FileRotation() = %+v", rotation)
				}
			},
		},
		{
			name: "apply defaults",
			content: `
api:
  base_url: "http://localhost:8080"
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.API.Timeout != DefaultTimeout {
					t.Errorf("API.Timeout = %s, want %s (default)", cfg.API.Timeout, DefaultTimeout)
				}
				if cfg.Routes.BasePath != "/account/" {
					t.Errorf("Routes.BasePath = %s, want /account/ (default)", cfg.Routes.BasePath)
				}
				if cfg.Routes.OnAuthRoute != "" || cfg.Routes.RequireAuthRoute != "" {
					t.Errorf("redirect routes should stay disabled by default, got %+v", cfg.Routes)
				}
				if cfg.Storage.Type != "leveldb" {
					t.Errorf("Storage.Type = %s, want leveldb (default)", cfg.Storage.Type)
				}
				if cfg.Logging.Level != "info" {
					t.Errorf("Logging.Level = %s, want info (default)", cfg.Logging.Level)
				}
				if cfg.Logging.FileRotation() != nil {
					t.Error("Logging.FileRotation() should be nil without a path")
				}
			},
		},
		{
			name:    "invalid YAML",
			content: "this is not valid yaml: [\n",
			wantErr: errors.New("any"),
		},
		{
			name:    "missing base URL",
			content: "logging:\n  level: debug\n",
			wantErr: ErrBaseURLRequired,
		},
		{
			name:    "base URL without scheme",
			content: "api:\n  base_url: localhost:8080\n",
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "bad timeout",
			content: "api:\n  base_url: http://localhost:8080\n  timeout: soon\n",
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "relative route",
			content: "api:\n  base_url: http://localhost:8080\nroutes:\n  on_auth_route: details\n",
			wantErr: ErrInvalidRoute,
		},
		{
			name:    "unknown storage",
			content: "api:\n  base_url: http://localhost:8080\nstorage:\n  type: etcd\n",
			wantErr: ErrUnsupportedStorage,
		},
		{
			name:    "redis without addr",
			content: "api:\n  base_url: http://localhost:8080\nstorage:\n  type: redis\n",
			wantErr: ErrRedisAddrRequired,
		},
		{
			name:    "unknown log level",
			content: "api:\n  base_url: http://localhost:8080\nlogging:\n  level: verbose\n",
			wantErr: ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewFileLoader(writeConfig(t, "config.yaml", tt.content))
			cfg, err := loader.Load()

			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("Load() should return an error")
				}
				if tt.wantErr.Error() != "any" && !errors.Is(err, tt.wantErr) {
					t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	loader := NewFileLoader("/nonexistent/path/config.yaml")
	_, err := loader.Load()

	if !errors.Is(err, ErrConfigFileNotFound) {
		t.Errorf("Load() error = %v, want ErrConfigFileNotFound", err)
	}
}

func TestFileLoader_Load_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "api": {"base_url": "http://localhost:8080", "timeout": "5s"},
  "routes": {"on_auth_route": "/", "require_auth_route": "/authenticate"},
  "storage": {"type": "memory"}
}`)

	cfg, err := NewFileLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Timeout != "5s" {
		t.Errorf("API.Timeout = %s, want 5s", cfg.API.Timeout)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("Storage.Type = %s, want memory", cfg.Storage.Type)
	}
	if cfg.Routes.RequireAuthRoute != "/authenticate" {
		t.Errorf("Routes.RequireAuthRoute = %s, want /authenticate", cfg.Routes.RequireAuthRoute)
	}
}

func TestFileLoader_Load_UnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", `base_url = "http://localhost:8080"`)

	if _, err := NewFileLoader(path).Load(); err == nil {
		t.Error("Load() should reject .toml files")
	}
}

func TestFileLoader_Load_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_ACCOUNT_API_URL", "https://api.example.com")
	path := writeConfig(t, "config.yaml", `
api:
  base_url: ${TEST_ACCOUNT_API_URL}
  timeout: ${TEST_ACCOUNT_API_TIMEOUT:-7s}
`)

	cfg, err := NewFileLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("API.BaseURL = %s, want https://api.example.com", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != "7s" {
		t.Errorf("API.Timeout = %s, want 7s", cfg.API.Timeout)
	}
}
