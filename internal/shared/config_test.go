package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Storage.Driver != DriverJSON {
			t.Errorf("expected storage driver json, got %s", config.Storage.Driver)
		}

		if config.Storage.Path != "./data/songs.json" {
			t.Errorf("expected storage path ./data/songs.json, got %s", config.Storage.Path)
		}

		if !config.Storage.Seed {
			t.Error("expected seeding to be enabled by default")
		}

		if config.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", config.Server.Port)
		}

		if config.Server.RateLimit != 0 {
			t.Errorf("expected rate limiting to be off by default, got %v", config.Server.RateLimit)
		}

		if config.Client.BaseURL != "http://127.0.0.1:5000" {
			t.Errorf("expected client base URL http://127.0.0.1:5000, got %s", config.Client.BaseURL)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Storage.Path != defaultConfig.Storage.Path {
			t.Errorf("created config storage path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
host = "0.0.0.0"
port = 8080

[storage]
driver = "sqlite"
seed = false

[database]
path = "/custom/songs.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}

		if config.Storage.Driver != DriverSQLite {
			t.Errorf("expected sqlite driver, got %s", config.Storage.Driver)
		}

		if config.Storage.Seed {
			t.Error("expected seed to be disabled")
		}

		if config.Database.Path != "/custom/songs.db" {
			t.Errorf("expected database path /custom/songs.db, got %s", config.Database.Path)
		}

		if config.Client.TimeoutSeconds != 10 {
			t.Errorf("missing keys should keep defaults, got timeout %d", config.Client.TimeoutSeconds)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server\nport = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tc := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "sqlite", mutate: func(c *Config) { c.Storage.Driver = DriverSQLite }},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }, wantErr: true},
		{name: "json without path", mutate: func(c *Config) { c.Storage.Path = "" }, wantErr: true},
		{name: "sqlite without path", mutate: func(c *Config) {
			c.Storage.Driver = DriverSQLite
			c.Database.Path = ""
		}, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("PORT", "7070")
		t.Setenv("SONGMAN_DATA_FILE", "/tmp/songs.json")
		t.Setenv("SONGMAN_STORAGE_DRIVER", "sqlite")
		t.Setenv("SONGMAN_API_URL", "http://example.com")
		t.Setenv("SONGMAN_LOG_LEVEL", "debug")

		c := DefaultConfig()
		if err := c.ApplyEnv(); err != nil {
			t.Fatalf("ApplyEnv failed: %v", err)
		}

		if c.Server.Port != 7070 {
			t.Errorf("expected port 7070, got %d", c.Server.Port)
		}
		if c.Storage.Path != "/tmp/songs.json" {
			t.Errorf("expected data file override, got %s", c.Storage.Path)
		}
		if c.Storage.Driver != DriverSQLite {
			t.Errorf("expected sqlite driver, got %s", c.Storage.Driver)
		}
		if c.Client.BaseURL != "http://example.com" {
			t.Errorf("expected api url override, got %s", c.Client.BaseURL)
		}
		if c.Log.Level != "debug" {
			t.Errorf("expected debug level, got %s", c.Log.Level)
		}
	})

	t.Run("Invalid Port", func(t *testing.T) {
		t.Setenv("PORT", "abc")
		c := DefaultConfig()
		if err := c.ApplyEnv(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadEnvFiles", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte("SONGMAN_TEST_ONLY_VAR=from-dotenv\n"), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		t.Cleanup(func() { os.Unsetenv("SONGMAN_TEST_ONLY_VAR") })

		if err := LoadEnvFiles(filepath.Join(t.TempDir(), "missing.env"), envPath); err != nil {
			t.Fatalf("LoadEnvFiles failed: %v", err)
		}

		if got := os.Getenv("SONGMAN_TEST_ONLY_VAR"); got != "from-dotenv" {
			t.Errorf("expected from-dotenv, got %q", got)
		}
	})
}
