package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Display.PaceUnit != "min/km" {
		t.Errorf("Display.PaceUnit = %q, want %q", cfg.Display.PaceUnit, "min/km")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Database.Path != "" {
		t.Errorf("Database.Path should be empty, got %q", cfg.Database.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errContains string
	}{
		{
			name: "valid config",
			config: Config{
				Display: DisplayConfig{PaceUnit: "min/mi"},
				Server:  ServerConfig{Addr: "127.0.0.1:9000"},
			},
			expectError: false,
		},
		{
			name: "empty pace unit is allowed",
			config: Config{
				Server: ServerConfig{Addr: ":8080"},
			},
			expectError: false,
		},
		{
			name: "bad pace unit",
			config: Config{
				Display: DisplayConfig{PaceUnit: "km/h"},
				Server:  ServerConfig{Addr: ":8080"},
			},
			expectError: true,
			errContains: "pace_unit",
		},
		{
			name: "missing server address",
			config: Config{
				Display: DisplayConfig{PaceUnit: "min/km"},
			},
			expectError: true,
			errContains: "server.addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		if !errors.Is(err, ErrNoConfig) {
			t.Errorf("Load() error = %v, want ErrNoConfig", err)
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		if err := os.WriteFile(path, []byte("database:\n  path: /tmp/vdot.db\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Database.Path != "/tmp/vdot.db" {
			t.Errorf("Database.Path = %q, want /tmp/vdot.db", cfg.Database.Path)
		}
		if cfg.Display.PaceUnit != "min/km" {
			t.Errorf("Display.PaceUnit = %q, want default min/km", cfg.Display.PaceUnit)
		}
		if cfg.Server.Addr != ":8080" {
			t.Errorf("Server.Addr = %q, want default :8080", cfg.Server.Addr)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("display: [unclosed"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil || errors.Is(err, ErrNoConfig) {
			t.Errorf("Load() error = %v, want parse error", err)
		}
	})
}

func TestSaveAndCreateExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	if err := CreateExample(path); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("example config = %+v, want defaults", *cfg)
	}

	cfg.Display.PaceUnit = "min/mi"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// CreateExample must not overwrite an existing file
	if err := CreateExample(path); err != nil {
		t.Fatalf("CreateExample() error = %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if reloaded.Display.PaceUnit != "min/mi" {
		t.Errorf("Display.PaceUnit = %q after CreateExample, want min/mi", reloaded.Display.PaceUnit)
	}
}
