package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPortal_Key(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "https URL",
			url:  "https://portal.campus.edu",
			want: "portal.campus.edu",
		},
		{
			name: "URL with port",
			url:  "http://127.0.0.1:8000",
			want: "127.0.0.1:8000",
		},
		{
			name: "URL with path",
			url:  "https://campus.edu/portal/",
			want: "campus.edu",
		},
		{
			name: "trailing slash stripped when unparseable as host",
			url:  "portal.campus.edu/",
			want: "portal.campus.edu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Portal{URL: tt.url}
			if got := p.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindConfigFile_SearchesParentDirectories(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "unilife-config-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfgPath := filepath.Join(tempDir, ConfigFileName)
	if err := Save(cfgPath, &Config{Portals: []Portal{{URL: "https://campus.edu", Alias: "campus"}}}); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	nested := filepath.Join(tempDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	originalDir, _ := os.Getwd()
	os.Chdir(nested)
	defer os.Chdir(originalDir)

	found, err := FindConfigFile()
	if err != nil {
		t.Fatalf("FindConfigFile() failed: %v", err)
	}

	// Resolve symlinks so macOS /var vs /private/var temp paths compare equal
	wantResolved, _ := filepath.EvalSymlinks(cfgPath)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("FindConfigFile() = %q, want %q", found, cfgPath)
	}
}

func TestLoadFromCurrentDir_SynthesizesFromEnv(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "unilife-config-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	originalDir, _ := os.Getwd()
	os.Chdir(tempDir)
	defer os.Chdir(originalDir)

	t.Setenv("UNILIFE_PORTAL_URL", "https://env.campus.edu")

	cfg, err := LoadFromCurrentDir()
	if err != nil {
		t.Fatalf("LoadFromCurrentDir() failed: %v", err)
	}

	if len(cfg.Portals) != 1 {
		t.Fatalf("expected 1 synthesized portal, got %d", len(cfg.Portals))
	}
	if cfg.Portals[0].URL != "https://env.campus.edu" {
		t.Errorf("portal URL = %q, want %q", cfg.Portals[0].URL, "https://env.campus.edu")
	}
}

func TestLoad_AppliesEnvOverridesAndDefaults(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "unilife-config-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	cfgPath := filepath.Join(tempDir, ConfigFileName)
	if err := Save(cfgPath, &Config{Portals: []Portal{{URL: "https://campus.edu", Alias: "campus"}}}); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(cfgPath)
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if cfg.LogLevel != "warn" {
			t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
		}
		if cfg.LogFormat != "console" {
			t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "console")
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("UNILIFE_LOG_LEVEL", "debug")
		cfg, err := Load(cfgPath)
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
		}
	})
}

func TestGetPortalByAlias(t *testing.T) {
	cfg := &Config{Portals: []Portal{
		{URL: "https://campus.edu", Alias: "campus"},
		{URL: "https://staging.campus.edu", Alias: "staging"},
	}}

	portal, err := cfg.GetPortalByAlias("staging")
	if err != nil {
		t.Fatalf("GetPortalByAlias() failed: %v", err)
	}
	if portal.URL != "https://staging.campus.edu" {
		t.Errorf("URL = %q, want %q", portal.URL, "https://staging.campus.edu")
	}

	if _, err := cfg.GetPortalByAlias("missing"); err == nil {
		t.Error("expected error for unknown alias, got nil")
	}
}
