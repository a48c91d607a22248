package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 600 || cfg.RefreshHz != 60 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
backend: sim
window:
  width: 1024
dark_mode: true
rescan_interval: 250ms
profiles: /tmp/labels.profile
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend != "sim" || !cfg.DarkMode || cfg.Profiles != "/tmp/labels.profile" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 600 {
		t.Fatalf("window = %+v, want 1024x600", cfg.Window)
	}
	if time.Duration(cfg.RescanInterval) != 250*time.Millisecond {
		t.Fatalf("rescan_interval = %s", time.Duration(cfg.RescanInterval))
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"bad duration": "rescan_interval: soon\n",
		"bad yaml":     "window: [\n",
		"bad type":     "refresh_hz: fast\n",
	}
	for name, data := range tests {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestValidateRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad backend": "backend: xinput\n",
		"bad size":    "window:\n  width: 0\n",
		"bad rate":    "refresh_hz: -5\n",
		"bad rescan":  "rescan_interval: -1s\n",
		"bad level":   "log_level: chatty\n",
	}
	for name, data := range tests {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Errorf("%s: Load: %v", name, err)
			continue
		}
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadLeavesOverridableValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: bogus\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Backend = "sim"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("overridden config invalid: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Backend = "gcadapter"
	cfg.RescanInterval = Duration(3 * time.Second)

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(raw), "rescan_interval: 3s") {
		t.Fatalf("duration not written as string:\n%s", raw)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Backend != "gcadapter" || time.Duration(loaded.RescanInterval) != 3*time.Second {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestUpdateKeepsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: gcadapter\nrefresh_hz: 30\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := Update(path, func(c *Config) { c.DarkMode = true }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.DarkMode || cfg.Backend != "gcadapter" || cfg.RefreshHz != 30 {
		t.Fatalf("unexpected config after Update: %+v", cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if path != filepath.Join("/xdg", "joyview", "config.yaml") {
		t.Fatalf("DefaultPath() = %q", path)
	}
}
