package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 768 {
		t.Errorf("expected 1024x768, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Render.DoorMode != "slab" {
		t.Errorf("expected slab door mode, got %q", cfg.Render.DoorMode)
	}
	if cfg.World.DoorSpeed != 1.2 {
		t.Errorf("expected door speed 1.2, got %v", cfg.World.DoorSpeed)
	}
	if got, want := cfg.ViewHeight(), 768-115; got != want {
		t.Errorf("expected view height %d, got %d", want, got)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wolf.yaml")
	data := []byte("window:\n  width: 640\n  height: 400\nrender:\n  fov: 70\n  door_mode: edge\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("WOLF_RENDER_FOV", "80")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	if err := fs.Parse([]string{"--config", path, "--width", "800"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"flag beats file", cfg.Window.Width, 800},
		{"file beats default", cfg.Window.Height, 400},
		{"env beats file", cfg.Render.FovDegrees, 80.0},
		{"file door mode", cfg.Render.DoorMode, "edge"},
		{"default untouched", cfg.Player.Lives, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	if err := fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(fs); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	base, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"flat fov", func(c *Config) { c.Render.FovDegrees = 180 }},
		{"bad door mode", func(c *Config) { c.Render.DoorMode = "swing" }},
		{"frame not pow2", func(c *Config) { c.Assets.FrameSize = 48 }},
		{"hud fills screen", func(c *Config) { c.Render.HudRatio = 1 }},
		{"no lives", func(c *Config) { c.Player.Lives = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *base
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
