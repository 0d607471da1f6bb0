package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "WOLF"

type Window struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	VSync  bool   `mapstructure:"vsync"`
}

type Render struct {
	FovDegrees float64 `mapstructure:"fov"`
	DoorMode   string  `mapstructure:"door_mode"`
	// fraction of the screen height used by the status bar
	HudRatio float64 `mapstructure:"hud_ratio"`
}

type Player struct {
	MoveSpeed     float64 `mapstructure:"move_speed"`
	SprintFactor  float64 `mapstructure:"sprint_factor"`
	RotateDegrees float64 `mapstructure:"rotate_degrees"`
	Lives         int     `mapstructure:"lives"`
}

type Guard struct {
	ViewDistance    float64 `mapstructure:"view_distance"`
	FovDegrees      float64 `mapstructure:"fov"`
	PatrolSpeed     float64 `mapstructure:"patrol_speed"`
	ChaseSpeed      float64 `mapstructure:"chase_speed"`
	FireMaxDistance float64 `mapstructure:"fire_max_distance"`
	AlertMemory     float64 `mapstructure:"alert_memory"`
	Health          int     `mapstructure:"health"`
	ShotDamage      int     `mapstructure:"shot_damage"`
	Difficulty      float64 `mapstructure:"difficulty"`
}

type World struct {
	Map       string  `mapstructure:"map"`
	DoorSpeed float64 `mapstructure:"door_speed"`
}

type Assets struct {
	FrameSize int `mapstructure:"frame_size"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the full set of tunables, filled from defaults, an optional
// config file, WOLF_* environment variables and command line flags, in
// increasing order of precedence.
type Config struct {
	Window Window `mapstructure:"window"`
	Render Render `mapstructure:"render"`
	Player Player `mapstructure:"player"`
	Guard  Guard  `mapstructure:"guard"`
	World  World  `mapstructure:"world"`
	Assets Assets `mapstructure:"assets"`
	Log    Log    `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("window.title", "Wolfcaster")
	v.SetDefault("window.vsync", true)

	v.SetDefault("render.fov", 66.0)
	v.SetDefault("render.door_mode", "slab")
	v.SetDefault("render.hud_ratio", 0.15)

	v.SetDefault("player.move_speed", 3.0)
	v.SetDefault("player.sprint_factor", 1.5)
	v.SetDefault("player.rotate_degrees", 120.0)
	v.SetDefault("player.lives", 3)

	v.SetDefault("guard.view_distance", 8.0)
	v.SetDefault("guard.fov", 90.0)
	v.SetDefault("guard.patrol_speed", 1.5)
	v.SetDefault("guard.chase_speed", 2.0)
	v.SetDefault("guard.fire_max_distance", 7.0)
	v.SetDefault("guard.alert_memory", 2.0)
	v.SetDefault("guard.health", 3)
	v.SetDefault("guard.shot_damage", 10)
	v.SetDefault("guard.difficulty", 1.0)

	v.SetDefault("world.map", "assets/maps/map1.txt")
	v.SetDefault("world.door_speed", 1.2)

	v.SetDefault("assets.frame_size", 64)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Flags registers the command line flags understood by Load.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (yaml, toml or json)")
	fs.String("map", "", "map file inside the embedded assets")
	fs.Int("width", 0, "window width in pixels")
	fs.Int("height", 0, "window height in pixels")
	fs.Float64("fov", 0, "horizontal field of view in degrees")
	fs.String("door-mode", "", "door geometry: slab or edge")
	fs.String("log-level", "", "log level: debug, info, warn, error")
}

var flagKeys = map[string]string{
	"map":       "world.map",
	"width":     "window.width",
	"height":    "window.height",
	"fov":       "render.fov",
	"door-mode": "render.door_mode",
	"log-level": "log.level",
}

// Load builds a Config. fs may be nil when no flags are in play.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			path = f.Value.String()
		}
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Render.FovDegrees <= 0 || c.Render.FovDegrees >= 180:
		return fmt.Errorf("invalid fov %.1f: must be in (0, 180)", c.Render.FovDegrees)
	case c.Render.HudRatio < 0 || c.Render.HudRatio >= 1:
		return fmt.Errorf("invalid hud ratio %.2f", c.Render.HudRatio)
	case c.Assets.FrameSize <= 0 || c.Assets.FrameSize&(c.Assets.FrameSize-1) != 0:
		return fmt.Errorf("invalid frame size %d: must be a power of two", c.Assets.FrameSize)
	case c.World.DoorSpeed <= 0:
		return fmt.Errorf("invalid door speed %.2f", c.World.DoorSpeed)
	case c.Player.Lives <= 0:
		return fmt.Errorf("invalid lives %d", c.Player.Lives)
	}
	switch strings.ToLower(c.Render.DoorMode) {
	case "slab", "edge":
	default:
		return fmt.Errorf("invalid door mode %q: must be slab or edge", c.Render.DoorMode)
	}
	return nil
}

// ViewHeight is the height of the 3D view above the status bar.
func (c *Config) ViewHeight() int {
	return c.Window.Height - int(float64(c.Window.Height)*c.Render.HudRatio)
}
