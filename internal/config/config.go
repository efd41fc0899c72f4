package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/jask/sidemenu/internal/transition"
)

// EnvConfig names the variable that points at an explicit config file.
const EnvConfig = "SIDEMENU_CONFIG"

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	Menu     MenuConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig controls the file logger. An empty path disables logging.
type LogConfig struct {
	Path  string
	Level string
}

// MenuConfig mirrors transition.Config in terminal cells. Width and the
// content offsets left at 0 follow the terminal size.
type MenuConfig struct {
	Width           float64       `mapstructure:"width"`
	ContentScale    float64       `mapstructure:"content_scale"`
	ContentOffsetX  float64       `mapstructure:"content_offset_x"`
	ContentOffsetY  float64       `mapstructure:"content_offset_y"`
	CornerRadius    float64       `mapstructure:"corner_radius"`
	OverlayOpacity  float64       `mapstructure:"overlay_opacity"`
	Duration        time.Duration `mapstructure:"duration"`
	DampingRatio    float64       `mapstructure:"damping_ratio"`
	InitialVelocity float64       `mapstructure:"initial_velocity"`
	FlingVelocity   float64       `mapstructure:"fling_velocity"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	FPS int `mapstructure:"fps"`
	// VelocityScale converts cells to the units the fling threshold is
	// expressed in.
	VelocityScale float64 `mapstructure:"velocity_scale"`
	ItemsFile     string  `mapstructure:"items_file"`
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "sidemenu")
}

// DefaultPath is where Load looks when SIDEMENU_CONFIG is unset.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "sidemenu", "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(dataDir(), "sidemenu.db"))
	v.SetDefault("log.path", filepath.Join(dataDir(), "sidemenu.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("menu.width", 0)
	v.SetDefault("menu.content_scale", 0.85)
	v.SetDefault("menu.content_offset_x", 0)
	v.SetDefault("menu.content_offset_y", 0)
	v.SetDefault("menu.corner_radius", 1)
	v.SetDefault("menu.overlay_opacity", 0.9)
	v.SetDefault("menu.duration", "400ms")
	v.SetDefault("menu.damping_ratio", 0.8)
	v.SetDefault("menu.initial_velocity", 0)
	v.SetDefault("menu.fling_velocity", transition.FlingVelocity)
	v.SetDefault("ui.fps", 60)
	v.SetDefault("ui.velocity_scale", 8)
	v.SetDefault("ui.items_file", "")

	v.SetConfigType("toml")
	v.SetEnvPrefix("SIDEMENU")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Path returns the config file Load reads.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads configuration from file and env. Env var overrides use prefix SIDEMENU_.
func Load() (Config, error) {
	v := newViper()
	v.SetConfigFile(Path())

	// read config file if present
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}

// fallbackBounds sizes automatic geometry before the terminal size is known.
var fallbackBounds = transition.Size{Width: 80, Height: 23}

// Transition converts the menu section into a validated transition config
// for a container of the given bounds. Zero width and offsets take the
// container-relative defaults, rounded to whole cells; an explicit width
// never exceeds the container.
func (c Config) Transition(bounds transition.Size) (transition.Config, error) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		bounds = fallbackBounds
	}
	auto := transition.DefaultConfig(bounds.Width, bounds.Height)

	width := c.Menu.Width
	if width == 0 {
		width = math.Max(1, math.Round(auto.MenuWidth))
	}
	width = math.Min(width, bounds.Width)
	offsetX := c.Menu.ContentOffsetX
	if offsetX == 0 {
		offsetX = width
	}
	offsetY := c.Menu.ContentOffsetY
	if offsetY == 0 {
		offsetY = math.Round(auto.ContentOffsetY)
	}

	return transition.NewConfig(transition.Config{
		MenuWidth:       width,
		ContentScale:    c.Menu.ContentScale,
		ContentOffsetX:  offsetX,
		ContentOffsetY:  offsetY,
		CornerRadius:    c.Menu.CornerRadius,
		OverlayOpacity:  c.Menu.OverlayOpacity,
		Duration:        c.Menu.Duration,
		DampingRatio:    c.Menu.DampingRatio,
		InitialVelocity: c.Menu.InitialVelocity,
		FlingVelocity:   c.Menu.FlingVelocity,
	})
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("menu.width", cfg.Menu.Width)
	v.Set("menu.content_scale", cfg.Menu.ContentScale)
	v.Set("menu.content_offset_x", cfg.Menu.ContentOffsetX)
	v.Set("menu.content_offset_y", cfg.Menu.ContentOffsetY)
	v.Set("menu.corner_radius", cfg.Menu.CornerRadius)
	v.Set("menu.overlay_opacity", cfg.Menu.OverlayOpacity)
	v.Set("menu.duration", cfg.Menu.Duration.String())
	v.Set("menu.damping_ratio", cfg.Menu.DampingRatio)
	v.Set("menu.initial_velocity", cfg.Menu.InitialVelocity)
	v.Set("menu.fling_velocity", cfg.Menu.FlingVelocity)
	v.Set("ui.fps", cfg.UI.FPS)
	v.Set("ui.velocity_scale", cfg.UI.VelocityScale)
	v.Set("ui.items_file", cfg.UI.ItemsFile)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Watch re-reads the config file whenever it changes and passes the result
// to fn. Decode failures are reported through fn's error argument; the
// previous config stays in effect for the caller to decide.
func Watch(fn func(Config, error)) error {
	v := newViper()
	v.SetConfigFile(Path())
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(decode(v))
	})
	v.WatchConfig()
	return nil
}
