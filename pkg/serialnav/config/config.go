// Package config loads serialnav settings from a TOML file.
//
//	[transitions]
//	serializing = true
//	stable_turns = 2
//	max_turns = 120
//
//	[loop]
//	frame_interval = "16ms"
//
//	[host]
//	frames = 18
//	coordinated = true
//
//	[window]
//	title = "navdemo"
//	width = 1024
//	height = 768
//
//	[back_button]
//	device = "/dev/input/event1"
//	code = 158
//	cool_down = "250ms"
//
//	[log]
//	path = "logs/navdemo.log"
//	level = "info"
//
//	[locale]
//	language = "de"
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/constants"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/router"
	"github.com/BurntSushi/toml"
)

// Config is the full file layout. Missing keys keep the values from Default.
type Config struct {
	Transitions Transitions `toml:"transitions"`
	Loop        Loop        `toml:"loop"`
	Host        Host        `toml:"host"`
	Window      Window      `toml:"window"`
	BackButton  BackButton  `toml:"back_button"`
	Log         Log         `toml:"log"`
	Locale      Locale      `toml:"locale"`
}

type Transitions struct {
	Serializing bool `toml:"serializing"`
	StableTurns int  `toml:"stable_turns"`
	MaxTurns    int  `toml:"max_turns"`
}

type Loop struct {
	FrameInterval time.Duration `toml:"frame_interval"`
}

// Host configures the in-memory navigator.
type Host struct {
	Frames          int  `toml:"frames"`
	Coordinated     bool `toml:"coordinated"`
	DropCompletions bool `toml:"drop_completions"`
}

type Window struct {
	Title      string `toml:"title"`
	Width      int32  `toml:"width"`
	Height     int32  `toml:"height"`
	Borderless bool   `toml:"borderless"`
	Fullscreen bool   `toml:"fullscreen"`
}

// BackButton configures the evdev back button. An empty device disables it.
type BackButton struct {
	Device   string        `toml:"device"`
	Code     uint16        `toml:"code"`
	CoolDown time.Duration `toml:"cool_down"`
}

type Log struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
	Debug bool   `toml:"debug"`
}

type Locale struct {
	Language string `toml:"language"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Transitions: Transitions{
			Serializing: true,
			StableTurns: constants.DefaultStableTurns,
			MaxTurns:    constants.DefaultMaxTurns,
		},
		Loop: Loop{FrameInterval: constants.DefaultFrameInterval},
		Host: Host{Frames: constants.DefaultAnimationFrames, Coordinated: true},
		Window: Window{
			Title:  "navdemo",
			Width:  1024,
			Height: 768,
		},
		BackButton: BackButton{
			Code:     158, // KEY_BACK
			CoolDown: constants.DefaultBackCoolDown,
		},
		Log:    Log{Level: "info"},
		Locale: Locale{Language: "en"},
	}
}

// Load reads path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, finish(cfg, md)
}

// Parse reads TOML text on top of Default.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, finish(cfg, md)
}

func finish(cfg Config, md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config: unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Transitions.StableTurns < 1 {
		errs = append(errs, errors.New("transitions.stable_turns must be at least 1"))
	}
	if c.Transitions.MaxTurns <= c.Transitions.StableTurns {
		errs = append(errs, errors.New("transitions.max_turns must be greater than stable_turns"))
	}
	if c.Loop.FrameInterval <= 0 {
		errs = append(errs, errors.New("loop.frame_interval must be positive"))
	}
	if c.Host.Frames < 1 {
		errs = append(errs, errors.New("host.frames must be at least 1"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, errors.New("window size must be positive"))
	}
	if c.BackButton.CoolDown < 0 {
		errs = append(errs, errors.New("back_button.cool_down must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// InitOptions maps the file onto process-wide serialnav settings.
func (c Config) InitOptions() serialnav.InitOptions {
	return serialnav.InitOptions{
		LogPath:            c.Log.Path,
		LogLevel:           c.Log.Level,
		Debug:              c.Log.Debug,
		DisableSerializing: !c.Transitions.Serializing,
	}
}

// QueueOptions maps the file onto queue tuning.
func (c Config) QueueOptions() serialnav.Options {
	return serialnav.Options{
		StableTurns: c.Transitions.StableTurns,
		MaxTurns:    c.Transitions.MaxTurns,
	}
}

// NavigatorOptions maps the file onto the in-memory host.
func (c Config) NavigatorOptions() router.Options {
	return router.Options{
		Frames:          c.Host.Frames,
		Coordinated:     c.Host.Coordinated,
		DropCompletions: c.Host.DropCompletions,
	}
}
