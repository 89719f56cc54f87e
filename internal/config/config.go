// Package config loads the board settings from a TOML file.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"InkBoard/internal/export"
	"InkBoard/internal/state"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Pen    Pen    `toml:"pen"`
	Export Export `toml:"export"`
	Feed   Feed   `toml:"feed"`
	Log    Log    `toml:"log"`
}

type Pen struct {
	Color string  `toml:"color"`
	Width float32 `toml:"width"`
}

type Export struct {
	Format     string      `toml:"format"`
	Background string      `toml:"background"`
	Dir        string      `toml:"dir"`
	Portrait   export.Size `toml:"portrait"`
	Landscape  export.Size `toml:"landscape"`
}

// Feed controls the read-only websocket change feed. An empty Addr
// disables it.
type Feed struct {
	Addr      string `toml:"addr"`
	Advertise bool   `toml:"advertise"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Pen: Pen{Color: "#000000", Width: 3},
		Export: Export{
			Format:     string(export.FormatPNG),
			Background: "#ffffff",
			Dir:        ".",
			Portrait:   export.DefaultCanonical.Portrait,
			Landscape:  export.DefaultCanonical.Landscape,
		},
		Feed: Feed{Addr: ":8888", Advertise: true},
		Log:  Log{Level: "info"},
	}
}

// Load decodes path over Default. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, keys[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := state.ParseColor(c.Pen.Color); err != nil {
		return fmt.Errorf("%w: pen.color: %w", ErrInvalid, err)
	}
	if c.Pen.Width <= 0 {
		return fmt.Errorf("%w: pen.width must be positive, got %v", ErrInvalid, c.Pen.Width)
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("%w: export.format: %w", ErrInvalid, err)
	}
	if _, err := state.ParseColor(c.Export.Background); err != nil {
		return fmt.Errorf("%w: export.background: %w", ErrInvalid, err)
	}
	if !c.Export.Portrait.Valid() || !c.Export.Landscape.Valid() {
		return fmt.Errorf("%w: export sizes must be positive", ErrInvalid)
	}
	return nil
}

// Canonical returns the export resolutions as configured.
func (e Export) Canonical() export.Canonical {
	return export.Canonical{Portrait: e.Portrait, Landscape: e.Landscape}
}

// Options returns the export options for the configured format and
// background. Call Validate first.
func (e Export) Options() []export.Option {
	var opts []export.Option
	if f, err := export.ParseFormat(e.Format); err == nil {
		opts = append(opts, export.WithFormat(f))
	}
	if bg, err := state.ParseColor(e.Background); err == nil {
		opts = append(opts, export.WithBackground(bg))
	}
	return opts
}
