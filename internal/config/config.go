// Package config loads floormap settings from TOML.
//
// Every key is optional; missing keys keep their defaults:
//
//	scale = 100.0          # pixels per meter
//	interval = "100ms"     # redraw period
//	pixels_per_dot = 4     # raster pixels per braille dot in the terminal view
//	debug_offset_x = 0.0
//	debug_offset_y = 0.0
//	wall_width = 3.0
//
//	[colors]
//	background = "#ffffff"
//	walls = "#000000"
//	space = "#cfe8fc"
//	furniture = "#c99a6b"
//	marker = "#ff5722"
//	debug = "#000000"
//	debug_point = "#00ff00"
package config

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"floormap/internal/render"
)

type Colors struct {
	Background string `toml:"background"`
	Walls      string `toml:"walls"`
	Space      string `toml:"space"`
	Furniture  string `toml:"furniture"`
	Marker     string `toml:"marker"`
	Debug      string `toml:"debug"`
	DebugPoint string `toml:"debug_point"`
}

type Config struct {
	Scale        float64  `toml:"scale"`
	Interval     Duration `toml:"interval"`
	PixelsPerDot int      `toml:"pixels_per_dot"`
	DebugOffsetX float64  `toml:"debug_offset_x"`
	DebugOffsetY float64  `toml:"debug_offset_y"`
	WallWidth    float64  `toml:"wall_width"`
	Colors       Colors   `toml:"colors"`
}

// Duration decodes TOML strings such as "100ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func Default() Config {
	return Config{
		Scale:        render.DefaultScale,
		Interval:     Duration{render.DefaultInterval},
		PixelsPerDot: 4,
		WallWidth:    3,
		Colors: Colors{
			Background: "#ffffff",
			Walls:      "#000000",
			Space:      "#cfe8fc",
			Furniture:  "#c99a6b",
			Marker:     "#ff5722",
			Debug:      "#000000",
			DebugPoint: "#00ff00",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %g", c.Scale))
	}
	if c.Interval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("interval must be positive, got %s", c.Interval))
	}
	if c.PixelsPerDot <= 0 {
		errs = append(errs, fmt.Errorf("pixels_per_dot must be positive, got %d", c.PixelsPerDot))
	}
	if c.WallWidth <= 0 {
		errs = append(errs, fmt.Errorf("wall_width must be positive, got %g", c.WallWidth))
	}
	if _, err := c.Styles(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Styles builds renderer paints from the configured colors.
func (c Config) Styles() (render.Styles, error) {
	s := render.DefaultStyles()
	var err error
	parse := func(name, hex string) color.Color {
		col, perr := colorful.Hex(hex)
		if perr != nil {
			err = errors.Join(err, fmt.Errorf("colors.%s: %w", name, perr))
			return color.Black
		}
		r, g, b := col.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	s.Background = parse("background", c.Colors.Background)
	s.Walls.Color = parse("walls", c.Colors.Walls)
	s.Walls.Width = c.WallWidth
	s.Space.Color = parse("space", c.Colors.Space)
	s.Furniture.Color = parse("furniture", c.Colors.Furniture)
	s.Marker.Color = parse("marker", c.Colors.Marker)
	s.Debug.Color = parse("debug", c.Colors.Debug)
	s.DebugPoint.Color = parse("debug_point", c.Colors.DebugPoint)
	if err != nil {
		return render.Styles{}, err
	}
	return s, nil
}

// RendererOptions turns the config into render options.
func (c Config) RendererOptions() ([]render.Option, error) {
	styles, err := c.Styles()
	if err != nil {
		return nil, err
	}
	return []render.Option{
		render.WithScale(c.Scale),
		render.WithInterval(c.Interval.Duration),
		render.WithStyles(styles),
		render.WithDebugOffset(c.DebugOffsetX, c.DebugOffsetY),
	}, nil
}
