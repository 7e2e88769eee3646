package config

import (
	"flag"
	"strings"
)

// Flags holds CLI overrides. Unset flags leave the config alone.
type Flags struct {
	Config  string
	Debug   bool
	Palette string
	WADs    string
	Output  string
	WAD     string

	NoPreview bool
	Scale     int
	Format    string

	Fade     Color
	FadeMode Mode
	Hurt     Color
	Pickup   Color
	Rad      Color

	set map[string]bool
}

// RegisterFlags adds the shared generator flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}

	fs.StringVar(&f.Config, "config", "", "Path to config file (YAML or JSON)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Palette, "palette", "", "Base palette or PLAYPAL lump file")
	fs.StringVar(&f.WADs, "wad", "", "Comma-separated WADs to read the base palette from")
	fs.StringVar(&f.Output, "o", "", "Output directory")
	fs.StringVar(&f.WAD, "pwad", "", "Also write both lumps into this PWAD")
	fs.BoolVar(&f.NoPreview, "no-preview", false, "Skip preview images")
	fs.IntVar(&f.Scale, "scale", 0, "Preview scale factor")
	fs.StringVar(&f.Format, "format", "", "Preview format (png or bmp)")
	fs.Var(&f.Fade, "fade", "Colormap fade color (#rrggbb or r,g,b)")
	fs.Var(&f.FadeMode, "fade-mode", "Colormap fade blend mode")
	fs.Var(&f.Hurt, "hurt", "Hurt flash color")
	fs.Var(&f.Pickup, "pickup", "Item pickup flash color")
	fs.Var(&f.Rad, "radiation", "Radiation suit tint color")

	f.set = make(map[string]bool)
	return f
}

// Collect records which flags were given explicitly. Call after fs.Parse.
func (f *Flags) Collect(fs *flag.FlagSet) {
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
}

// Apply applies CLI flag overrides to the config.
func (f *Flags) Apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Palette != "" {
		cfg.Input.Palette = f.Palette
	}
	if f.WADs != "" {
		cfg.Input.WADs = strings.Split(f.WADs, ",")
	}
	if f.Output != "" {
		cfg.Output.Dir = f.Output
	}
	if f.WAD != "" {
		cfg.Output.WAD = f.WAD
	}
	if f.NoPreview {
		cfg.Preview.Enabled = false
	}
	if f.Scale > 0 {
		cfg.Preview.Scale = f.Scale
	}
	if f.Format != "" {
		cfg.Preview.Format = f.Format
	}
	if f.set["fade"] {
		cfg.Colormap.Fade.Color = f.Fade
	}
	if f.set["fade-mode"] {
		cfg.Colormap.Fade.Mode = f.FadeMode
	}
	if f.set["hurt"] {
		cfg.Palette.Hurt.Color = f.Hurt
	}
	if f.set["pickup"] {
		cfg.Palette.Pickup.Color = f.Pickup
	}
	if f.set["radiation"] {
		cfg.Palette.Radiation.Color = f.Rad
	}
}
