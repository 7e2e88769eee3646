// Package config handles generator configuration loading and management.
package config

import "github.com/Faultbox/doomcolors/pkg/dcolor"

// Config holds all generator settings.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Palette  PaletteConfig  `yaml:"palette"`
	Colormap ColormapConfig `yaml:"colormap"`
	Preview  PreviewConfig  `yaml:"preview"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// InputConfig says where the base palette comes from.
type InputConfig struct {
	Palette string   `yaml:"palette"` // Raw palette or PLAYPAL lump file
	WADs    []string `yaml:"wads"`    // WAD archives, later entries win
	Lump    string   `yaml:"lump"`    // Lump name inside the WADs
}

// OutputConfig says where results are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	WAD string `yaml:"wad"` // Optional PWAD containing both lumps
}

// EffectConfig is a target color and blend mode.
type EffectConfig struct {
	Color Color `yaml:"color"`
	Mode  Mode  `yaml:"mode"`
}

// PaletteConfig holds the PLAYPAL flash colors.
type PaletteConfig struct {
	Hurt      EffectConfig `yaml:"hurt"`
	Pickup    EffectConfig `yaml:"pickup"`
	Radiation EffectConfig `yaml:"radiation"`
}

// MaskConfig keeps source channels when fading.
type MaskConfig struct {
	KeepHue        bool `yaml:"keep_hue"`
	KeepSaturation bool `yaml:"keep_saturation"`
	KeepValue      bool `yaml:"keep_value"`
}

// InvulnerabilityConfig holds the invulnerability gradient endpoints.
type InvulnerabilityConfig struct {
	Low  Color `yaml:"low"`
	High Color `yaml:"high"`
}

// Colormap source values.
const (
	SourceBase      = "base"      // Quantize against the input palette
	SourceGenerated = "generated" // Quantize against page 0 of the new PLAYPAL
)

// ColormapConfig holds the COLORMAP fade settings.
type ColormapConfig struct {
	Fade            EffectConfig          `yaml:"fade"`
	Masking         MaskConfig            `yaml:"masking"`
	Invulnerability InvulnerabilityConfig `yaml:"invulnerability"`
	Source          string                `yaml:"source"`

	// Quantize level 0 instead of writing the identity (shipped lump parity).
	LegacyLevelZero bool `yaml:"legacy_level_zero"`
}

// PreviewConfig holds preview image settings.
type PreviewConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Scale       int    `yaml:"scale"`
	Format      string `yaml:"format"`
	PalettePage int    `yaml:"palette_page"` // PLAYPAL page used to draw the COLORMAP
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config that reproduces the vanilla lumps.
func Default() *Config {
	pal := dcolor.VanillaPalette()
	cmap := dcolor.VanillaColormap()

	return &Config{
		Input: InputConfig{
			Lump: "PLAYPAL",
		},
		Output: OutputConfig{
			Dir: "out",
		},
		Palette: PaletteConfig{
			Hurt:      effectConfig(pal.Hurt),
			Pickup:    effectConfig(pal.Pickup),
			Radiation: effectConfig(pal.Radiation),
		},
		Colormap: ColormapConfig{
			Fade: effectConfig(cmap.Fade),
			Invulnerability: InvulnerabilityConfig{
				Low:  Color(cmap.InvulnLow),
				High: Color(cmap.InvulnHigh),
			},
			Source:          SourceBase,
			LegacyLevelZero: cmap.LegacyLevelZero,
		},
		Preview: PreviewConfig{
			Enabled: true,
			Scale:   1,
			Format:  "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func effectConfig(e dcolor.Effect) EffectConfig {
	return EffectConfig{Color: Color(e.Color), Mode: Mode(e.Mode)}
}

// Effect converts the config to a dcolor.Effect.
func (e EffectConfig) Effect() dcolor.Effect {
	return dcolor.Effect{Color: dcolor.RGB(e.Color), Mode: dcolor.BlendMode(e.Mode)}
}

// PaletteOptions returns the PLAYPAL build options.
func (c *Config) PaletteOptions() dcolor.PaletteOptions {
	return dcolor.PaletteOptions{
		Hurt:      c.Palette.Hurt.Effect(),
		Pickup:    c.Palette.Pickup.Effect(),
		Radiation: c.Palette.Radiation.Effect(),
	}
}

// ColormapOptions returns the COLORMAP build options.
func (c *Config) ColormapOptions() dcolor.ColormapOptions {
	return dcolor.ColormapOptions{
		Fade: c.Colormap.Fade.Effect(),
		Masking: dcolor.Mask{
			KeepHue:        c.Colormap.Masking.KeepHue,
			KeepSaturation: c.Colormap.Masking.KeepSaturation,
			KeepValue:      c.Colormap.Masking.KeepValue,
		},
		InvulnLow:       dcolor.RGB(c.Colormap.Invulnerability.Low),
		InvulnHigh:      dcolor.RGB(c.Colormap.Invulnerability.High),
		LegacyLevelZero: c.Colormap.LegacyLevelZero,
	}
}
