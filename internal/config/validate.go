package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/doomcolors/internal/logger"
	"github.com/Faultbox/doomcolors/pkg/dcolor"
	"github.com/Faultbox/doomcolors/pkg/preview"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	checkEffect := func(name string, e EffectConfig) {
		if !e.Color.Valid() {
			errs = append(errs, fmt.Errorf("%s.color %s: %w", name, e.Color, ErrInvalidColor))
		}
		if !dcolor.BlendMode(e.Mode).Valid() {
			errs = append(errs, fmt.Errorf("%s.mode %d: %w", name, e.Mode, ErrUnknownBlendMode))
		}
	}
	checkEffect("palette.hurt", c.Palette.Hurt)
	checkEffect("palette.pickup", c.Palette.Pickup)
	checkEffect("palette.radiation", c.Palette.Radiation)
	checkEffect("colormap.fade", c.Colormap.Fade)

	if col := c.Colormap.Invulnerability.Low; !col.Valid() {
		errs = append(errs, fmt.Errorf("colormap.invulnerability.low %s: %w", col, ErrInvalidColor))
	}
	if col := c.Colormap.Invulnerability.High; !col.Valid() {
		errs = append(errs, fmt.Errorf("colormap.invulnerability.high %s: %w", col, ErrInvalidColor))
	}

	switch c.Colormap.Source {
	case SourceBase, SourceGenerated:
	default:
		errs = append(errs, fmt.Errorf("colormap.source %q: expected %q or %q", c.Colormap.Source, SourceBase, SourceGenerated))
	}

	if c.Input.Palette == "" && len(c.Input.WADs) > 0 && c.Input.Lump == "" {
		errs = append(errs, errors.New("input.lump is required when reading from WADs"))
	}

	if c.Output.Dir == "" {
		errs = append(errs, errors.New("output.dir is empty"))
	}

	if _, err := preview.ParseFormat(c.Preview.Format); err != nil {
		errs = append(errs, fmt.Errorf("preview.format: %w", err))
	}
	if c.Preview.Scale < 1 || c.Preview.Scale > 64 {
		errs = append(errs, fmt.Errorf("preview.scale %d: expected 1..64", c.Preview.Scale))
	}
	if c.Preview.PalettePage < 0 || c.Preview.PalettePage >= dcolor.PlaypalPages {
		errs = append(errs, fmt.Errorf("preview.palette_page %d: expected 0..%d", c.Preview.PalettePage, dcolor.PlaypalPages-1))
	}

	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level %q: expected debug, info, warn or error", c.Logging.Level))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
