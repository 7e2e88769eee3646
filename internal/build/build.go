// Package build runs the lump generation pipeline: load the base
// palette, generate PLAYPAL and COLORMAP, and write results.
package build

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/doomcolors/internal/assets"
	"github.com/Faultbox/doomcolors/internal/config"
	"github.com/Faultbox/doomcolors/internal/logger"
	"github.com/Faultbox/doomcolors/pkg/dcolor"
	"github.com/Faultbox/doomcolors/pkg/lumps"
	"github.com/Faultbox/doomcolors/pkg/preview"
	"github.com/Faultbox/doomcolors/pkg/wad"
)

// Output file names.
const (
	PlaypalFile         = "PLAYPAL.pal"
	ColormapFile        = "COLORMAP.cmp"
	PlaypalPreviewName  = "PLAYPAL_preview"
	ColormapPreviewName = "COLORMAP_preview"
)

// Targets selects which lumps to generate.
type Targets struct {
	Palette  bool
	Colormap bool
}

// All generates both lumps.
var All = Targets{Palette: true, Colormap: true}

// Result holds the generated lumps and the files written.
type Result struct {
	Playpal  []byte
	Colormap []byte
	Files    []string

	// Base is the palette COLORMAP was quantized against.
	Base []byte
}

// Generate builds the requested lumps from base in memory.
func Generate(base []byte, cfg *config.Config, targets Targets) (*Result, error) {
	log := logger.Named("build")
	res := &Result{Base: base}

	if targets.Palette || cfg.Colormap.Source == config.SourceGenerated {
		start := time.Now()
		out, err := dcolor.BuildPalette(base, cfg.PaletteOptions())
		if err != nil {
			return nil, fmt.Errorf("building PLAYPAL: %w", err)
		}
		log.Info("built PLAYPAL", zap.Int("bytes", len(out)), zap.Duration("took", time.Since(start)))
		if targets.Palette {
			res.Playpal = out
		}
		if cfg.Colormap.Source == config.SourceGenerated {
			res.Base = out
		}
	}

	if targets.Colormap {
		start := time.Now()
		out, err := dcolor.BuildColormap(res.Base, cfg.ColormapOptions())
		if err != nil {
			return nil, fmt.Errorf("building COLORMAP: %w", err)
		}
		log.Info("built COLORMAP",
			zap.Int("bytes", len(out)),
			zap.String("fade", dcolor.RGB(cfg.Colormap.Fade.Color).Hex()),
			zap.Stringer("mode", cfg.Colormap.Fade.Mode),
			zap.Duration("took", time.Since(start)))
		res.Colormap = out
	}

	return res, nil
}

// Run loads the base palette named by cfg, generates the lumps and
// writes them with previews and the optional PWAD.
func Run(cfg *config.Config, targets Targets) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := assets.LoadBasePalette(cfg.Input.Palette, cfg.Input.WADs, cfg.Input.Lump)
	if err != nil {
		return nil, fmt.Errorf("loading base palette: %w", err)
	}

	res, err := Generate(base, cfg, targets)
	if err != nil {
		return nil, err
	}

	if err := res.Write(cfg); err != nil {
		return nil, err
	}
	return res, nil
}

// Write stores the generated lumps under cfg.Output.Dir, along with
// previews and the PWAD when cfg asks for them.
func (r *Result) Write(cfg *config.Config) error {
	dir := cfg.Output.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if r.Playpal != nil {
		if err := r.writeFile(filepath.Join(dir, PlaypalFile), r.Playpal); err != nil {
			return err
		}
	}
	if r.Colormap != nil {
		if err := r.writeFile(filepath.Join(dir, ColormapFile), r.Colormap); err != nil {
			return err
		}
	}

	if cfg.Preview.Enabled {
		pal := r.Playpal
		if pal == nil {
			pal = r.Base
		}
		if err := r.writePreviews(cfg, pal); err != nil {
			return err
		}
	}

	if cfg.Output.WAD != "" {
		var lumps []wad.Lump
		if r.Playpal != nil {
			lumps = append(lumps, wad.Lump{Name: "PLAYPAL", Data: r.Playpal})
		}
		if r.Colormap != nil {
			lumps = append(lumps, wad.Lump{Name: "COLORMAP", Data: r.Colormap})
		}
		if err := wad.WriteFile(cfg.Output.WAD, wad.PWAD, lumps); err != nil {
			return fmt.Errorf("writing PWAD: %w", err)
		}
		r.record(cfg.Output.WAD, -1)
	}

	return nil
}

func (r *Result) writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	r.record(path, len(data))
	return nil
}

func (r *Result) writePreviews(cfg *config.Config, pal []byte) error {
	ext := "." + cfg.Preview.Format

	if r.Playpal != nil {
		path := filepath.Join(cfg.Output.Dir, PlaypalPreviewName+ext)
		if err := preview.Save(path, preview.Scale(preview.Playpal(r.Playpal), cfg.Preview.Scale)); err != nil {
			return fmt.Errorf("writing PLAYPAL preview: %w", err)
		}
		r.record(path, -1)
	}

	if r.Colormap != nil {
		page := cfg.Preview.PalettePage
		if (page+1)*dcolor.PaletteSize > len(pal) {
			logger.Warn("palette page not available for preview, using page 0", zap.Int("page", page))
			page = 0
		}

		img, err := preview.Colormap(pal, r.Colormap, page)
		if err != nil {
			return fmt.Errorf("drawing COLORMAP preview: %w", err)
		}
		path := filepath.Join(cfg.Output.Dir, ColormapPreviewName+ext)
		if err := preview.Save(path, preview.Scale(img, cfg.Preview.Scale)); err != nil {
			return fmt.Errorf("writing COLORMAP preview: %w", err)
		}
		r.record(path, -1)
	}

	return nil
}

func (r *Result) record(path string, size int) {
	r.Files = append(r.Files, path)
	if size >= 0 {
		logger.Info("wrote", zap.String("path", path), zap.Int("bytes", size))
	} else {
		logger.Info("wrote", zap.String("path", path))
	}
}

// Report lists page mismatches between existing lumps and regenerated
// ones.
type Report struct {
	Playpal  []lumps.PageDiff
	Colormap []lumps.PageDiff
}

// OK reports whether both lumps matched.
func (r Report) OK() bool {
	return len(r.Playpal) == 0 && len(r.Colormap) == 0
}

// Verify regenerates both lumps from base and compares them with playpal
// and colormap. A nil lump is not compared.
func Verify(base, playpal, colormap []byte, cfg *config.Config) (Report, error) {
	res, err := Generate(base, cfg, All)
	if err != nil {
		return Report{}, err
	}

	var rep Report
	if playpal != nil {
		rep.Playpal = lumps.Compare(res.Playpal, playpal, dcolor.PaletteSize)
	}
	if colormap != nil {
		rep.Colormap = lumps.Compare(res.Colormap, colormap, dcolor.Colors)
	}
	return rep, nil
}
