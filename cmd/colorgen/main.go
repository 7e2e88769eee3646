// colorgen generates Doom PLAYPAL and COLORMAP lumps.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Faultbox/doomcolors/internal/assets"
	"github.com/Faultbox/doomcolors/internal/build"
	"github.com/Faultbox/doomcolors/internal/config"
	"github.com/Faultbox/doomcolors/internal/logger"
	"github.com/Faultbox/doomcolors/internal/viewer"
	"github.com/Faultbox/doomcolors/pkg/dcolor"
	"github.com/Faultbox/doomcolors/pkg/lumps"
	"github.com/Faultbox/doomcolors/pkg/preview"
	"github.com/Faultbox/doomcolors/pkg/wad"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "build":
		err = cmdBuild("build", args, build.All)
	case "palette":
		err = cmdBuild("palette", args, build.Targets{Palette: true})
	case "colormap":
		err = cmdBuild("colormap", args, build.Targets{Colormap: true})
	case "preview":
		err = cmdPreview(args)
	case "show":
		err = cmdShow(args)
	case "info":
		err = cmdInfo(args)
	case "config":
		err = cmdConfig(args)
	case "verify":
		err = cmdVerify(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`colorgen - Doom PLAYPAL and COLORMAP generator

Usage:
  colorgen <command> [options]

Commands:
  build                              Generate PLAYPAL and COLORMAP
  palette                            Generate PLAYPAL only
  colormap                           Generate COLORMAP only
  preview <lump> [output]            Render an existing lump as an image
  show <lump|wad>                    Browse palette pages in the terminal
  info <file>                        Show lump or WAD information
  config [-out path]                 Print the effective configuration
  verify <base> <playpal> [colormap] Compare lumps with regenerated ones

Examples:
  colorgen build -palette base.pal -o out
  colorgen build -wad doom2.wad -fade "#200000" -fade-mode multiply
  colorgen colormap -wad doom.wad -pwad colors.wad
  colorgen preview -palette out/PLAYPAL.pal out/COLORMAP.cmp cmap.png
  colorgen show doom2.wad
  colorgen verify base.pal PLAYPAL.pal COLORMAP.cmp`)
}

// loadConfig parses the shared flags and merges them over the config file.
// extra registers command-specific flags.
func loadConfig(name string, args []string, extra func(fs *flag.FlagSet)) (*config.Config, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	if extra != nil {
		extra(fs)
	}
	fs.Parse(args)
	flags.Collect(fs)

	cfg, err := config.Load(flags.Config)
	if err != nil {
		return nil, nil, err
	}
	flags.Apply(cfg)

	if err := setupLogging(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, fs, nil
}

func setupLogging(cfg *config.Config) error {
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	return nil
}

func cmdBuild(name string, args []string, targets build.Targets) error {
	cfg, _, err := loadConfig(name, args, nil)
	if err != nil {
		return err
	}

	res, err := build.Run(cfg, targets)
	if err != nil {
		return err
	}

	for _, f := range res.Files {
		fmt.Println(f)
	}
	return nil
}

func cmdPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	palette := fs.String("palette", "", "PLAYPAL used to draw a COLORMAP")
	page := fs.Int("page", 0, "PLAYPAL page used to draw a COLORMAP")
	scale := fs.Int("scale", 4, "Scale factor")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: colorgen preview [-palette file] <lump> [output]")
	}

	input := fs.Arg(0)
	output := strings.TrimSuffix(input, filepath.Ext(input)) + "_preview.png"
	if fs.NArg() > 1 {
		output = fs.Arg(1)
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	img := preview.Playpal(data)
	if *palette != "" {
		pal, err := os.ReadFile(*palette)
		if err != nil {
			return err
		}
		img, err = preview.Colormap(pal, data, *page)
		if err != nil {
			return err
		}
	}

	if err := preview.Save(output, preview.Scale(img, *scale)); err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}

func cmdShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	palette := fs.String("palette", "", "PLAYPAL used to draw a COLORMAP lump")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: colorgen show [-palette file] <lump|wad>")
	}
	path := fs.Arg(0)

	var playpal, colormap []byte
	if strings.EqualFold(filepath.Ext(path), ".wad") {
		m := assets.NewManager()
		defer m.Close()
		if err := m.AddArchive(path); err != nil {
			return err
		}

		var err error
		if playpal, err = m.Load("PLAYPAL"); err != nil {
			return err
		}
		colormap, err = m.Load("COLORMAP")
		if err != nil && !errors.Is(err, assets.ErrNotFound) {
			return err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		playpal = data
		if *palette != "" {
			colormap = data
			if playpal, err = os.ReadFile(*palette); err != nil {
				return err
			}
		}
	}

	return viewer.Show(playpal, colormap)
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: colorgen info <file>")
	}
	path := args[0]

	if strings.EqualFold(filepath.Ext(path), ".wad") {
		return wadInfo(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("File:  %s\n", path)
	fmt.Printf("Size:  %d bytes\n", len(data))

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case ext == ".pal", ext != ".cmp" && len(data)%dcolor.PaletteSize == 0:
		return playpalInfo(data)
	case ext == ".cmp", len(data)%dcolor.Colors == 0:
		return colormapInfo(data)
	default:
		fmt.Println("Type:  unknown")
		return nil
	}
}

func wadInfo(path string) error {
	archive, err := wad.Open(path)
	if err != nil {
		return err
	}
	defer archive.Close()

	entries := archive.Entries()
	fmt.Printf("Archive: %s\n", path)
	fmt.Printf("Type:    %s\n", archive.Kind())
	fmt.Printf("Lumps:   %d\n", len(entries))

	for _, name := range []string{"PLAYPAL", "COLORMAP"} {
		if archive.Contains(name) {
			data, err := archive.Read(name)
			if err != nil {
				return err
			}
			fmt.Printf("  %-8s %d bytes\n", name, len(data))
		}
	}

	// Largest lumps
	sorted := append([]wad.Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Size > sorted[j].Size
	})
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}
	fmt.Println()
	fmt.Println("Largest lumps:")
	for _, e := range sorted {
		fmt.Printf("  %-8s %d\n", e.Name, e.Size)
	}
	return nil
}

func playpalInfo(data []byte) error {
	pal, err := lumps.ParsePlaypal(data)
	if err != nil {
		return err
	}

	fmt.Printf("Type:  PLAYPAL (%d pages, complete: %t)\n", pal.Pages(), pal.IsComplete())
	fmt.Println()
	for n := 0; n < pal.Pages(); n++ {
		s, err := pal.Stats(n)
		if err != nil {
			return err
		}
		fmt.Printf("  page %2d  avg %s  L* %.3f  unique %d\n", n, s.Average.Hex(), s.Lightness, s.Unique)
	}
	return nil
}

func colormapInfo(data []byte) error {
	cmap, err := lumps.ParseColormap(data)
	if err != nil {
		return err
	}

	fmt.Printf("Type:  COLORMAP (%d pages, complete: %t)\n", cmap.Pages(), cmap.IsComplete())
	fmt.Printf("Identity page 0: %t\n", cmap.HasIdentity())
	return nil
}

func cmdConfig(args []string) error {
	var output string
	cfg, _, err := loadConfig("config", args, func(fs *flag.FlagSet) {
		fs.StringVar(&output, "out", "", "Write the config to this file instead of stdout")
	})
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if output != "" {
		if err := cfg.SaveTo(output); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", output)
		return nil
	}
	return cfg.Write(os.Stdout)
}

func cmdVerify(args []string) error {
	cfg, fs, err := loadConfig("verify", args, nil)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("usage: colorgen verify <base> <playpal> [colormap]")
	}

	base, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	playpal, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}
	var colormap []byte
	if fs.NArg() > 2 {
		colormap, err = os.ReadFile(fs.Arg(2))
		if err != nil {
			return err
		}
	}

	rep, err := build.Verify(base, playpal, colormap, cfg)
	if err != nil {
		return err
	}

	printDiffs("PLAYPAL", rep.Playpal)
	if colormap != nil {
		printDiffs("COLORMAP", rep.Colormap)
	}
	if !rep.OK() {
		return errors.New("lumps differ from regenerated output")
	}
	return nil
}

func printDiffs(name string, diffs []lumps.PageDiff) {
	if len(diffs) == 0 {
		fmt.Printf("%s: match\n", name)
		return
	}
	fmt.Printf("%s: %d pages differ\n", name, len(diffs))
	for _, d := range diffs {
		fmt.Printf("  page %2d  %d bytes, first at %d\n", d.Page, d.Bytes, d.First)
	}
}
