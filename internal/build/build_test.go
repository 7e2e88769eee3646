package build

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/doomcolors/internal/config"
	"github.com/Faultbox/doomcolors/pkg/dcolor"
	"github.com/Faultbox/doomcolors/pkg/wad"
)

func testPalette() []byte {
	data := make([]byte, 0, dcolor.PaletteSize)
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				data = append(data, byte(r*51), byte(g*51), byte(b*51))
			}
		}
	}
	for i := 0; i < 40; i++ {
		v := byte(4 + i*6)
		data = append(data, v, v, v)
	}
	return data
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	base := filepath.Join(dir, "base.pal")
	if err := os.WriteFile(base, testPalette(), 0644); err != nil {
		t.Fatalf("failed to write palette: %v", err)
	}

	cfg := config.Default()
	cfg.Input.Palette = base
	cfg.Output.Dir = filepath.Join(dir, "out")
	return cfg
}

func TestGenerate(t *testing.T) {
	base := testPalette()

	res, err := Generate(base, config.Default(), All)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(res.Playpal) != dcolor.PlaypalSize {
		t.Errorf("PLAYPAL size = %d, want %d", len(res.Playpal), dcolor.PlaypalSize)
	}
	if len(res.Colormap) != dcolor.ColormapSize {
		t.Errorf("COLORMAP size = %d, want %d", len(res.Colormap), dcolor.ColormapSize)
	}
	if !bytes.Equal(res.Base, base) {
		t.Error("expected colormap to be quantized against the base palette")
	}
}

func TestGenerate_SingleTarget(t *testing.T) {
	base := testPalette()

	res, err := Generate(base, config.Default(), Targets{Palette: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Colormap != nil {
		t.Error("expected no COLORMAP")
	}

	res, err = Generate(base, config.Default(), Targets{Colormap: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Playpal != nil {
		t.Error("expected no PLAYPAL")
	}
}

func TestGenerate_GeneratedSource(t *testing.T) {
	cfg := config.Default()
	cfg.Colormap.Source = config.SourceGenerated

	res, err := Generate(testPalette(), cfg, Targets{Colormap: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if res.Playpal != nil {
		t.Error("PLAYPAL should not be kept when only COLORMAP is requested")
	}
	if len(res.Base) != dcolor.PlaypalSize {
		t.Errorf("expected generated PLAYPAL as base, got %d bytes", len(res.Base))
	}
}

func TestGenerate_InvalidBase(t *testing.T) {
	if _, err := Generate(make([]byte, 10), config.Default(), All); err == nil {
		t.Error("expected error for short base palette")
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.WAD = filepath.Join(cfg.Output.Dir, "colors.wad")
	cfg.Preview.Scale = 2

	res, err := Run(cfg, All)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []string{
		filepath.Join(cfg.Output.Dir, PlaypalFile),
		filepath.Join(cfg.Output.Dir, ColormapFile),
		filepath.Join(cfg.Output.Dir, PlaypalPreviewName+".png"),
		filepath.Join(cfg.Output.Dir, ColormapPreviewName+".png"),
		cfg.Output.WAD,
	}
	if len(res.Files) != len(want) {
		t.Fatalf("wrote %v, want %v", res.Files, want)
	}
	for i, path := range want {
		if res.Files[i] != path {
			t.Errorf("file %d = %s, want %s", i, res.Files[i], path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing output %s: %v", path, err)
		}
	}

	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatalf("failed to read PLAYPAL: %v", err)
	}
	if !bytes.Equal(data, res.Playpal) {
		t.Error("PLAYPAL on disk differs from result")
	}

	archive, err := wad.Open(cfg.Output.WAD)
	if err != nil {
		t.Fatalf("failed to open PWAD: %v", err)
	}
	defer archive.Close()

	if archive.Kind() != wad.PWAD {
		t.Errorf("kind = %s, want PWAD", archive.Kind())
	}
	cmap, err := archive.Read("COLORMAP")
	if err != nil {
		t.Fatalf("failed to read COLORMAP lump: %v", err)
	}
	if !bytes.Equal(cmap, res.Colormap) {
		t.Error("COLORMAP lump differs from result")
	}
}

func TestRun_NoPreview(t *testing.T) {
	cfg := testConfig(t)
	cfg.Preview.Enabled = false

	res, err := Run(cfg, Targets{Colormap: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Files) != 1 || filepath.Base(res.Files[0]) != ColormapFile {
		t.Errorf("expected only %s, got %v", ColormapFile, res.Files)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Preview.Format = "gif"

	if _, err := Run(cfg, All); err == nil {
		t.Error("expected validation error")
	}
	if _, err := os.Stat(cfg.Output.Dir); !os.IsNotExist(err) {
		t.Error("nothing should be written for an invalid config")
	}
}

func TestVerify(t *testing.T) {
	base := testPalette()
	cfg := config.Default()

	res, err := Generate(base, cfg, All)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	rep, err := Verify(base, res.Playpal, res.Colormap, cfg)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !rep.OK() {
		t.Errorf("expected regenerated lumps to match, got %+v", rep)
	}

	cmap := append([]byte(nil), res.Colormap...)
	cmap[5*dcolor.Colors+7] ^= 0xff
	rep, err = Verify(base, nil, cmap, cfg)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if rep.OK() || len(rep.Colormap) != 1 {
		t.Fatalf("expected one differing page, got %+v", rep.Colormap)
	}
	if d := rep.Colormap[0]; d.Page != 5 || d.Bytes != 1 || d.First != 7 {
		t.Errorf("diff = %+v, want page 5, 1 byte at 7", d)
	}
}
