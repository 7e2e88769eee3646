package dcolor

import (
	"bytes"
	"errors"
	"testing"
)

// legacyColormap is a direct rendition of the vanilla engine's
// COLORMAP build with a black fade. Level 0 is quantized too.
func legacyColormap(base []byte) []byte {
	p, _ := NewPalette(base)
	out := make([]byte, ColormapSize)

	for level := 0; level < 32; level++ {
		for c := 0; c < Colors; c++ {
			r := (int(base[c*3])*(32-level) + 16) / 32
			g := (int(base[c*3+1])*(32-level) + 16) / 32
			b := (int(base[c*3+2])*(32-level) + 16) / 32
			out[level*Colors+c] = BestColor(p, RGB{r, g, b})
		}
	}
	for c := 0; c < Colors; c++ {
		r := float32(base[c*3]) / 256.0
		g := float32(base[c*3+1]) / 256.0
		b := float32(base[c*3+2]) / 256.0
		v := float32(255.0 * float32(1.0-float32(float32(r*0.299)+float32(g*0.587)+float32(b*0.144))))
		gray := 0
		if v > 0 {
			gray = int(v)
		}
		out[32*Colors+c] = BestColor(p, RGB{gray, gray, gray})
	}
	return out
}

func page(buf []byte, n int) []byte {
	return buf[n*Colors : (n+1)*Colors]
}

// duplicateBlackPalette repeats black at index 247, as Doom's PLAYPAL does.
func duplicateBlackPalette() []byte {
	base := createTestPalette()
	base[247*3], base[247*3+1], base[247*3+2] = 0, 0, 0
	return base
}

func TestBuildColormap_Identity(t *testing.T) {
	opts := VanillaColormap()
	opts.LegacyLevelZero = false

	cmap, err := BuildColormap(duplicateBlackPalette(), opts)
	if err != nil {
		t.Fatalf("BuildColormap failed: %v", err)
	}

	for n, idx := range page(cmap, 0) {
		if int(idx) != n {
			t.Fatalf("colormap[0][%d] = %d, expected identity", n, idx)
		}
	}
}

func TestBuildColormap_LegacyLevelZero(t *testing.T) {
	base := duplicateBlackPalette()

	cmap, err := BuildColormap(base, VanillaColormap())
	if err != nil {
		t.Fatalf("BuildColormap failed: %v", err)
	}

	if got := cmap[247]; got != 0 {
		t.Errorf("colormap[0][247] = %d, expected the first black entry 0", got)
	}
	for n, idx := range page(cmap, 0) {
		if n != 247 && int(idx) != n {
			t.Errorf("colormap[0][%d] = %d, expected %d for a unique entry", n, idx, n)
		}
	}
	if !bytes.Equal(cmap, legacyColormap(base)) {
		t.Error("colormap differs from the legacy build")
	}
}

func TestBuildColormap_IdentityForAnyFade(t *testing.T) {
	opts := ColormapOptions{
		Fade:       Effect{Color: RGB{90, 20, 200}, Mode: Screen},
		Masking:    Mask{KeepHue: true},
		InvulnLow:  RGB{255, 0, 0},
		InvulnHigh: RGB{0, 0, 255},
	}

	cmap, err := BuildColormap(createTestPalette(), opts)
	if err != nil {
		t.Fatalf("BuildColormap failed: %v", err)
	}
	for n, idx := range page(cmap, 0) {
		if int(idx) != n {
			t.Fatalf("colormap[0][%d] = %d, expected identity", n, idx)
		}
	}
}

func TestBuildColormap_ReservedPageZero(t *testing.T) {
	opts := VanillaColormap()
	opts.Fade = Effect{Color: white, Mode: Normal}

	cmap, err := BuildColormap(createTestPalette(), opts)
	if err != nil {
		t.Fatalf("BuildColormap failed: %v", err)
	}

	if len(cmap) != ColormapSize {
		t.Fatalf("expected %d bytes, got %d", ColormapSize, len(cmap))
	}
	for n, idx := range page(cmap, ReservedPage) {
		if idx != 0 {
			t.Fatalf("colormap[33][%d] = %d, expected 0", n, idx)
		}
	}
}

func TestBuildColormap_LegacyParity(t *testing.T) {
	base := createTestPalette()

	cmap, err := BuildColormap(base, VanillaColormap())
	if err != nil {
		t.Fatalf("BuildColormap failed: %v", err)
	}

	want := legacyColormap(base)
	for n := 0; n < ColormapPages; n++ {
		if !bytes.Equal(page(cmap, n), page(want, n)) {
			t.Errorf("page %d differs from the legacy build", n)
		}
	}
}

func TestBuildColormap_ReferenceLump(t *testing.T) {
	playpal, colormap := referenceLumps(t)

	cmap, err := BuildColormap(playpal, VanillaColormap())
	if err != nil {
		t.Fatalf("BuildColormap failed: %v", err)
	}
	if !bytes.Equal(cmap, colormap[:ColormapSize]) {
		t.Error("generated COLORMAP does not match the reference lump")
	}
}

func TestBuildColormap_Deterministic(t *testing.T) {
	base := createTestPalette()
	opts := ColormapOptions{
		Fade:       Effect{Color: RGB{30, 60, 90}, Mode: Multiply},
		InvulnLow:  RGB{10, 10, 10},
		InvulnHigh: RGB{240, 200, 100},
	}

	a, err := BuildColormap(base, opts)
	if err != nil {
		t.Fatalf("BuildColormap failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		b, err := BuildColormap(base, opts)
		if err != nil {
			t.Fatalf("BuildColormap failed: %v", err)
		}
		if !bytes.Equal(a, b) {
			t.Fatal("BuildColormap is not deterministic")
		}
	}
}

func TestBuildColormap_InvalidSize(t *testing.T) {
	_, err := BuildColormap(make([]byte, PaletteSize-3), VanillaColormap())
	if !errors.Is(err, ErrInvalidPaletteSize) {
		t.Errorf("expected ErrInvalidPaletteSize, got %v", err)
	}
}

func TestFadeColor_Monotonic(t *testing.T) {
	p, err := NewPalette(createTestPalette())
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}

	fades := []RGB{black, white, {128, 40, 200}}
	for _, fade := range fades {
		for _, c := range p {
			prev := 1 << 30
			for level := 0; level < DarknessLevels; level++ {
				out := FadeColor(c, Effect{Color: fade, Mode: Normal}, Mask{}, level)
				d := abs(out.R-fade.R) + abs(out.G-fade.G) + abs(out.B-fade.B)
				if d > prev {
					t.Fatalf("fade %v of %v moved away from target at level %d", fade, c, level)
				}
				prev = d
			}
		}
	}
}

func TestFadeColor_LevelZeroKeepsColor(t *testing.T) {
	c := RGB{200, 100, 50}
	if got := FadeColor(c, Effect{Color: black, Mode: Normal}, Mask{}, 0); got != c {
		t.Errorf("expected %v at level 0, got %v", c, got)
	}
	if got := FadeColor(c, Effect{Color: white, Mode: Hue}, Mask{}, 0); got != c {
		t.Errorf("expected %v at level 0, got %v", c, got)
	}
}

func TestFadeColor_MaskKeepsHue(t *testing.T) {
	c := RGB{200, 100, 50}
	fade := Effect{Color: RGB{0, 0, 255}, Mode: Normal}

	out := FadeColor(c, fade, Mask{KeepHue: true, KeepSaturation: true}, 16)
	src, got := ToHSV(c), ToHSV(out)
	if diff := src.H - got.H; diff > 2 || diff < -2 {
		t.Errorf("expected hue near %.1f, got %.1f", src.H, got.H)
	}

	unmasked := FadeColor(c, fade, Mask{}, 16)
	if ToHSV(unmasked).H < 200 {
		t.Errorf("expected unmasked fade to drift toward blue, got hue %.1f", ToHSV(unmasked).H)
	}
}

func TestInvulnerabilityMap(t *testing.T) {
	p, err := NewPalette(createTestPalette())
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}

	dst := make([]byte, Colors)
	InvulnerabilityMap(p, dst, black, white)

	// Black is fully dark and maps to white (cube index 215).
	if dst[0] != 215 {
		t.Errorf("expected black to map to 215, got %d", dst[0])
	}
	// White overshoots to negative brightness and maps to black.
	if dst[215] != 0 {
		t.Errorf("expected white to map to 0, got %d", dst[215])
	}
}

func TestBrightness(t *testing.T) {
	if b := Brightness(black); b != 1 {
		t.Errorf("expected brightness 1 for black, got %f", b)
	}
	if b := Brightness(white); b >= 0 {
		t.Errorf("expected negative brightness for white, got %f", b)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
