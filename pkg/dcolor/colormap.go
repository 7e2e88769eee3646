package dcolor

import "sync"

// Mask keeps channels of the source color when fading. This is the
// legacy masking variant; set Fade.Mode for full blend control.
type Mask struct {
	KeepHue        bool
	KeepSaturation bool
	KeepValue      bool
}

// Any reports whether any channel is kept.
func (m Mask) Any() bool {
	return m.KeepHue || m.KeepSaturation || m.KeepValue
}

// ColormapOptions selects the fade and invulnerability colors.
type ColormapOptions struct {
	Fade    Effect
	Masking Mask

	// Dark source colors move toward InvulnHigh, bright ones toward InvulnLow.
	InvulnLow  RGB
	InvulnHigh RGB

	// LegacyLevelZero quantizes level 0 like every other level instead of
	// writing the identity. Duplicate palette entries then map to their
	// first copy, as in the shipped COLORMAP (Doom's black at 0 and 247).
	LegacyLevelZero bool
}

// VanillaColormap returns the options that reproduce the shipped COLORMAP.
func VanillaColormap() ColormapOptions {
	return ColormapOptions{
		Fade:            Effect{Color: RGB{0, 0, 0}, Mode: Normal},
		InvulnLow:       RGB{0, 0, 0},
		InvulnHigh:      RGB{255, 255, 255},
		LegacyLevelZero: true,
	}
}

// BuildColormap generates a 34-page COLORMAP against the first page of base.
func BuildColormap(base []byte, opts ColormapOptions) ([]byte, error) {
	p, err := NewPalette(base)
	if err != nil {
		return nil, err
	}

	out := make([]byte, ColormapSize)

	if opts.LegacyLevelZero {
		QuantizePage(p, out[:Colors], opts.Fade, opts.Masking, 0)
	} else {
		FadePage(p, out[:Colors], opts.Fade, opts.Masking, 0)
	}

	// Levels only read p, so each page can be filled independently.
	var wg sync.WaitGroup
	for level := 1; level < DarknessLevels; level++ {
		wg.Add(1)
		go func(level int) {
			defer wg.Done()
			FadePage(p, out[level*Colors:(level+1)*Colors], opts.Fade, opts.Masking, level)
		}(level)
	}
	wg.Wait()

	InvulnerabilityMap(p, out[InvulnerabilityPage*Colors:(InvulnerabilityPage+1)*Colors], opts.InvulnLow, opts.InvulnHigh)

	// Page 33 stays zero.
	return out, nil
}

// FadeColor returns c faded toward fade at the given darkness level.
func FadeColor(c RGB, fade Effect, mask Mask, level int) RGB {
	var out RGB
	if fade.Mode == Normal {
		out = RGB{
			R: fadeChannel(c.R, fade.Color.R, level),
			G: fadeChannel(c.G, fade.Color.G, level),
			B: fadeChannel(c.B, fade.Color.B, level),
		}
	} else {
		out = Apply(c, fade.Color, fade.Mode, float32(level)/DarknessLevels)
	}

	if mask.Any() {
		out = CombineHSV(out, c, !mask.KeepHue, !mask.KeepSaturation, !mask.KeepValue)
	}
	return out
}

// FadePage fills dst (256 bytes) with the palette indices for one
// darkness level. Level 0 is the identity mapping.
func FadePage(p *Palette, dst []byte, fade Effect, mask Mask, level int) {
	_ = dst[Colors-1]

	if level == 0 {
		for i := range p {
			dst[i] = uint8(i)
		}
		return
	}
	QuantizePage(p, dst, fade, mask, level)
}

// QuantizePage is FadePage without the level 0 shortcut: every entry is
// faded and matched against p, level 0 included.
func QuantizePage(p *Palette, dst []byte, fade Effect, mask Mask, level int) {
	_ = dst[Colors-1]

	for i, c := range p {
		dst[i] = BestColor(p, FadeColor(c, fade, mask, level))
	}
}

// Brightness returns the inverted luma weight used by the
// invulnerability map. Channels are normalized by 256 and the blue
// weight is 0.144, both as in the legacy engine.
func Brightness(c RGB) float32 {
	r := float32(c.R) / 256
	g := float32(c.G) / 256
	b := float32(c.B) / 256
	luma := float32(r*0.299) + float32(g*0.587)
	luma = luma + float32(b*0.144)
	return 1 - luma
}

// InvulnerabilityMap fills dst (256 bytes) with indices remapped along
// the low..high gradient by inverted brightness.
func InvulnerabilityMap(p *Palette, dst []byte, low, high RGB) {
	_ = dst[Colors-1]

	for i, c := range p {
		dst[i] = BestColor(p, Mix(high, low, Brightness(c)))
	}
}
