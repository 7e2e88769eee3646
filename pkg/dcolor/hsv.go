package dcolor

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSV is a hue/saturation/value triple. Hue is in degrees [0, 360),
// saturation and value are in [0, 1].
type HSV struct {
	H, S, V float64
}

// ToHSV decomposes c into hue, saturation and value.
func ToHSV(c RGB) HSV {
	h, s, v := toColorful(c).Hsv()
	return HSV{h, s, v}
}

// RGB recomposes the color, wrapping hue and clamping saturation and value.
func (h HSV) RGB() RGB {
	hue := math.Mod(h.H, 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := colorful.Hsv(hue, clamp01(h.S), clamp01(h.V)).Clamped().RGB255()
	return RGB{int(r), int(g), int(b)}
}

// CombineHSV builds a color taking hue, saturation and value from top
// where the matching selector is set and from bottom otherwise. The
// recomposed channels are rounded, so the HSV blend modes round where
// Mix truncates.
func CombineHSV(top, bottom RGB, selectHue, selectSaturation, selectValue bool) RGB {
	t, b := ToHSV(top), ToHSV(bottom)

	out := b
	if selectHue {
		out.H = t.H
	}
	if selectSaturation {
		out.S = t.S
	}
	if selectValue {
		out.V = t.V
	}
	return out.RGB()
}

func toColorful(c RGB) colorful.Color {
	c = c.Clamped()
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
