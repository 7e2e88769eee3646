package dcolor

import (
	"fmt"
	"strings"
)

// BlendMode selects how a target color is combined with a palette entry.
type BlendMode uint8

// Blend modes.
const (
	Normal     BlendMode = iota // Replace with the target
	Multiply                    // base * target
	Screen                      // 1 - (1-base)*(1-target)
	Hue                         // Target hue, base saturation and value
	Saturation                  // Target saturation
	Color                       // Target hue and saturation, base value
	Luminosity                  // Target value
)

var blendModeNames = [...]string{
	Normal:     "normal",
	Multiply:   "multiply",
	Screen:     "screen",
	Hue:        "hue",
	Saturation: "saturation",
	Color:      "color",
	Luminosity: "luminosity",
}

// String returns the lowercase mode name.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return fmt.Sprintf("Unknown(%d)", m)
}

// Valid reports whether m is one of the defined modes.
func (m BlendMode) Valid() bool {
	return int(m) < len(blendModeNames)
}

// ParseBlendMode parses a mode name case-insensitively.
func ParseBlendMode(s string) (BlendMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), nil
		}
	}
	return Normal, fmt.Errorf("unknown blend mode %q", s)
}

// BlendModes returns every defined mode in declaration order.
func BlendModes() []BlendMode {
	modes := make([]BlendMode, len(blendModeNames))
	for i := range modes {
		modes[i] = BlendMode(i)
	}
	return modes
}

// Blend combines base and target fully (factor 1) under mode.
func Blend(base, target RGB, mode BlendMode) RGB {
	switch mode {
	case Multiply:
		return RGB{
			R: base.R * target.R / 255,
			G: base.G * target.G / 255,
			B: base.B * target.B / 255,
		}.Clamped()
	case Screen:
		return RGB{
			R: 255 - (255-base.R)*(255-target.R)/255,
			G: 255 - (255-base.G)*(255-target.G)/255,
			B: 255 - (255-base.B)*(255-target.B)/255,
		}.Clamped()
	case Hue:
		return CombineHSV(target, base, true, false, false)
	case Saturation:
		return CombineHSV(target, base, false, true, false)
	case Color:
		return CombineHSV(target, base, true, true, false)
	case Luminosity:
		return CombineHSV(target, base, false, false, true)
	default:
		return target.Clamped()
	}
}

// Apply blends base toward target under mode, weighted by factor.
// Factor 0 returns base, factor 1 returns Blend(base, target, mode).
func Apply(base, target RGB, mode BlendMode, factor float32) RGB {
	return Mix(Blend(base, target, mode), base, factor)
}
