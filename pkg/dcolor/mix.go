package dcolor

// Mix interpolates each channel as b + (a-b)*factor and truncates the
// result. Factor 0 yields b and factor 1 yields a exactly.
// Arithmetic is float32 on the 0-255 scale.
func Mix(a, b RGB, factor float32) RGB {
	return RGB{
		R: mixChannel(a.R, b.R, factor),
		G: mixChannel(a.G, b.G, factor),
		B: mixChannel(a.B, b.B, factor),
	}
}

func mixChannel(a, b int, factor float32) int {
	// The explicit conversion keeps the product from being fused.
	v := float32(b) + float32(float32(a-b)*factor)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return int(v)
}

// shiftChannel is the legacy integer palette shift. Division truncates
// toward zero, so negative deltas round up.
func shiftChannel(in, target, step, steps int) int {
	return clampChannel(in + (target-in)*step/steps)
}

// fadeChannel is the legacy integer darkness fade toward target.
// The +16 rounds to the nearest whole value at the division.
func fadeChannel(in, target, level int) int {
	return clampChannel(target + ((in-target)*(DarknessLevels-level)+DarknessLevels/2)/DarknessLevels)
}
