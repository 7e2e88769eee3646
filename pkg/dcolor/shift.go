package dcolor

// Effect is a target color and the mode used to blend toward it.
type Effect struct {
	Color RGB
	Mode  BlendMode
}

// ShiftPalette writes one page of p shifted toward target by step/steps
// into dst, which must hold at least PaletteSize bytes. Pages store RGB
// directly; no quantization happens here.
//
// Normal mode uses the legacy integer shift so vanilla ramps are
// reproduced bit for bit. Other modes go through Apply.
func ShiftPalette(p *Palette, dst []byte, target Effect, step, steps int) {
	_ = dst[PaletteSize-1]

	factor := float32(step) / float32(steps)
	for i, in := range p {
		var out RGB
		if target.Mode == Normal {
			out = RGB{
				R: shiftChannel(in.R, target.Color.R, step, steps),
				G: shiftChannel(in.G, target.Color.G, step, steps),
				B: shiftChannel(in.B, target.Color.B, step, steps),
			}
		} else {
			out = Apply(in, target.Color, target.Mode, factor)
		}

		off := i * 3
		dst[off] = uint8(out.R)
		dst[off+1] = uint8(out.G)
		dst[off+2] = uint8(out.B)
	}
}

// ShiftRamp writes count consecutive pages into dst for steps 1..count.
func ShiftRamp(p *Palette, dst []byte, target Effect, count, steps int) {
	for i := 0; i < count; i++ {
		ShiftPalette(p, dst[i*PaletteSize:], target, i+1, steps)
	}
}
