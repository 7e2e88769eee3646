package dcolor

// Ramp step totals. The final generated step never reaches the target:
// the hurt ramp stops at 8/9 and the pickup ramp at 4/8.
const (
	HurtSteps      = 9
	PickupSteps    = 8
	RadiationSteps = 8
)

// PaletteOptions selects the flash colors for the PLAYPAL ramps.
type PaletteOptions struct {
	Hurt      Effect
	Pickup    Effect
	Radiation Effect
}

// VanillaPalette returns the options that reproduce the shipped PLAYPAL.
// The radiation green is 256, as the legacy tool passes it.
func VanillaPalette() PaletteOptions {
	return PaletteOptions{
		Hurt:      Effect{Color: RGB{255, 0, 0}, Mode: Normal},
		Pickup:    Effect{Color: RGB{215, 186, 69}, Mode: Normal},
		Radiation: Effect{Color: RGB{0, 256, 0}, Mode: Normal},
	}
}

// BuildPalette generates a 14-page PLAYPAL from the first page of base.
func BuildPalette(base []byte, opts PaletteOptions) ([]byte, error) {
	p, err := NewPalette(base)
	if err != nil {
		return nil, err
	}

	out := make([]byte, PlaypalSize)
	copy(out, base[:PaletteSize])

	ShiftRamp(p, out[HurtStart*PaletteSize:], opts.Hurt, HurtPages, HurtSteps)
	ShiftRamp(p, out[PickupStart*PaletteSize:], opts.Pickup, PickupPages, PickupSteps)
	ShiftPalette(p, out[RadiationStart*PaletteSize:], opts.Radiation, 1, RadiationSteps)

	return out, nil
}
