package dcolor

// BestColor returns the index of the palette entry closest to c by
// squared RGB distance. Ties go to the lowest index.
//
// The starting distortion is twice the squared magnitude of c, as in the
// legacy engine. For pure black this is zero and index 0 is returned.
func BestColor(p *Palette, c RGB) uint8 {
	bestDistortion := (c.R*c.R + c.G*c.G + c.B*c.B) * 2
	best := 0

	for i, e := range p {
		dr, dg, db := c.R-e.R, c.G-e.G, c.B-e.B
		distortion := dr*dr + dg*dg + db*db
		if distortion < bestDistortion {
			bestDistortion = distortion
			best = i
		}
	}

	return uint8(best)
}
