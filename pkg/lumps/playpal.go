// Package lumps provides codecs for the PLAYPAL and COLORMAP lumps.
package lumps

import (
	"errors"
	"fmt"
	"os"

	"github.com/Faultbox/doomcolors/pkg/dcolor"
	"github.com/lucasb-eyer/go-colorful"
)

// Lump errors.
var (
	ErrTruncatedPlaypal  = errors.New("truncated PLAYPAL data")
	ErrTruncatedColormap = errors.New("truncated COLORMAP data")
	ErrPageRange         = errors.New("page out of range")
)

// Playpal is a parsed multi-page palette lump.
type Playpal struct {
	data []byte
}

// ParsePlaypal parses a PLAYPAL lump from raw bytes.
// Any whole number of pages is accepted; the engine expects 14.
func ParsePlaypal(data []byte) (*Playpal, error) {
	if len(data) < dcolor.PaletteSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedPlaypal, len(data))
	}
	if len(data)%dcolor.PaletteSize != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrTruncatedPlaypal, len(data)%dcolor.PaletteSize)
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	return &Playpal{data: buf}, nil
}

// ParsePlaypalFile parses a PLAYPAL lump from disk.
func ParsePlaypalFile(path string) (*Playpal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PLAYPAL file: %w", err)
	}
	return ParsePlaypal(data)
}

// Pages returns the number of palette pages.
func (p *Playpal) Pages() int {
	return len(p.data) / dcolor.PaletteSize
}

// IsComplete reports whether the lump has the 14 pages the engine loads.
func (p *Playpal) IsComplete() bool {
	return p.Pages() == dcolor.PlaypalPages
}

// Page returns the raw bytes of page n.
func (p *Playpal) Page(n int) ([]byte, error) {
	if n < 0 || n >= p.Pages() {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageRange, n, p.Pages())
	}
	return p.data[n*dcolor.PaletteSize : (n+1)*dcolor.PaletteSize], nil
}

// Palette returns page n as a lookup palette.
func (p *Playpal) Palette(n int) (*dcolor.Palette, error) {
	page, err := p.Page(n)
	if err != nil {
		return nil, err
	}
	return dcolor.NewPalette(page)
}

// Color returns entry i of page n.
func (p *Playpal) Color(n, i int) dcolor.RGB {
	off := n*dcolor.PaletteSize + i*3
	return dcolor.RGB{R: int(p.data[off]), G: int(p.data[off+1]), B: int(p.data[off+2])}
}

// Bytes returns the raw lump.
func (p *Playpal) Bytes() []byte {
	return p.data
}

// PageStats summarizes one palette page.
type PageStats struct {
	Average   dcolor.RGB
	Lightness float64 // Mean CIE L*, 0-1
	Unique    int     // Distinct colors
}

// Stats computes summary statistics for page n.
func (p *Playpal) Stats(n int) (PageStats, error) {
	if n < 0 || n >= p.Pages() {
		return PageStats{}, fmt.Errorf("%w: %d of %d", ErrPageRange, n, p.Pages())
	}

	var stats PageStats
	var sumR, sumG, sumB int
	var sumL float64
	seen := make(map[dcolor.RGB]struct{}, dcolor.Colors)

	for i := 0; i < dcolor.Colors; i++ {
		c := p.Color(n, i)
		sumR += c.R
		sumG += c.G
		sumB += c.B
		seen[c] = struct{}{}

		l, _, _ := colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}.Lab()
		sumL += l
	}

	stats.Average = dcolor.RGB{R: sumR / dcolor.Colors, G: sumG / dcolor.Colors, B: sumB / dcolor.Colors}
	stats.Lightness = sumL / dcolor.Colors
	stats.Unique = len(seen)
	return stats, nil
}
