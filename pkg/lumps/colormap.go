package lumps

import (
	"fmt"
	"os"

	"github.com/Faultbox/doomcolors/pkg/dcolor"
)

// Colormap is a parsed multi-page index remap lump.
type Colormap struct {
	data []byte
}

// ParseColormap parses a COLORMAP lump from raw bytes.
// Any whole number of pages is accepted; the engine expects 34.
func ParseColormap(data []byte) (*Colormap, error) {
	if len(data) < dcolor.Colors {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedColormap, len(data))
	}
	if len(data)%dcolor.Colors != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrTruncatedColormap, len(data)%dcolor.Colors)
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	return &Colormap{data: buf}, nil
}

// ParseColormapFile parses a COLORMAP lump from disk.
func ParseColormapFile(path string) (*Colormap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading COLORMAP file: %w", err)
	}
	return ParseColormap(data)
}

// Pages returns the number of remap pages.
func (c *Colormap) Pages() int {
	return len(c.data) / dcolor.Colors
}

// IsComplete reports whether the lump has the 34 pages the engine loads.
func (c *Colormap) IsComplete() bool {
	return c.Pages() == dcolor.ColormapPages
}

// Page returns the 256 indices of page n.
func (c *Colormap) Page(n int) ([]byte, error) {
	if n < 0 || n >= c.Pages() {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageRange, n, c.Pages())
	}
	return c.data[n*dcolor.Colors : (n+1)*dcolor.Colors], nil
}

// Index returns the remapped index of color i on page n.
func (c *Colormap) Index(n, i int) uint8 {
	return c.data[n*dcolor.Colors+i]
}

// Bytes returns the raw lump.
func (c *Colormap) Bytes() []byte {
	return c.data
}

// HasIdentity reports whether page 0 maps every color to itself.
func (c *Colormap) HasIdentity() bool {
	for i := 0; i < dcolor.Colors; i++ {
		if int(c.data[i]) != i {
			return false
		}
	}
	return true
}
