// Package viewer shows PLAYPAL and COLORMAP pages in a true-color terminal.
package viewer

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/doomcolors/pkg/dcolor"
)

// Grid layout. Each swatch is two cells wide so it reads as a square.
const (
	SwatchWidth = 2
	GridRow     = 1 // First row of the swatch grid; row 0 is the title
)

// ErrNoPalette is returned when the PLAYPAL holds no complete page.
var ErrNoPalette = errors.New("no complete palette page")

// Viewer draws one 16x16 page at a time.
type Viewer struct {
	screen   tcell.Screen
	playpal  []byte
	colormap []byte

	palPages  int
	cmapPages int

	showColormap bool
	palPage      int
	cmapPage     int
}

// New creates a viewer. colormap may be nil.
func New(screen tcell.Screen, playpal, colormap []byte) (*Viewer, error) {
	v := &Viewer{
		screen:    screen,
		playpal:   playpal,
		colormap:  colormap,
		palPages:  len(playpal) / dcolor.PaletteSize,
		cmapPages: len(colormap) / dcolor.Colors,
	}
	if v.palPages == 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrNoPalette, len(playpal))
	}
	v.showColormap = v.cmapPages > 0
	return v, nil
}

// Title describes the current page.
func (v *Viewer) Title() string {
	if v.showColormap {
		return fmt.Sprintf("COLORMAP %d/%d  palette %d/%d  [arrows] page  [tab] PLAYPAL  [q] quit",
			v.cmapPage, v.cmapPages-1, v.palPage, v.palPages-1)
	}
	return fmt.Sprintf("PLAYPAL %d/%d  [arrows] page  [q] quit", v.palPage, v.palPages-1)
}

// Swatch returns the color shown for palette index i.
func (v *Viewer) Swatch(i int) dcolor.RGB {
	idx := i
	if v.showColormap {
		idx = int(v.colormap[v.cmapPage*dcolor.Colors+i])
	}
	off := v.palPage*dcolor.PaletteSize + idx*3
	return dcolor.RGB{R: int(v.playpal[off]), G: int(v.playpal[off+1]), B: int(v.playpal[off+2])}
}

// Draw renders the current page without calling Show.
func (v *Viewer) Draw() {
	v.screen.Clear()

	title := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for x, r := range v.Title() {
		v.screen.SetContent(x, 0, r, nil, title)
	}

	const columns = 16
	for i := 0; i < dcolor.Colors; i++ {
		c := v.Swatch(i)
		style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		x := (i % columns) * SwatchWidth
		y := GridRow + i/columns
		for dx := 0; dx < SwatchWidth; dx++ {
			v.screen.SetContent(x+dx, y, ' ', nil, style)
		}
	}
}

// HandleKey applies a key press. It returns false when the viewer should
// close.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		if v.cmapPages > 0 {
			v.showColormap = !v.showColormap
		}
	case tcell.KeyRight:
		v.step(1)
	case tcell.KeyLeft:
		v.step(-1)
	case tcell.KeyUp:
		v.palPage = wrap(v.palPage+1, v.palPages)
	case tcell.KeyDown:
		v.palPage = wrap(v.palPage-1, v.palPages)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'l':
			v.step(1)
		case 'h':
			v.step(-1)
		}
	}
	return true
}

// step moves to another page of whichever lump is shown.
func (v *Viewer) step(d int) {
	if v.showColormap {
		v.cmapPage = wrap(v.cmapPage+d, v.cmapPages)
	} else {
		v.palPage = wrap(v.palPage+d, v.palPages)
	}
}

func wrap(n, size int) int {
	return ((n % size) + size) % size
}

// Run draws and handles input until the user quits. The screen must
// already be initialized; Run does not call Fini.
func (v *Viewer) Run() {
	for {
		v.Draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if !v.HandleKey(ev) {
				return
			}
		case *tcell.EventResize:
			v.screen.Sync()
		case nil:
			return
		}
	}
}

// Show opens the terminal and runs the viewer on it.
func Show(playpal, colormap []byte) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v, err := New(screen, playpal, colormap)
	if err != nil {
		return err
	}
	v.Run()
	return nil
}
