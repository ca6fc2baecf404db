package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/neurobreath/core"
)

// RGBToTcell converts RGB to tcell.Color
func RGBToTcell(rgb core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// TcellToRGB converts tcell.Color to RGB, treating ColorDefault as the background
func TcellToRGB(c tcell.Color) core.RGB {
	if c == tcell.ColorDefault {
		return RgbBackground
	}
	r, g, b := c.RGB()
	return core.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// Theme colors
var (
	RgbBackground = core.RGB{R: 15, G: 23, B: 42}
	RgbText       = core.RGB{R: 226, G: 232, B: 240}
	RgbDim        = core.RGB{R: 100, G: 116, B: 139}
	RgbAccent     = core.RGB{R: 56, G: 189, B: 248}
	RgbInhale     = core.RGB{R: 125, G: 211, B: 252}
	RgbExhale     = core.RGB{R: 134, G: 239, B: 172}
	RgbWarn       = core.RGB{R: 250, G: 204, B: 21}
	RgbDanger     = core.RGB{R: 248, G: 113, B: 113}
)
