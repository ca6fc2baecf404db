package core

// Color is one of the fixed cell palette values
type Color uint8

const (
	ColorRed Color = iota
	ColorBlue
	ColorGreen
	ColorPurple
	ColorYellow
)

// PaletteSize is the number of distinct cell colors
const PaletteSize = 5

// Palette lists every cell color in declaration order
var Palette = [PaletteSize]Color{ColorRed, ColorBlue, ColorGreen, ColorPurple, ColorYellow}

var colorNames = [PaletteSize]string{"red", "blue", "green", "purple", "yellow"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// Valid reports whether c is a palette member
func (c Color) Valid() bool {
	return int(c) < PaletteSize
}

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
	RGBCloud = RGB{148, 163, 184}
)

// paletteRGB maps cell colors to their display channels
var paletteRGB = [PaletteSize]RGB{
	{239, 68, 68},
	{59, 130, 246},
	{34, 197, 94},
	{168, 85, 247},
	{250, 204, 21},
}

// RGB returns the display color for a palette value
func (c Color) RGB() RGB {
	if !c.Valid() {
		return RGBCloud
	}
	return paletteRGB[c]
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Scale multiplies each channel by factor (for fading effects)
func (c RGB) Scale(factor float64) RGB {
	if factor <= 0 {
		return RGBBlack
	}
	if factor >= 1 {
		return c
	}
	return RGB{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}
