package core

import "image/color"

// Color is a palette index shared by every rendering backend.
// The terminal maps it to ANSI codes, the window backend to RGBA.
type Color uint8

// Palette entries.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorBlue
	ColorWhite
	ColorGray
	ColorYellow
)

// palette holds the RGBA value for each Color.
var palette = [...]color.RGBA{
	ColorDefault: {0, 0, 0, 0},
	ColorBlack:   {0, 0, 0, 255},
	ColorBlue:    {0, 0, 255, 255},
	ColorWhite:   {255, 255, 255, 255},
	ColorGray:    {128, 128, 128, 255},
	ColorYellow:  {255, 215, 0, 255},
}

// ToRGBA returns the color's RGBA value.
// Unknown colors map to transparent.
func (c Color) ToRGBA() color.RGBA {
	if int(c) >= len(palette) {
		return color.RGBA{}
	}
	return palette[c]
}
