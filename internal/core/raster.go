package core

import "errors"

// HalfBlock is the glyph used for raster cells: its foreground paints the
// upper pixel and its background the lower one.
const HalfBlock = '▀'

// ErrEmptySurface is returned by Present when the target screen has no cells.
var ErrEmptySurface = errors.New("raster: target screen has no cells")

// Raster is a Canvas that scales a fixed pixel field onto a terminal Screen.
// Each screen cell covers two vertically stacked raster pixels.
type Raster struct {
	fieldW, fieldH int
	screen         *Screen
	px             [][]Color // [row][col], 2*screen.Height() rows
}

// NewRaster creates a raster presenting a fieldW×fieldH pixel field on screen.
func NewRaster(fieldW, fieldH int, screen *Screen) *Raster {
	r := &Raster{fieldW: fieldW, fieldH: fieldH, screen: screen}
	r.allocate()
	return r
}

// allocate sizes the pixel grid to match the screen.
func (r *Raster) allocate() {
	rows := r.screen.Height() * 2
	r.px = make([][]Color, rows)
	for y := range r.px {
		r.px[y] = make([]Color, r.screen.Width())
	}
}

// Screen returns the screen the raster presents to.
func (r *Raster) Screen() *Screen {
	return r.screen
}

// Resize re-fits the raster to the screen after the screen changed size.
func (r *Raster) Resize() {
	if len(r.px) == r.screen.Height()*2 && (len(r.px) == 0 || len(r.px[0]) == r.screen.Width()) {
		return
	}
	r.allocate()
}

// Clear starts a frame, re-fitting to the screen and filling every pixel with c.
func (r *Raster) Clear(c Color) {
	r.Resize()
	for y := range r.px {
		for x := range r.px[y] {
			r.px[y][x] = c
		}
	}
}

// FillRect scales rect from field pixels to raster pixels and fills it.
// Any rect with area covers at least one raster pixel so thin walls stay visible.
func (r *Raster) FillRect(rect Rect, c Color) {
	if rect.Empty() || r.fieldW <= 0 || r.fieldH <= 0 || len(r.px) == 0 {
		return
	}
	cols := len(r.px[0])
	rows := len(r.px)

	x0 := rect.X * cols / r.fieldW
	x1 := ceilDiv(rect.Right()*cols, r.fieldW)
	y0 := rect.Y * rows / r.fieldH
	y1 := ceilDiv(rect.Bottom()*rows, r.fieldH)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	x0, x1 = Clamp(x0, 0, cols), Clamp(x1, 0, cols)
	y0, y1 = Clamp(y0, 0, rows), Clamp(y1, 0, rows)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.px[y][x] = c
		}
	}
}

// Present writes the pixel grid into the screen as half-block cells.
func (r *Raster) Present() error {
	if r.screen.Width() == 0 || r.screen.Height() == 0 {
		return ErrEmptySurface
	}
	if len(r.px) != r.screen.Height()*2 || len(r.px[0]) != r.screen.Width() {
		// Screen changed size mid-frame; present a blank frame.
		r.allocate()
	}
	for y := 0; y < r.screen.Height(); y++ {
		top, bottom := r.px[2*y], r.px[2*y+1]
		for x := 0; x < r.screen.Width(); x++ {
			r.screen.SetCell(x, y, Cell{Rune: HalfBlock, Fg: top[x], Bg: bottom[x]})
		}
	}
	return nil
}

// ceilDiv divides rounding toward positive infinity for non-negative a and b > 0.
// Negative numerators fall back to truncation, which the later clamp absorbs.
func ceilDiv(a, b int) int {
	if a <= 0 {
		return a / b
	}
	return (a + b - 1) / b
}
