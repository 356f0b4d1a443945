package core

// Canvas is a render surface that accepts filled rectangles.
// A frame is a Clear, any number of FillRect calls, and a Present.
type Canvas interface {
	// Clear fills the whole surface with c.
	Clear(c Color)

	// FillRect fills r (field pixel coordinates) with c.
	// Parts of r outside the surface are clipped.
	FillRect(r Rect, c Color)

	// Present publishes the frame drawn since the last Clear.
	Present() error
}
