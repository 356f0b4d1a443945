package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "      \n      \n      " {
		t.Errorf("String() = %q, expected blank rows", got)
	}

	if z := NewScreen(-1, -4); z.Width() != 0 || z.Height() != 0 {
		t.Errorf("negative sizes should become 0, got %dx%d", z.Width(), z.Height())
	}
}

func TestScreenCells(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetCell(1, 1, Cell{Rune: HalfBlock, Fg: ColorWhite, Bg: ColorBlue})

	got := s.GetCell(1, 1)
	if got.Rune != HalfBlock || got.Fg != ColorWhite || got.Bg != ColorBlue {
		t.Errorf("GetCell(1, 1) = %+v, expected half block white on blue", got)
	}

	s.SetCell(-1, 0, Cell{Rune: 'x'})
	s.SetCell(4, 1, Cell{Rune: 'x'})
	if strings.Contains(s.String(), "x") {
		t.Error("out of bounds writes should be dropped")
	}
	if c := s.GetCell(9, 9); c != blankCell {
		t.Errorf("out of bounds GetCell = %+v, expected blank", c)
	}

	s.Clear()
	if s.GetCell(1, 1) != blankCell {
		t.Error("Clear should blank colors too")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(7, 0, "PAUSED")
	if got := s.Row(0); got != "       PAU" {
		t.Errorf("Row(0) = %q, expected text clipped at the right edge", got)
	}
	if c := s.GetCell(7, 0); c.Fg != ColorBlack || c.Bg != ColorWhite {
		t.Errorf("text cell = %+v, expected black on white", c)
	}

	s.DrawTextCentered(2, "Hi")
	if got := s.Row(2); got != "    Hi    " {
		t.Errorf("Row(2) = %q, expected centered text", got)
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(10, 4)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 3, "World")

	s.Resize(3, 2)
	if s.String() != "Hel\n   " {
		t.Errorf("shrunk screen = %q", s.String())
	}

	s.Resize(6, 3)
	if got := s.Row(0); got != "Hel   " {
		t.Errorf("Row(0) = %q, expected old content and blank new cells", got)
	}
	if s.GetCell(5, 2) != blankCell {
		t.Error("new cells should be blank")
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(4, 1)
	if got := s.Row(-1); got != "    " {
		t.Errorf("Row(-1) = %q, expected blanks", got)
	}
}
