package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	c := NewManualClock(100)
	if c.Ticks() != 100 {
		t.Fatalf("Ticks() = %d, expected 100", c.Ticks())
	}

	c.Advance(16)
	if err := c.Sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("Sleep() failed: %v", err)
	}
	if c.Ticks() != 136 {
		t.Errorf("Ticks() = %d, expected 136", c.Ticks())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Sleep(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() on canceled ctx = %v, expected context.Canceled", err)
	}
	if c.Ticks() != 136 {
		t.Error("Sleep() on canceled ctx should not advance the clock")
	}
}

func TestSystemClockSleep(t *testing.T) {
	c := NewSystemClock()
	before := c.Ticks()
	if err := c.Sleep(context.Background(), 5*time.Millisecond); err != nil {
		t.Fatalf("Sleep() failed: %v", err)
	}
	if c.Ticks() < before+5 {
		t.Errorf("Ticks() advanced %d ms, expected at least 5", c.Ticks()-before)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := c.Sleep(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() on canceled ctx = %v, expected context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Sleep() should return promptly when ctx is canceled")
	}
}

func TestColorToRGBA(t *testing.T) {
	if got := ColorBlue.ToRGBA(); got.R != 0 || got.G != 0 || got.B != 255 || got.A != 255 {
		t.Errorf("ColorBlue = %+v, expected opaque pure blue", got)
	}
	if got := ColorWhite.ToRGBA(); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("ColorWhite = %+v, expected white", got)
	}
	if got := Color(200).ToRGBA(); got.A != 0 {
		t.Errorf("unknown color should be transparent, got %+v", got)
	}
}
