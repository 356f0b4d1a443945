// Package registry maps variant IDs to game constructors.
// Variants add themselves from init, so frontends can list and build them
// by ID without importing each one.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Game is what every frontend (terminal, window, headless) drives.
// Implementations hold only simulation and drawing logic; input mapping,
// pacing and presentation belong to the frontend.
type Game interface {
	// ID is the stable key used on the command line and in the rally table.
	ID() string

	// Title is the display name.
	Title() string

	// Reset rebuilds the state from config. Called before the first frame
	// and on every restart.
	Reset() error

	// Frame runs one iteration at monotonic time now, in milliseconds.
	Frame(now uint64, in core.InputFrame) core.StepResult

	// Render clears dst, draws the field and presents it.
	Render(dst core.Canvas) error

	// FieldSize is the playfield in pixels.
	FieldSize() (w, h int)

	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh, un-reset game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register makes a variant available under id. Registering the same id
// twice is a programming error and panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: variant %q registered twice", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	}
}

// List returns every variant ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Create builds a new instance of the variant id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
