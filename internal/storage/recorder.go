package storage

import (
	"time"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Recorder follows one game frame by frame and saves each missed rally once.
// Only unpaused time counts toward a rally's duration.
type Recorder struct {
	store   *Store // nil records nothing
	variant string
	player  string
	dryRun  bool

	started  bool
	lastTick uint64
	playMS   uint64
	prev     core.GameState
	finished bool
	best     int
}

// NewRecorder creates a recorder for variant and loads its best rally.
// With dryRun set, rallies are reported but never saved.
func NewRecorder(store *Store, variant, player string, dryRun bool) (*Recorder, error) {
	if player == "" {
		player = LocalPlayer
	}
	r := &Recorder{store: store, variant: variant, player: player, dryRun: dryRun}
	if store == nil {
		return r, nil
	}
	best, err := store.BestReturns(variant)
	if err != nil {
		return r, err
	}
	r.best = best
	return r, nil
}

// Restart forgets the current rally.
func (r *Recorder) Restart() {
	r.started = false
	r.playMS = 0
	r.finished = false
	r.prev = core.GameState{}
}

// Observe accounts for a frame that ran at now and ended in state.
// done is true on the frame the rally ends; the rally is saved then
// unless it has no returns.
func (r *Recorder) Observe(now uint64, state core.GameState) (rally Rally, done bool, err error) {
	running := !r.prev.Paused && !r.prev.GameOver && !state.Paused
	if r.started && running && now > r.lastTick {
		r.playMS += now - r.lastTick
	}
	r.started = true
	r.lastTick = now
	r.prev = state

	if !state.GameOver || r.finished {
		return Rally{}, false, nil
	}
	r.finished = true

	rally = Rally{
		Variant:  r.variant,
		Returns:  state.Score,
		Duration: r.PlayTime(),
		Player:   r.player,
	}
	if r.store == nil || r.dryRun || rally.Returns == 0 {
		return rally, true, nil
	}

	id, err := r.store.SaveRally(rally)
	if err != nil {
		return rally, true, err
	}
	rally.ID = id
	r.best = max(r.best, rally.Returns)
	return rally, true, nil
}

// PlayTime is the unpaused time of the current rally.
func (r *Recorder) PlayTime() time.Duration {
	return time.Duration(r.playMS) * time.Millisecond
}

// Best is the most returns recorded for the variant.
func (r *Recorder) Best() int {
	return r.best
}
