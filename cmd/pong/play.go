package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/platform/window"
)

var (
	flagWindow bool
	flagDemo   bool
	flagScale  float64
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: pong).

Controls:
  Up/Down, W/S  - Move the paddle (hold)
  Space/P       - Pause / resume
  R             - Serve a fresh ball
  Esc/Q         - Quit
  Ctrl+S        - Screenshot (terminal only)

Terminals report key presses but not releases, so a key counts as held
for a short window after each press (terminal.hold_window_ms in the
config). The window frontend reads real key state.

Difficulty options:
  easy    - Serve at the configured speed
  normal  - Serve 30% of the way to the fastest speed
  hard    - Serve 70% of the way to the fastest speed

Examples:
  pong play
  pong play pong_long
  pong play --window --scale 0.75
  pong play --demo
  pong play --config ./my-pong.yaml --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Play in a desktop window instead of the terminal")
	playCmd.Flags().BoolVar(&flagDemo, "demo", false, "Let the autopilot play (rallies are not saved)")
	playCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size relative to the field (with --window)")
}

func runPlay(_ *cobra.Command, args []string) {
	logger, closeLog := newLogger("pong", !flagWindow)
	defer closeLog()

	game, err := newGame(variantArg(args))
	if err != nil {
		fatal("%v", err)
	}

	if pg, ok := game.(*pong.Game); ok {
		logger.Debug("config loaded", "source", pg.ConfigSource(), "difficulty", pg.Config().Difficulty.Level())
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if flagWindow {
		state, err := window.Run(game, window.Options{
			Store:  store,
			Logger: logger,
			Player: flagPlayer,
			TPS:    gameFrameRate(game),
			Scale:  flagScale,
			Demo:   flagDemo,
		})
		if err != nil {
			fatal("running game: %v", err)
		}
		fmt.Printf("%s: %d returns\n", game.Title(), state.Score)
		return
	}

	_, err = tui.Run(game, tui.ModelOptions{
		Store:        store,
		Config:       terminalConfig(gameFrameRate(game)),
		Logger:       logger,
		Player:       flagPlayer,
		HoldWindowMS: holdWindow(game),
		Demo:         flagDemo,
	})
	if err != nil {
		fatal("running game: %v", err)
	}
}
