package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode, the same session SSH players get.

Press b while paused or after a miss to come back to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  A            - Toggle the autopilot
  Tab          - Best rallies
  Q/Esc        - Quit

Examples:
  pong menu
  pong menu --fps 30
  pong menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger("pong", true)
	defer closeLog()

	gameCfg, err := config.LoadPong(flagConfig)
	if err != nil {
		fatal("%v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	err = tui.RunSession(tui.SessionOptions{
		Store:        store,
		Config:       terminalConfig(frameRate(gameCfg.Timing)),
		Player:       flagPlayer,
		HoldWindowMS: gameCfg.Terminal.HoldWindowMS,
		Logger:       logger,
	})
	if err != nil {
		fatal("%v", err)
	}
}
