// pong is single-paddle Pong for the terminal, a desktop window or SSH.
//
// Usage:
//
//	pong list                - List paddle variants
//	pong play [variant]      - Play a variant (terminal, or --window)
//	pong menu                - Pick variants interactively
//	pong scores <variant>    - Show the best rallies for a variant
//	pong serve               - Start SSH server for remote play
//	pong sim [variant]       - Run the game headless and report the result
//	pong config [variant]    - Print the effective settings
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: from timing.frame_interval_ms)
//	--db <path>           - Set database path (default: ~/.pong/scores.db)
//	--config <path>       - Load game settings from a YAML file
//	--difficulty <level>  - easy, normal or hard
//	--verbose             - Log debug output
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

const defaultVariant = "pong"

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
	flagLogFile    string
	flagPlayer     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong - keep the ball in play with one paddle",
	Long: `Pong is a single-paddle Pong. The ball bounces off the top, bottom
and right walls; hold Up/Down to move your paddle on the left and return
it. Miss once and the rally is over.

Available commands:
  list     - Show the paddle variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  scores   - View the best rallies
  serve    - Start SSH server for remote play
  sim      - Run headless, e.g. to watch the autopilot
  config   - Print the effective settings

Examples:
  pong play
  pong play --window
  pong play pong_long --difficulty hard
  pong menu
  pong serve --ssh :2222
  pong sim --demo --duration 30s`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		pong.SetConfigPath(flagConfig)
		pong.SetDifficultyPreset(preset)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate in frames per second (default: from timing.frame_interval_ms)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/scores.db", "Path to rally database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log debug output")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", storage.LocalPlayer, "Name recorded with your rallies")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command's logger. Full-screen commands own the
// terminal, so they pass quiet and only log when --log-file is set.
// The returned func closes the log file.
func newLogger(prefix string, quiet bool) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
			w = io.Discard
		} else {
			w = f
			closeFn = func() { f.Close() }
		}
	case quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn
}

// openStore opens the rally database. Games still run without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open rally database: %v\n", err)
		logger.Warn("rally database unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// newGame creates and resets a variant. Setup errors are fatal to callers.
func newGame(id string) (registry.Game, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown variant %q (run 'pong list' to see them)", id)
	}
	game, err := registry.Create(id)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", id, err)
	}
	if err := game.Reset(); err != nil {
		return nil, fmt.Errorf("configure %s: %w", id, err)
	}
	return game, nil
}

// holdWindow is the terminal key-hold window from the game's config.
func holdWindow(game registry.Game) int {
	if g, ok := game.(*pong.Game); ok {
		return g.Config().Terminal.HoldWindowMS
	}
	return 0
}

// frameRate is --fps when set, else the rate implied by the config's frame interval.
func frameRate(timing config.PongTiming) int {
	if flagFPS > 0 {
		return flagFPS
	}
	return timing.FrameRate()
}

// gameFrameRate is frameRate for a built game.
func gameFrameRate(game registry.Game) int {
	timing := config.DefaultPongConfig().Timing
	if g, ok := game.(*pong.Game); ok {
		timing = g.Config().Timing
	}
	return frameRate(timing)
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig(fps int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = fps
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// variantArg returns the first argument or the default variant.
func variantArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultVariant
}

// fatal prints err and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
