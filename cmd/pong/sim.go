package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/loop"
	"github.com/vovakirdan/tui-pong/internal/platform/headless"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var (
	flagSimDuration time.Duration
	flagRealtime    bool
	flagDump        bool
	flagSimDemo     bool
	flagStopOnMiss  bool
	flagSimCols     int
	flagSimRows     int
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run a variant headless",
	Long: `Run the game loop without a terminal or window and report how the
rally went. By default time is simulated, so a long run finishes at once;
--realtime paces frames against the wall clock instead.

Examples:
  pong sim --demo --duration 1m
  pong sim pong_long --demo --stop-on-miss
  pong sim --duration 2s --dump`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().DurationVar(&flagSimDuration, "duration", 10*time.Second, "How long to run")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace frames against the wall clock")
	simCmd.Flags().BoolVar(&flagDump, "dump", false, "Print the last frame")
	simCmd.Flags().BoolVar(&flagSimDemo, "demo", false, "Let the autopilot play")
	simCmd.Flags().BoolVar(&flagStopOnMiss, "stop-on-miss", false, "Stop as soon as the ball leaves the field")
	simCmd.Flags().IntVar(&flagSimCols, "cols", 80, "Width of the off-screen frame in cells")
	simCmd.Flags().IntVar(&flagSimRows, "rows", 24, "Height of the off-screen frame in cells")
}

func runSim(_ *cobra.Command, args []string) {
	logger, closeLog := newLogger("pong-sim", false)
	defer closeLog()

	game, err := newGame(variantArg(args))
	if err != nil {
		fatal("%v", err)
	}
	pg, ok := game.(*pong.Game)
	if !ok {
		fatal("%s cannot run headless", game.ID())
	}

	interval := time.Duration(pg.Config().Timing.FrameIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = loop.DefaultFrameInterval
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := loop.Options{
		FrameInterval: interval,
		Logger:        logger,
	}
	if flagRealtime {
		opts.Clock = core.NewSystemClock()
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagSimDuration)
		defer cancel()
	} else {
		opts.Clock = core.NewManualClock(0)
		opts.MaxFrames = max(int(flagSimDuration/interval), 1)
	}

	missedAt := 0
	opts.OnFrame = func(frame int, res core.StepResult) {
		if res.State.GameOver && missedAt == 0 {
			missedAt = frame
			logger.Info("ball missed", "frame", frame, "returns", res.State.Score)
		}
	}

	w, h := game.FieldSize()
	platform := headless.New(pg, w, h, headless.Options{
		Cols:       flagSimCols,
		Rows:       flagSimRows,
		Autopilot:  flagSimDemo,
		StopOnMiss: flagStopOnMiss,
	})

	logger.Debug("sim started", "game", game.ID(), "interval", interval, "realtime", flagRealtime)
	stats, err := loop.Run(ctx, game, platform, opts)
	if err != nil {
		fatal("%v", err)
	}

	if flagDump {
		fmt.Println(tui.RenderScreen(platform.Screen()))
	}

	fmt.Printf("%s: %d frames (%d drawn) over %v\n", game.Title(), stats.Frames, stats.Rendered, stats.Elapsed())
	fmt.Printf("Returns: %d\n", stats.Last.Score)
	if missedAt > 0 {
		fmt.Printf("Missed on frame %d\n", missedAt)
	} else {
		fmt.Println("Still in play")
	}
}
