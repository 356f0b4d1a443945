package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagScoresTUI bool
	flagClear     bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show the best rallies for a variant",
	Long: `Display the ten longest rallies for the given variant.

Examples:
  pong scores pong
  pong scores pong_long --tui
  pong scores pong --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse all variants in the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded rally for the variant")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'pong list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fatal("creating game: %v", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening rally database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRallies(gameID); err != nil {
			fatal("clearing rallies: %v", err)
		}
		fmt.Printf("Cleared all rallies for %s.\n", title)
		return
	}

	if flagScoresTUI {
		cfg := terminalConfig(0)
		if _, err := tui.RunScoreboard(store, gameID, cfg.ScreenW, cfg.ScreenH); err != nil {
			fatal("%v", err)
		}
		return
	}

	rallies, err := store.TopRallies(gameID, 10)
	if err != nil {
		fatal("retrieving rallies: %v", err)
	}

	fmt.Printf("Best Rallies - %s\n", title)
	fmt.Println()

	if len(rallies) == 0 {
		fmt.Println("No rallies recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'pong play %s' and return the ball to get on the board!\n", gameID)
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("#", "Returns", "Time", "Player", "Date").
		StyleFunc(cellStyle)
	for i, r := range rallies {
		t.Row(strconv.Itoa(i+1), strconv.Itoa(r.Returns), tui.FormatDuration(r.Duration), r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println(t.Render())

	if stats, err := store.Stats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  |  %d rallies  |  avg %.1f returns\n",
			stats.BestReturns, stats.Rallies, stats.AvgReturns)
	}
}
