package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the paddle variants",
	Long: `Show every registered variant with the paddle and field it plays
on, and which config file those settings came from.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	rowStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// cellStyle styles the CLI tables.
func cellStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return rowStyle
}

func runList(_ *cobra.Command, _ []string) error {
	cfg, source, err := config.ResolvePong(flagConfig)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Title", "Paddle", "Field").
		StyleFunc(cellStyle)

	for _, info := range registry.List() {
		paddle, field := "-", "-"
		if g, err := registry.Create(info.ID); err == nil {
			if pg, ok := g.(*pong.Game); ok {
				vc := pg.Variant(cfg)
				paddle = strconv.Itoa(vc.Paddle.Length) + "px"
				field = fmt.Sprintf("%dx%d", vc.Field.Width, vc.Field.Height)
			}
		}
		t.Row(info.ID, info.Title, paddle, field)
	}

	fmt.Println(t.Render())
	fmt.Printf("Settings from %s. Run 'pong play <id>' to play a variant.\n", source)
	return nil
}
