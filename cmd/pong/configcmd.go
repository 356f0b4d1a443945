package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the settings a variant would play with",
	Long: `Print the effective YAML config after the config search, the
--difficulty preset and the variant's own overrides are applied.

With --defaults the embedded default file is printed instead, which is
a good starting point for ~/.pong/configs/pong.yaml.

Examples:
  pong config
  pong config pong_long --difficulty hard
  pong config --defaults > ~/.pong/configs/pong.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the embedded defaults")
}

func runConfig(_ *cobra.Command, args []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.GetDefaultYAML())
		return err
	}

	game, err := newGame(variantArg(args))
	if err != nil {
		return err
	}
	pg, ok := game.(*pong.Game)
	if !ok {
		return fmt.Errorf("%s has no pong config", game.ID())
	}

	fmt.Printf("# %s, loaded from %s\n", game.Title(), pg.ConfigSource())
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(pg.Config()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
