package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tetrodeck/config"
	"github.com/plus3/tetrodeck/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configFile string
	seed       uint64
	debugUI    bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "tetrodeck",
	Short: "Falling blocks with a deck, jokers and a shop",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("debug-ui") {
			cfg.DebugUI = debugUI
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}

		logger := logging.New(os.Stderr, "tetrodeck", cfg.Log.Level)
		logger.Info("starting", "seed", cfg.Seed, "debugUI", cfg.DebugUI, "tickRate", cfg.TickRate)

		game := NewGame(cfg, logger)
		ebiten.SetTPS(cfg.TickRate)
		if !cfg.DebugUI {
			ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
			ebiten.SetWindowTitle("Tetrodeck")
		}
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		return ebiten.RunGame(game)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, 0 for time based")
	rootCmd.Flags().BoolVar(&debugUI, "debug-ui", false, "show the ImGui inspector")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("exit", "err", err)
		os.Exit(1)
	}
}
