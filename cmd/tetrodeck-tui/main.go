package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/plus3/tetrodeck/config"
	"github.com/plus3/tetrodeck/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configFile string
	seed       uint64
	mute       bool
	logFile    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "tetrodeck-tui",
	Short: "Play tetrodeck in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = logLevel
		}
		if mute {
			cfg.Sound = false
		}

		// The terminal belongs to the screen, so logs go to a file or nowhere.
		out := os.DevNull
		if logFile != "" {
			out = logFile
		}
		f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger := logging.New(f, "tui", cfg.Log.Level)

		app, err := NewApp(cfg, logger)
		if err != nil {
			return err
		}
		return app.Run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, 0 for time based")
	rootCmd.Flags().BoolVar(&mute, "mute", false, "disable sound")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("exit", "err", err)
		os.Exit(1)
	}
}
