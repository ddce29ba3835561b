package main

import (
	"github.com/spf13/cobra"

	"github.com/plus3/drop/internal/client"
	"github.com/plus3/drop/internal/settings"
)

var (
	flagAssets string
	flagDebug  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in a window",
	Long: `Open the game window. The session score is recorded when the window closes.

Examples:
  drop play
  drop play --assets ./assets --seed 7
  drop play --debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagAssets, "assets", "", "Directory holding images and sounds (default from config)")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the debug overlay")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	if flagAssets != "" {
		cfg.Assets.Dir = flagAssets
	}
	if flagDebug {
		cfg.Debug.Overlay = true
	}

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	gameSeed := seed()
	logger.Info("starting", "seed", gameSeed, "assets", cfg.Assets.Dir)
	return client.Run(client.Options{
		Config:   cfg,
		Seed:     gameSeed,
		Store:    store,
		Settings: settings.Open("drop", logger.WithPrefix("settings")),
		Logger:   logger,
	})
}
