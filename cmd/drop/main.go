// drop is a falling-raindrop arcade game: catch the rain in a bucket, dodge the stones.
//
// Usage:
//
//	drop                 - Play in a window (same as drop play)
//	drop play            - Play in a window
//	drop scores          - Show the best recorded sessions
//	drop sim             - Run a headless session with an autopilot
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.drop/config.yaml, ./configs/drop.yaml)
//	--db <path>          - Score database (default: ~/.drop/scores.db)
//	--seed <value>       - RNG seed (0 = random based on time)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plus3/drop/internal/config"
	"github.com/plus3/drop/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     uint64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop - catch the rain",
	Long: `Drop is a small arcade game. Raindrops, stones and sponges fall from the
sky; move the bucket to catch the rain, avoid the stones and let the sponges
drain the puddles.

Controls:
  Left/A, Right/D   - Move the bucket (gamepad d-pad works too)
  M                 - Mute or unmute
  F3                - Toggle the debug overlay (with --debug)

Examples:
  drop
  drop play --seed 42 --debug
  drop scores
  drop sim --frames 36000`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the scores database (default ~/.drop/scores.db)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "drop",
		Level:           level,
	}), nil
}

// loadConfig reads the config and applies the global overrides.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, err := config.Load(flagConfig, logger.WithPrefix("config"))
	if err != nil {
		return config.Config{}, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	return cfg, nil
}

func seed() uint64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return uint64(time.Now().UnixNano())
}

// openStore opens the score database, or returns nil with a warning so the game still
// runs without history.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database, history is disabled", "error", err)
		return nil
	}
	return store
}
