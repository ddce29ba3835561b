package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/plus3/drop/internal/sim"
	"github.com/plus3/drop/internal/storage"
)

var (
	flagFrames   int
	flagDuration time.Duration
	flagRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session with an autopilot",
	Long: `Play a session without a window, steered by an autopilot, and print a report.

With --frames the session steps as fast as possible with a fixed time step, so the
same seed always gives the same result. With --duration it runs in real time.

Examples:
  drop sim --frames 36000 --seed 1
  drop sim --duration 30s
  drop sim --frames 3600 --record`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 0, "Number of fixed-step frames to run")
	simCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Real time to run for")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session to the scores database")
	simCmd.MarkFlagsMutuallyExclusive("frames", "duration")
}

func runSim(cmd *cobra.Command, args []string) error {
	if flagFrames == 0 && flagDuration == 0 {
		flagFrames = 60 * 60
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	simSeed := seed()
	report, err := sim.Run(ctx, sim.Options{
		Rules:    cfg.Rules(),
		Sounds:   cfg.SoundBank(),
		Seed:     simSeed,
		Frames:   flagFrames,
		Duration: flagDuration,
		TPS:      cfg.Window.TPS,
		Logger:   logger.WithPrefix("sim"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "--- Simulation Report ---")
	if err := report.Generate(out); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	fmt.Fprintln(out, "--- End of Report ---")

	if !flagRecord {
		return nil
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	_, saveErr := store.SaveSession(storage.Session{
		Mode:     storage.ModeSim,
		Score:    report.Snapshot.Score,
		Frames:   report.Snapshot.Frame,
		Duration: report.TotalTime,
		Seed:     simSeed,
	})
	return errors.Join(saveErr, store.Close())
}
