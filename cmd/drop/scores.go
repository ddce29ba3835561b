package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/plus3/drop/internal/storage"
)

var (
	flagScoresMode  string
	flagScoresLimit int
	flagScoresClear bool
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded sessions",
	Long: `Display the best recorded sessions, highest score first.

Examples:
  drop scores
  drop scores --mode sim --limit 5
  drop scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", string(storage.ModePlay), "Which sessions to show: play or sim")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the sessions of this mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	mode := storage.Mode(flagScoresMode)
	if mode != storage.ModePlay && mode != storage.ModeSim {
		return fmt.Errorf("unknown mode %q, want play or sim", flagScoresMode)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagScoresClear {
		if err := store.ClearSessions(mode); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared %s sessions.\n", mode)
		return nil
	}

	sessions, err := store.TopSessions(mode, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Drop - best %s sessions", mode)))
	fmt.Fprintln(out)
	if len(sessions) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No sessions recorded yet. Run 'drop play' to set the first score!"))
		return nil
	}
	fmt.Fprintln(out, renderSessions(sessions))
	return nil
}

func renderSessions(sessions []storage.Session) string {
	rows := make([][]string, 0, len(sessions))
	for i, s := range sessions {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(s.Score, 10),
			s.Duration.Round(time.Second).String(),
			strconv.FormatUint(s.Frames, 10),
			strconv.FormatUint(s.Seed, 10),
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Rank", "Score", "Time", "Frames", "Seed", "Date").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == 0:
				return cellStyle.Inherit(bestStyle)
			}
			return cellStyle
		}).
		String()
}
