package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/educareer/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded session transitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryTransitions(cmd.Context(), sessionID, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query transitions: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No transitions recorded yet.")
			return nil
		}

		counts := make(map[string]int)
		var order []string
		rows := make([][]string, 0, len(events))
		for _, e := range events {
			rows = append(rows, []string{
				e.Timestamp.Local().Format(timeLayout),
				truncate(e.SessionID, 36),
				e.Event,
				e.From,
				e.To,
			})
			if counts[e.Event] == 0 {
				order = append(order, e.Event)
			}
			counts[e.Event]++
		}
		printTable(os.Stdout, []string{"Time", "Session", "Event", "From", "To"}, rows)

		rows = rows[:0]
		for _, ev := range order {
			rows = append(rows, []string{ev, itoa(counts[ev])})
		}
		fmt.Println()
		printTable(os.Stdout, []string{"Event", "Count"}, rows)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 50, "Number of transitions to show")
	statsCmd.Flags().StringP("session", "s", "", "Only show one session")
}
