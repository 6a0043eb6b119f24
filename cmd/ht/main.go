package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pbaille/ht/internal/api"
	"github.com/pbaille/ht/internal/auth"
	"github.com/pbaille/ht/internal/domain"
	"github.com/pbaille/ht/internal/stats"
	"github.com/pbaille/ht/internal/store"
)

var dbPath string

func main() {
	// Default database location
	home, _ := os.UserHomeDir()
	defaultDB := filepath.Join(home, ".ht", "ht.db")

	rootCmd := &cobra.Command{
		Use:   "ht",
		Short: "Daily headache tracker",
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "database path")

	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(todayCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(mcpCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore() (*store.Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(dbPath)
}

// entryFlags holds the shared content flags for log and edit
type entryFlags struct {
	score     float64
	notes     string
	causes    []string
	locations []string
	timeOfDay string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.score, "score", "s", 0, "intensity from 0 (none) to 5 (extreme)")
	cmd.Flags().StringVarP(&f.notes, "notes", "m", "", "free-form notes")
	cmd.Flags().StringArrayVarP(&f.causes, "cause", "c", nil, "suspected cause (repeatable)")
	cmd.Flags().StringArrayVarP(&f.locations, "location", "l", nil, "headache location (repeatable)")
	cmd.Flags().StringVarP(&f.timeOfDay, "time", "t", "", "time of day (Morning, Noon, Afternoon, Evening)")
	cmd.MarkFlagRequired("score")
}

func (f *entryFlags) input() (domain.EntryInput, error) {
	return domain.Validate(domain.EntryInput{
		Score:           f.score,
		Notes:           f.notes,
		PotentialCauses: f.causes,
		Locations:       f.locations,
		TimeOfDay:       f.timeOfDay,
	})
}

func logCmd() *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log today's headache entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input()
			if err != nil {
				return err
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			entry, err := s.AddEntry(context.Background(), in)
			if err != nil {
				if errors.Is(err, domain.ErrDuplicateDay) {
					fmt.Println("You've already logged an entry for today. Use 'ht edit' to change it.")
					return nil
				}
				return err
			}

			fmt.Printf("Logged entry: %s\n", entry.ID[:8])
			fmt.Printf("Score: %.1f - %s\n", entry.Score, stats.ScoreLabel(entry.Score))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			entry, err := s.TodayEntry(context.Background(), time.Now())
			if err != nil {
				return err
			}

			if entry == nil {
				fmt.Println("No entry logged today yet. Use 'ht log' to create one.")
				return nil
			}

			printEntry(entry)
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.ListEntries(context.Background())
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No entries yet. Use 'ht log' to create one.")
				return nil
			}

			for _, e := range entries {
				date := time.UnixMilli(e.CreatedAt).Format("2006-01-02")
				fmt.Printf("%s  %s  %.1f %-12s %s\n",
					e.ID[:8], date, e.Score, stats.ScoreLabel(e.Score), truncate(e.Notes, 40))
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show entry details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}

			entry, err := s.GetEntry(context.Background(), id)
			if err != nil {
				return err
			}

			printEntry(entry)
			return nil
		},
	}
}

func editCmd() *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Replace an entry's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input()
			if err != nil {
				return err
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}

			entry, err := s.UpdateEntry(context.Background(), id, in)
			if err != nil {
				return err
			}

			fmt.Printf("Updated entry: %s\n", entry.ID[:8])
			fmt.Printf("Score: %.1f - %s\n", entry.Score, stats.ScoreLabel(entry.Score))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}

			if err := s.DeleteEntry(context.Background(), id); err != nil {
				return err
			}

			fmt.Printf("Deleted entry: %s\n", id[:8])
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.ListEntries(context.Background())
			if err != nil {
				return err
			}

			summary := stats.Aggregate(entries, time.Now())

			fmt.Printf("Total entries:  %d\n", summary.TotalCount)
			fmt.Printf("Average score:  %.1f\n", summary.AverageScore)
			fmt.Printf("Week high:      %s\n", formatScore(summary.WeekHigh))
			fmt.Printf("Week low:       %s\n", formatScore(summary.WeekLow))

			if len(summary.Series) > 0 {
				fmt.Printf("\nLast 30 days:\n")
				for _, p := range summary.Series {
					fmt.Printf("  %-6s %.1f %s\n", p.Date, p.Score, stats.ScoreLabel(p.Score))
				}
			}
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			// Note: don't defer s.Close() as server runs indefinitely

			gate := auth.NewGate(os.Getenv("HEADACHE_PASSWORD"))
			server := api.New(s, gate, addr)
			return server.Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "server address")
	return cmd
}

// resolveID finds a full entry id from a unique prefix
func resolveID(s *store.Store, prefix string) (string, error) {
	entries, err := s.ListEntries(context.Background())
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		if strings.HasPrefix(e.ID, prefix) {
			return e.ID, nil
		}
	}

	return "", fmt.Errorf("entry not found: %s", prefix)
}

func printEntry(entry *domain.Entry) {
	fmt.Printf("ID:      %s\n", entry.ID)
	fmt.Printf("Date:    %s\n", time.UnixMilli(entry.CreatedAt).Format("2006-01-02 15:04:05"))
	fmt.Printf("Score:   %.1f - %s\n", entry.Score, stats.ScoreLabel(entry.Score))
	if entry.Notes != "" {
		fmt.Printf("Notes:   %s\n", entry.Notes)
	}
	if len(entry.PotentialCauses) > 0 {
		fmt.Printf("Causes:  %s\n", strings.Join(entry.PotentialCauses, ", "))
	}
	if len(entry.Locations) > 0 {
		fmt.Printf("Where:   %s\n", strings.Join(entry.Locations, ", "))
	}
	if entry.TimeOfDay != "" {
		fmt.Printf("When:    %s\n", entry.TimeOfDay)
	}
}

func formatScore(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f", *v)
}

func truncate(s string, max int) string {
	// Replace newlines with spaces for display
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
