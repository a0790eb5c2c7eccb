package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/milk9111/wordtitan/stats"
)

var (
	statsLimit  int
	statsEvents string
)

func init() {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "List recorded battles",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 10, "Number of battles to list")
	statsCmd.Flags().StringVar(&statsEvents, "events", "", "Print the event log of one battle id")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := stats.New(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if statsEvents != "" {
		return printEvents(cmd, store, statsEvents)
	}

	recent, err := store.Recent(statsLimit)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Fprintln(out, "no battles recorded")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tRESULT\tTIME\tBOSS HP\tCOMBO\tPERFECT\tACCURACY\tEVENTS")
	for _, s := range recent {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%.0f%%\t%d\n",
			shortID(s.ID), s.StartedAt.Local().Format(time.DateTime), s.Result,
			s.Elapsed.Round(100*time.Millisecond), s.BossHP, s.BestCombo,
			s.PerfectDefuses, s.Accuracy()*100, s.Events)
	}
	return tw.Flush()
}

func printEvents(cmd *cobra.Command, store *stats.Store, raw string) error {
	id, err := parseSessionID(store, raw)
	if err != nil {
		return err
	}
	events, err := store.Events(id)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\n", e[0], e[1])
	}
	return tw.Flush()
}

// parseSessionID accepts a full id or the short prefix the listing prints.
func parseSessionID(store *stats.Store, raw string) (uuid.UUID, error) {
	if id, err := uuid.Parse(raw); err == nil {
		return id, nil
	}
	recent, err := store.Recent(1000)
	if err != nil {
		return uuid.Nil, err
	}
	var found []uuid.UUID
	for _, s := range recent {
		if strings.HasPrefix(s.ID.String(), strings.ToLower(raw)) {
			found = append(found, s.ID)
		}
	}
	switch len(found) {
	case 0:
		return uuid.Nil, fmt.Errorf("no battle with id %q", raw)
	case 1:
		return found[0], nil
	default:
		return uuid.Nil, fmt.Errorf("id %q is ambiguous (%d battles)", raw, len(found))
	}
}
