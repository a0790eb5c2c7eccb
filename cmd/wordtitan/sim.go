package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/milk9111/wordtitan/battle"
	"github.com/milk9111/wordtitan/ecs/system"
	"github.com/milk9111/wordtitan/session"
	"github.com/milk9111/wordtitan/sim"
	"github.com/milk9111/wordtitan/stats"
)

var (
	simRuns     int
	simAccuracy float64
	simReaction time.Duration
	simLimit    time.Duration
	simRecord   bool
)

func init() {
	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "Play battles headlessly with a scripted typist",
		Long: `Play battles at the fixed tick rate without a window and print one line
per battle. Useful when tuning battle.yaml.

Examples:
  wordtitan sim --runs 20 --accuracy 0.9 --reaction 120ms
  wordtitan sim --seed 42 --record`,
		Args: cobra.NoArgs,
		RunE: runSim,
	}
	simCmd.Flags().IntVar(&simRuns, "runs", 1, "Number of battles")
	simCmd.Flags().Float64Var(&simAccuracy, "accuracy", 0.95, "Chance each line is typed correctly (0-1)")
	simCmd.Flags().DurationVar(&simReaction, "reaction", 100*time.Millisecond, "Typist delay once a window opens")
	simCmd.Flags().DurationVar(&simLimit, "limit", 5*time.Minute, "Battle time before giving up")
	simCmd.Flags().BoolVar(&simRecord, "record", false, "Record battles to the stats store")
	rootCmd.AddCommand(simCmd)
}

func runSim(cmd *cobra.Command, args []string) error {
	if simRuns <= 0 {
		return fmt.Errorf("--runs must be positive, got %d", simRuns)
	}
	if simAccuracy < 0 || simAccuracy > 1 {
		return fmt.Errorf("--accuracy must be within [0,1], got %v", simAccuracy)
	}
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	seed := resolveSeed()
	assets, err := loadAssets(seed)
	if err != nil {
		return err
	}

	var store *stats.Store
	if simRecord {
		if store, err = openStore(log); err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSEED\tRESULT\tTIME\tBOSS\tPLAYER\tPERFECT\tFAILED\tCHARGES\tACCURACY")
	wins := 0
	for i := range simRuns {
		runSeed := seed + int64(i)
		sum, err := simulate(assets, runSeed, store, log)
		if err != nil {
			return err
		}
		if sum.Result == battle.ResultWon {
			wins++
		}
		writeSimRow(tw, i+1, runSeed, sum)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nwon %d/%d\n", wins, simRuns)
	return nil
}

// simulate plays one battle. store may be nil.
func simulate(assets session.Assets, seed int64, store *stats.Store, log zerolog.Logger) (session.Summary, error) {
	rng := rand.New(rand.NewPCG(uint64(seed), 1))
	sess, err := session.FromAssets(assets, log, session.WithRand(rng))
	if err != nil {
		return session.Summary{}, err
	}
	typist := sim.NewTypist(simAccuracy, simReaction, rand.New(rand.NewPCG(uint64(seed), 2)))

	if store == nil {
		return sim.Run(sess, typist, simLimit, nil), nil
	}

	id, err := store.StartSession(seed)
	if err != nil {
		return session.Summary{}, err
	}
	sum := sim.Run(sess, typist, simLimit, func(evt battle.Event) {
		if err := store.RecordEvent(id, string(evt.Kind), system.DescribeEvent(evt)); err != nil {
			log.Warn().Err(err).Msg("record event")
		}
	})
	if err := store.FinishSession(id, sum); err != nil {
		return sum, err
	}
	log.Debug().Str("session", shortID(id)).Msg("battle recorded")
	return sum, nil
}

func writeSimRow(w io.Writer, run int, seed int64, sum session.Summary) {
	fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d/%d\t%d/%d\t%d\t%d\t%d/%d\t%.0f%%\n",
		run, seed, sum.Result, sum.Elapsed.Round(100*time.Millisecond),
		sum.BossHP, sum.BossMaxHP, sum.PlayerHP, sum.PlayerMaxHP,
		sum.PerfectDefuses, sum.BombsFailed,
		sum.ChargesWon, sum.ChargesWon+sum.ChargesFailed,
		sum.Accuracy()*100)
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
