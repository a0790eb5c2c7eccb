package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/milk9111/wordtitan/logging"
	"github.com/milk9111/wordtitan/prefabs"
	"github.com/milk9111/wordtitan/session"
	"github.com/milk9111/wordtitan/stats"
)

var (
	logLevel  string
	dbPath    string
	seedFlag  int64
	noStats   bool
	wordsFile string
	watch     bool
)

var rootCmd = &cobra.Command{
	Use:   "wordtitan",
	Short: "Type words to defuse bombs and bring down the boss",
	Long: `wordtitan is a vocabulary boss battle.

The boss sweeps across the top of the arena throwing word bombs. Type a
bomb's word while its timing ring is inside the green window to defuse it.
Six perfect defuses start a charge; type the charge word every time its ring
opens and the boss is left vulnerable. Type the boss word to hurt it.

Commands:
  wordtitan play            # windowed game
  wordtitan tui             # terminal game
  wordtitan sim --runs 20   # headless battles with a scripted typist
  wordtitan stats           # recent battles`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	pf.StringVar(&dbPath, "db", "wordtitan.db", "SQLite file battles are recorded to")
	pf.Int64Var(&seedFlag, "seed", 0, "Random seed (0 picks one from the clock)")
	pf.BoolVar(&noStats, "no-stats", false, "Do not record battles")
	pf.StringVar(&wordsFile, "words", "", "Word list in prefabs/ (default words.yaml)")
	pf.BoolVar(&watch, "watch", false, "Reload battle.yaml and the patrol script when they change on disk")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	log, err := logging.New(cmd.ErrOrStderr(), logLevel)
	if err != nil {
		return zerolog.Nop(), err
	}
	return log, nil
}

func resolveSeed() int64 {
	if seedFlag != 0 {
		return seedFlag
	}
	return time.Now().UnixNano()
}

func loadAssets(seed int64) (session.Assets, error) {
	assets, err := session.LoadAssets(wordsFile, rand.New(rand.NewPCG(uint64(seed), 0x77)))
	if err != nil {
		return session.Assets{}, fmt.Errorf("load assets: %w", err)
	}
	return assets, nil
}

// openStore returns nil when recording is off.
func openStore(log zerolog.Logger) (*stats.Store, error) {
	if noStats {
		return nil, nil
	}
	store, err := stats.New(dbPath)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("db", dbPath).Msg("stats store open")
	return store, nil
}

// openWatcher returns nil unless --watch was given.
func openWatcher(log zerolog.Logger) (*prefabs.Watcher, error) {
	if !watch {
		return nil, nil
	}
	w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
	if err != nil {
		return nil, err
	}
	log.Info().Msg("watching prefabs for changes")
	return w, nil
}
