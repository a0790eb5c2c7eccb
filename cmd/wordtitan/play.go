package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/wordtitan/common"
	"github.com/milk9111/wordtitan/game"
)

var (
	playDebug       bool
	playFullscreen  bool
	playBaseMonitor bool
)

func init() {
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Open the game window",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&playDebug, "debug", false, "Draw timing windows and phase info")
	playCmd.Flags().BoolVar(&playFullscreen, "fullscreen", false, "Start fullscreen")
	playCmd.Flags().BoolVarP(&playBaseMonitor, "base-monitor", "m", false, "Use the first monitor instead of the primary one")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	seed := resolveSeed()
	assets, err := loadAssets(seed)
	if err != nil {
		return err
	}

	cfg := game.Config{Assets: assets, Seed: seed, Log: log, Debug: playDebug}
	store, err := openStore(log)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		cfg.Ledger = store
	}
	watcher, err := openWatcher(log)
	if err != nil {
		return err
	}
	if watcher != nil {
		defer watcher.Close()
		cfg.Changes = watcher
	}

	if playBaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("wordtitan")
	ebiten.SetFullscreen(playFullscreen)
	ebiten.SetTPS(common.TPS)

	g, err := game.NewGame(cfg)
	if err != nil {
		return err
	}
	log.Info().Int64("seed", seed).Msg("starting battle")
	return ebiten.RunGame(g)
}
