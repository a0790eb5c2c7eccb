package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/wordtitan/tui"
)

func init() {
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Play in the terminal",
		Long: `Play the battle in the terminal.

Logs go to stderr, so redirect them when the level is below warn:
  wordtitan tui --log-level debug 2>wordtitan.log`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	seed := resolveSeed()
	assets, err := loadAssets(seed)
	if err != nil {
		return err
	}

	cfg := tui.Config{Assets: assets, Seed: seed, Log: log}
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

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tui: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tui: init screen: %w", err)
	}
	defer screen.Fini()

	app, err := tui.New(screen, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}
