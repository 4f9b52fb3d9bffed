package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/coder/quartz"

	"github.com/lox/ftreplay/cmd/ftreplay/shared"
	"github.com/lox/ftreplay/internal/handhistory"
	"github.com/lox/ftreplay/internal/replay"
	"github.com/lox/ftreplay/internal/store"
	"github.com/lox/ftreplay/internal/watch"
)

// WatchCmd follows a live session file, logging each hand as it completes.
type WatchCmd struct {
	File   string `arg:"" optional:"" name:"file" help:"Session file to follow; newest match in the configured watch dir when unset"`
	Import bool   `help:"Also import completed hands into the database"`
}

func (cmd *WatchCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.Log.Level, g.Debug)

	path := cmd.File
	if path == "" {
		if cfg.Watch.Dir == "" {
			return errors.New("no file given and no watch dir configured")
		}
		path, err = watch.DetectLatestSession(cfg.Watch.Dir, cfg.Watch.Pattern)
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("following newest session file")
	}

	var db *store.Store
	if cmd.Import {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
		db, err = store.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open database %s: %w", cfg.Database.Path, err)
		}
		defer db.Close()
	}

	ctx := shared.SetupSignalHandler(logger)

	watcher, err := watch.NewWatcher(path, quartz.NewReal(), logger, watch.Config{
		OnHands: func(hands []*handhistory.Hand) {
			for _, h := range hands {
				final := replay.Reconstruct(h, replay.End(h))
				logger.Info().
					Int("line", h.SourceLine).
					Str("header", h.Header).
					Int("players", len(h.Players)).
					Int("pot", final.Pot).
					Str("street", h.LastStreet().String()).
					Msg("hand complete")
			}
			if db != nil {
				if _, err := db.SaveHands(ctx, path, hands); err != nil {
					logger.Error().Err(err).Msg("import failed")
				}
			}
		},
		OnDiagnostic: func(d *handhistory.HandError) {
			logger.Warn().Int("line", d.Line).Err(d.Err).Msg("skipped malformed hand")
		},
		OnError: func(err error) {
			logger.Error().Err(err).Msg("watch error")
		},
	})
	if err != nil {
		return err
	}

	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
