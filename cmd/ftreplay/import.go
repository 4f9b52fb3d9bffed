package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lox/ftreplay/cmd/ftreplay/shared"
	"github.com/lox/ftreplay/internal/handhistory"
	"github.com/lox/ftreplay/internal/store"
)

// ImportCmd loads session files into the local hand database.
type ImportCmd struct {
	Files    []string `arg:"" name:"files" help:"Session files to import" type:"existingfile"`
	Database string   `help:"Database path, overriding the config file" type:"path"`
}

func (cmd *ImportCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.Log.Level, g.Debug)

	dbPath := cfg.Database.Path
	if cmd.Database != "" {
		dbPath = cmd.Database
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", dbPath, err)
	}
	defer db.Close()

	ctx := shared.SetupSignalHandler(logger)

	// Parsing fans out; sqlite writes stay on one goroutine.
	var mu sync.Mutex
	total := 0

	var eg errgroup.Group
	for _, file := range cmd.Files {
		eg.Go(func() error {
			result, err := handhistory.ParseFile(file)
			if err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			for _, d := range result.Diagnostics {
				logger.Warn().Str("file", file).Int("line", d.Line).Err(d.Err).Msg("skipped malformed hand")
			}

			mu.Lock()
			defer mu.Unlock()
			n, err := db.SaveHands(ctx, file, result.Hands)
			if err != nil {
				return fmt.Errorf("save %s: %w", file, err)
			}
			total += n
			logger.Info().Str("file", file).Int("hands", n).Msg("imported")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	count, err := db.HandCount(ctx)
	if err != nil {
		return err
	}
	logger.Info().Int("imported", total).Int("database_total", count).Msg("import complete")
	return nil
}
