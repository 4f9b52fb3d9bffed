package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lox/ftreplay/cmd/ftreplay/shared"
	"github.com/lox/ftreplay/internal/handhistory"
	"github.com/lox/ftreplay/internal/phh"
)

// ExportCmd converts a session file into PHH TOML documents.
type ExportCmd struct {
	File   string `arg:"" name:"file" help:"Session file to export" type:"existingfile"`
	OutDir string `help:"Directory for .phh files; stdout when unset" type:"path"`
}

func (cmd *ExportCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.Log.Level, g.Debug)

	result, err := handhistory.ParseFile(cmd.File)
	if err != nil {
		return fmt.Errorf("parse %s: %w", cmd.File, err)
	}
	if len(result.Hands) == 0 {
		return fmt.Errorf("no hands found in %s", cmd.File)
	}

	if cmd.OutDir != "" {
		if err := os.MkdirAll(cmd.OutDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	exported := 0
	for _, h := range result.Hands {
		converted, err := phh.FromHand(h)
		if err != nil {
			logger.Warn().Int("line", h.SourceLine).Err(err).Msg("hand not exportable")
			continue
		}

		if cmd.OutDir == "" {
			data, err := phh.EncodeToBytes(converted)
			if err != nil {
				return fmt.Errorf("encode hand %s: %w", converted.HandID, err)
			}
			fmt.Println(string(data))
			exported++
			continue
		}

		path := filepath.Join(cmd.OutDir, converted.HandID+".phh")
		if err := phh.WriteFile(path, converted); err != nil {
			return err
		}
		exported++
	}

	logger.Info().Int("hands", exported).Str("file", cmd.File).Msg("export complete")
	return nil
}
