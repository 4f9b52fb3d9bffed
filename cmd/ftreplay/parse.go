package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lox/ftreplay/cmd/ftreplay/shared"
	"github.com/lox/ftreplay/internal/handhistory"
	"github.com/lox/ftreplay/internal/replay"
)

// ParseCmd parses one or more session files and reports their hands.
type ParseCmd struct {
	Files []string `arg:"" name:"files" help:"Session files to parse" type:"existingfile"`
	JSON  bool     `help:"Emit a JSON summary instead of text"`
}

// fileSummary is the per-file parse report.
type fileSummary struct {
	File        string        `json:"file"`
	Hands       int           `json:"hands"`
	Skipped     int           `json:"skipped"`
	HandReports []handSummary `json:"hand_reports,omitempty"`
}

type handSummary struct {
	Line       int    `json:"line"`
	Header     string `json:"header"`
	Players    int    `json:"players"`
	Hero       string `json:"hero,omitempty"`
	Pot        int    `json:"pot"`
	LastStreet string `json:"last_street"`
}

func (cmd *ParseCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.Log.Level, g.Debug)

	var mu sync.Mutex
	summaries := make([]fileSummary, 0, len(cmd.Files))

	var eg errgroup.Group
	for _, file := range cmd.Files {
		eg.Go(func() error {
			result, err := handhistory.ParseFile(file)
			if err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			if cfg.Parser.Strict && len(result.Diagnostics) > 0 {
				d := result.Diagnostics[0]
				return fmt.Errorf("parse %s: line %d: %w", file, d.Line, d.Err)
			}
			for _, d := range result.Diagnostics {
				logger.Warn().
					Str("file", file).
					Int("line", d.Line).
					Err(d.Err).
					Msg("skipped malformed hand")
			}

			summary := fileSummary{
				File:    file,
				Hands:   len(result.Hands),
				Skipped: len(result.Diagnostics),
			}
			for _, h := range result.Hands {
				final := replay.Reconstruct(h, replay.End(h))
				summary.HandReports = append(summary.HandReports, handSummary{
					Line:       h.SourceLine,
					Header:     h.Header,
					Players:    len(h.Players),
					Hero:       h.Hero,
					Pot:        final.Pot,
					LastStreet: h.LastStreet().String(),
				})
			}

			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].File < summaries[j].File })

	if cmd.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	for _, s := range summaries {
		fmt.Printf("%s: %d hands (%d skipped)\n", s.File, s.Hands, s.Skipped)
		reports := s.HandReports
		if limit := cfg.Display.Hands; limit > 0 && len(reports) > limit {
			reports = reports[:limit]
			fmt.Printf("  (showing first %d)\n", limit)
		}
		for _, h := range reports {
			hero := ""
			if h.Hero != "" {
				hero = " hero=" + h.Hero
			}
			fmt.Printf("  line %-6d %d players  pot %-7d %-7s%s\n",
				h.Line, h.Players, h.Pot, h.LastStreet, hero)
		}
	}
	return nil
}
