package main

import (
	"fmt"

	"github.com/lox/ftreplay/cmd/ftreplay/shared"
	"github.com/lox/ftreplay/internal/handhistory"
	"github.com/lox/ftreplay/internal/stats"
)

// StatsCmd summarizes one or more session files from the hero's seat.
type StatsCmd struct {
	Files   []string `arg:"" name:"files" help:"Session files to summarize" type:"existingfile"`
	Pockets int      `help:"How many top starting hands to list" default:"5"`
}

func (cmd *StatsCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.Log.Level, g.Debug)

	var hands []*handhistory.Hand
	for _, file := range cmd.Files {
		result, err := handhistory.ParseFile(file)
		if err != nil {
			return fmt.Errorf("parse %s: %w", file, err)
		}
		for _, d := range result.Diagnostics {
			logger.Warn().Str("file", file).Int("line", d.Line).Err(d.Err).Msg("skipped malformed hand")
		}
		if cfg.Parser.HeroOverride != "" {
			for _, h := range result.Hands {
				if h.Hero == "" {
					h.Hero = cfg.Parser.HeroOverride
				}
			}
		}
		hands = append(hands, result.Hands...)
	}

	s := stats.Collect(hands)

	fmt.Printf("Hands:       %d\n", s.Hands)
	fmt.Printf("Hero hands:  %d\n", s.HeroHands)
	fmt.Printf("VPIP:        %.1f%%\n", s.VPIPPercent())
	fmt.Printf("Net chips:   %+d\n", s.NetChips)
	fmt.Printf("Biggest pot: %d\n", s.BiggestPot)

	if top := s.TopPockets(cmd.Pockets); len(top) > 0 {
		fmt.Println("Top pockets:")
		for _, class := range top {
			fmt.Printf("  %-4s x%d\n", class, s.PocketCounts[class])
		}
	}
	return nil
}
