package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/ftreplay/internal/handhistory"
	"github.com/lox/ftreplay/internal/tui"
)

// ReplayCmd opens the interactive viewer over a session file.
type ReplayCmd struct {
	File string `arg:"" name:"file" help:"Session file to replay" type:"existingfile"`
	Hand int    `help:"1-based hand number to open first" default:"1"`
}

func (cmd *ReplayCmd) Run(g *Globals) error {
	result, err := handhistory.ParseFile(cmd.File)
	if err != nil {
		return fmt.Errorf("parse %s: %w", cmd.File, err)
	}
	if len(result.Hands) == 0 {
		return fmt.Errorf("no hands found in %s", cmd.File)
	}

	start := cmd.Hand
	if start < 1 || start > len(result.Hands) {
		return fmt.Errorf("hand %d out of range, file has %d hands", start, len(result.Hands))
	}

	logger := log.New(os.Stderr)
	if g.Debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		// The alt screen owns the terminal while the viewer runs.
		logger.SetLevel(log.ErrorLevel)
	}

	return tui.Run(result.Hands[start-1:], logger)
}
