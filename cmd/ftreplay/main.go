package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/lox/ftreplay/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Debug  bool   `help:"Enable debug logging"`
	Config string `help:"Path to HCL config file (default ~/.ftreplay/config.hcl)"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Parse   ParseCmd         `cmd:"" help:"Parse session files and report their hands"`
	Replay  ReplayCmd        `cmd:"" help:"Step through hands interactively"`
	Export  ExportCmd        `cmd:"" help:"Export hands to PHH format"`
	Stats   StatsCmd         `cmd:"" help:"Summarize a session"`
	Import  ImportCmd        `cmd:"" help:"Import session files into the local database"`
	Watch   WatchCmd         `cmd:"" help:"Follow a live session file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("ftreplay"),
		kong.Description("Full Tilt hand history parser and replayer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig resolves the config file path and loads it, falling back to
// defaults when no file exists.
func loadConfig(g *Globals) (*config.Config, error) {
	path := g.Config
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		path = filepath.Join(home, ".ftreplay", "config.hcl")
	}
	return config.Load(path)
}
