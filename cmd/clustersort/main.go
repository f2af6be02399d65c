package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// CLI is the top-level command tree.
type CLI struct {
	Debug bool `help:"Enable debug logging."`

	Sort    SortCmd    `cmd:"" default:"withargs" help:"Relabel clusters by descending popularity."`
	History HistoryCmd `cmd:"" help:"List recent relabel runs."`
}

func main() {
	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name("clustersort"),
		kong.Description("Reassign DataWarrior cluster labels so the most populous cluster becomes cluster 1."),
		kong.UsageOnError(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clustersort: %v\n", err)
		os.Exit(1)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	setupLogger(cli.Debug)

	cfg, err := loadUserConfig()
	ctx.FatalIfErrorf(err)
	ctx.Bind(cfg)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
