package main

import (
	"fmt"

	"github.com/dwtools/clustersort/internal/history"
)

// HistoryCmd lists recent relabel runs from the history database.
type HistoryCmd struct {
	Limit int `default:"10" help:"Number of runs to show."`
}

func (c *HistoryCmd) Run(cfg *UserConfig) error {
	path, err := historyPath(cfg)
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(c.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, r := range runs {
		note := ""
		if r.Reverse {
			note = ", reversed"
		}
		fmt.Printf("%s  %s -> %s  (%d clusters, %d rows%s)\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Input, r.Output, r.Clusters, r.Rows, note)
	}
	return nil
}
