package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/dwtools/clustersort/internal/history"
	"github.com/dwtools/clustersort/internal/relabel"
	"github.com/dwtools/clustersort/internal/table"
)

// SortCmd relabels the cluster column of a DataWarrior export by descending
// cluster popularity and writes the result back out.
type SortCmd struct {
	File string `arg:"" type:"existingfile" help:"DataWarrior cluster list exported as a delimited text file."`

	Output      string `short:"o" placeholder:"PATH" xor:"dest" help:"Output path. Defaults to <stem>_sort<ext> next to the input."`
	InPlace     bool   `xor:"dest" help:"Overwrite the input file instead of writing a new one."`
	Delimiter   string `placeholder:"CHAR" help:"Field delimiter (default: tab)."`
	Column      string `placeholder:"NAME" help:"Exact header name of the cluster column."`
	ColumnIndex int    `default:"-1" placeholder:"N" help:"0-based index of the cluster column."`
	Reverse     bool   `short:"r" help:"Assign the least populous cluster the lowest label."`
	SortRows    bool   `help:"Additionally reorder rows so each cluster's molecules are grouped."`
	Report      string `placeholder:"PATH" help:"Write a YAML relabel report to this path."`
	NoHistory   bool   `help:"Skip recording this run in the history database."`
}

// Run executes the full pipeline: load, resolve the cluster column, count,
// rank, rewrite, write. Nothing is written until the transform has
// completed in memory.
func (c *SortCmd) Run(cfg *UserConfig) error {
	delimStr := c.Delimiter
	if delimStr == "" {
		delimStr = cfg.Sort.Delimiter
	}
	delim, err := parseDelimiter(delimStr)
	if err != nil {
		return err
	}

	t, err := table.Load(c.File, delim)
	if err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		return &table.FormatError{Path: c.File, Msg: "no data rows below the header"}
	}

	col, err := c.clusterColumn(t, cfg)
	if err != nil {
		return err
	}
	slog.Debug("cluster column resolved", "index", col, "header", t.Header[col])

	reverse := c.Reverse || cfg.Sort.Reverse
	freq := relabel.Count(t, col)
	mapping := relabel.Rank(freq, reverse)
	out := relabel.Apply(t, col, mapping)
	if c.SortRows || cfg.Sort.SortRows {
		relabel.SortRows(out, col)
	}

	dest := c.destination()
	if err := table.Write(out, dest, delim); err != nil {
		return err
	}
	slog.Info("relabeled clusters",
		"input", c.File, "output", dest,
		"clusters", len(freq), "rows", len(t.Rows))

	if term.IsTerminal(int(os.Stdout.Fd())) {
		printSummary(os.Stdout, freq, mapping)
	}

	if c.Report != "" {
		if err := writeReport(c.Report, t.Header[col], len(t.Rows), freq, mapping); err != nil {
			return err
		}
	}

	if !c.NoHistory && !cfg.History.Disable {
		c.recordRun(cfg, t.Header[col], len(freq), len(t.Rows), dest, reverse)
	}
	return nil
}

// clusterColumn resolves the cluster column from flags, falling back to
// pattern detection against the header.
func (c *SortCmd) clusterColumn(t *table.Table, cfg *UserConfig) (int, error) {
	switch {
	case c.ColumnIndex >= 0:
		if c.ColumnIndex >= len(t.Header) {
			return 0, &table.SchemaError{Column: "#" + strconv.Itoa(c.ColumnIndex)}
		}
		return c.ColumnIndex, nil
	case c.Column != "":
		return t.ColumnIndex(c.Column)
	default:
		return relabel.DetectColumn(t.Header, cfg.Sort.ColumnPattern)
	}
}

// destination returns the output path: the input itself with --in-place,
// the explicit --output, or <stem>_sort<ext> next to the input. The default
// matches what DataWarrior users expect from the original workflow, where
// example.txt becomes example_sort.txt.
func (c *SortCmd) destination() string {
	if c.InPlace {
		return c.File
	}
	if c.Output != "" {
		return c.Output
	}
	ext := filepath.Ext(c.File)
	return strings.TrimSuffix(c.File, ext) + "_sort" + ext
}

// printSummary writes the per-cluster report, most populous cluster first.
func printSummary(w io.Writer, freq relabel.Frequencies, mapping relabel.Mapping) {
	type entry struct {
		oldLabel string
		newLabel string
		count    int
	}
	entries := make([]entry, 0, len(freq))
	for label, count := range freq {
		entries = append(entries, entry{oldLabel: label, newLabel: mapping[label], count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, _ := strconv.Atoi(entries[i].newLabel)
		b, _ := strconv.Atoi(entries[j].newLabel)
		return a < b
	})

	fmt.Fprintln(w, "cluster assignment by popularity:")
	for _, e := range entries {
		fmt.Fprintf(w, "cluster: %8s -> %8s molecules: %8d\n", e.oldLabel, e.newLabel, e.count)
	}
}

// reportCluster is one cluster in the YAML report.
type reportCluster struct {
	OldLabel  string `yaml:"old_label"`
	NewLabel  string `yaml:"new_label"`
	Molecules int    `yaml:"molecules"`
}

// relabelReport is the machine-readable summary written by --report.
type relabelReport struct {
	Column   string          `yaml:"column"`
	Rows     int             `yaml:"rows"`
	Clusters []reportCluster `yaml:"clusters"`
}

func writeReport(path, column string, rows int, freq relabel.Frequencies, mapping relabel.Mapping) error {
	report := relabelReport{Column: column, Rows: rows}
	for label, count := range freq {
		report.Clusters = append(report.Clusters, reportCluster{
			OldLabel:  label,
			NewLabel:  mapping[label],
			Molecules: count,
		})
	}
	sort.Slice(report.Clusters, func(i, j int) bool {
		a, _ := strconv.Atoi(report.Clusters[i].NewLabel)
		b, _ := strconv.Atoi(report.Clusters[j].NewLabel)
		return a < b
	})

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// recordRun stores the run in the history database. Best effort: history
// failures are logged, never returned.
func (c *SortCmd) recordRun(cfg *UserConfig, column string, clusters, rows int, dest string, reverse bool) {
	path, err := historyPath(cfg)
	if err != nil {
		slog.Warn("history: no state dir", "error", err)
		return
	}
	store, err := history.Open(path)
	if err != nil {
		slog.Warn("history: open failed", "error", err)
		return
	}
	defer store.Close()

	store.Record(history.Run{
		Input:     c.File,
		Output:    dest,
		Column:    column,
		Clusters:  clusters,
		Rows:      rows,
		Reverse:   reverse,
		CreatedAt: time.Now(),
	})
}
