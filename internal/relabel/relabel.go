// Package relabel implements the cluster relabeling transform: count how
// many rows carry each cluster label, rank the labels by popularity, and
// rewrite the label column so the most populous cluster becomes cluster 1.
package relabel

import (
	"sort"
	"strconv"

	"github.com/dwtools/clustersort/internal/table"
)

// Frequencies maps a cluster label to the number of rows carrying it.
type Frequencies map[string]int

// Mapping maps an old cluster label to its popularity-ranked replacement.
// Replacements are consecutive decimal integers starting at "1".
type Mapping map[string]string

// Count tallies the label values of column col across all rows.
func Count(t *table.Table, col int) Frequencies {
	freq := make(Frequencies)
	for _, row := range t.Rows {
		freq[row[col]]++
	}
	return freq
}

// Rank orders the distinct labels by descending popularity (ascending when
// reverse is set) and assigns consecutive ranks starting at 1. Labels with
// equal counts are ordered by their lexical value, so the mapping does not
// depend on row order.
func Rank(f Frequencies, reverse bool) Mapping {
	labels := make([]string, 0, len(f))
	for label := range f {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		a, b := labels[i], labels[j]
		if f[a] != f[b] {
			if reverse {
				return f[a] < f[b]
			}
			return f[a] > f[b]
		}
		return a < b
	})

	m := make(Mapping, len(labels))
	for i, label := range labels {
		m[label] = strconv.Itoa(i + 1)
	}
	return m
}

// Apply returns a new table with column col rewritten through m. Row order
// and every other column are preserved. Labels absent from m are left as-is.
func Apply(t *table.Table, col int, m Mapping) *table.Table {
	out := &table.Table{
		Header: t.Header,
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		dup := make([]string, len(row))
		copy(dup, row)
		if repl, ok := m[row[col]]; ok {
			dup[col] = repl
		}
		out.Rows[i] = dup
	}
	return out
}

// SortRows reorders rows in place by the numeric value of column col,
// grouping each cluster's molecules together. The sort is stable, so rows
// keep their relative order within a cluster.
func SortRows(t *table.Table, col int) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, _ := strconv.Atoi(t.Rows[i][col])
		b, _ := strconv.Atoi(t.Rows[j][col])
		return a < b
	})
}
