// Package table provides the in-memory model for delimited text files as
// exported by DataWarrior: a header row followed by data rows, one record
// per molecule.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Table is an in-memory delimited table. Every row has exactly
// len(Header) fields.
type Table struct {
	Header []string
	Rows   [][]string
}

// Load parses a delimited text file with a header row. An empty file or a
// row whose field count disagrees with the header yields a *FormatError;
// an unreadable file yields the wrapped I/O error.
func Load(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, &FormatError{Path: path, Msg: "empty input, no header row"}
	}
	if err != nil {
		return nil, formatErr(path, err)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, formatErr(path, err)
		}
		rows = append(rows, rec)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// formatErr converts a csv parse error into a *FormatError carrying the
// offending line number.
func formatErr(path string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &FormatError{Path: path, Line: perr.Line, Msg: perr.Err.Error()}
	}
	return &FormatError{Path: path, Msg: err.Error()}
}

// ColumnIndex returns the index of the header cell exactly matching name.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return 0, &SchemaError{Column: name}
}

// Write serializes the table to path, preserving header and column order.
// The content goes to a temp file in the destination directory first and is
// renamed into place, so a failed run never leaves partial output behind.
func Write(t *Table, path string, delim rune) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	w.Comma = delim
	w.Write(t.Header)
	for _, row := range t.Rows {
		w.Write(row)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}
