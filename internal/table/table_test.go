package table

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writeInput drops content into a temp file and returns its path.
func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestLoad_Basic(t *testing.T) {
	path := writeInput(t, "Structure\tCluster No\nCCO\t3\nCCN\t7\n")

	tab, err := Load(path, '\t')
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantHeader := []string{"Structure", "Cluster No"}
	if !reflect.DeepEqual(tab.Header, wantHeader) {
		t.Errorf("Header = %v, want %v", tab.Header, wantHeader)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tab.Rows))
	}
	if !reflect.DeepEqual(tab.Rows[1], []string{"CCN", "7"}) {
		t.Errorf("row 1 = %v", tab.Rows[1])
	}
}

func TestLoad_CommaDelimiter(t *testing.T) {
	path := writeInput(t, "Structure,Cluster No\nCCO,3\n")

	tab, err := Load(path, ',')
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tab.Rows[0][1] != "3" {
		t.Errorf("cell = %q, want %q", tab.Rows[0][1], "3")
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeInput(t, "")

	_, err := Load(path, '\t')

	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v, want *FormatError", err)
	}
}

func TestLoad_RaggedRow(t *testing.T) {
	path := writeInput(t, "a\tb\tc\n1\t2\t3\n1\t2\n")

	_, err := Load(path, '\t')

	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v, want *FormatError", err)
	}
	if ferr.Line != 3 {
		t.Errorf("Line = %d, want 3", ferr.Line)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), '\t')

	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want wrapped os.ErrNotExist", err)
	}
	var ferr *FormatError
	if errors.As(err, &ferr) {
		t.Errorf("missing file must not be a FormatError, got %v", err)
	}
}

func TestColumnIndex(t *testing.T) {
	tab := &Table{Header: []string{"Structure", "Cluster No"}}

	col, err := tab.ColumnIndex("Cluster No")
	if err != nil {
		t.Fatalf("ColumnIndex: %v", err)
	}
	if col != 1 {
		t.Errorf("col = %d, want 1", col)
	}
}

func TestColumnIndex_Missing(t *testing.T) {
	tab := &Table{Header: []string{"Structure"}}

	_, err := tab.ColumnIndex("Cluster No")

	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want *SchemaError", err)
	}
	if !strings.Contains(serr.Error(), "Cluster No") {
		t.Errorf("error message %q misses the column name", serr.Error())
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	tab := &Table{
		Header: []string{"Structure", "Cluster No"},
		Rows:   [][]string{{"CCO", "1"}, {"CCN", "2"}},
	}
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := Write(tab, path, '\t'); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Load(path, '\t')
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, tab) {
		t.Errorf("round trip = %+v, want %+v", got, tab)
	}
}

func TestWrite_PlainTabSeparatedOutput(t *testing.T) {
	tab := &Table{
		Header: []string{"Structure", "Cluster No"},
		Rows:   [][]string{{"CCO", "1"}},
	}
	path := filepath.Join(t.TempDir(), "out.txt")

	if err := Write(tab, path, '\t'); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "Structure\tCluster No\nCCO\t1\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestWrite_NoPartialOutputOnFailure(t *testing.T) {
	tab := &Table{Header: []string{"a"}, Rows: [][]string{{"1"}}}
	dest := filepath.Join(t.TempDir(), "missing-dir", "out.txt")

	if err := Write(tab, dest, '\t'); err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
	if _, err := os.Stat(dest); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("destination exists after failed write")
	}
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	tab := &Table{Header: []string{"a"}, Rows: [][]string{{"1"}}}

	if err := Write(tab, filepath.Join(dir, "out.txt"), '\t'); err != nil {
		t.Fatalf("Write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.txt" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contains %v, want only out.txt", names)
	}
}
