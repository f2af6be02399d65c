package table

import "fmt"

// FormatError reports malformed delimited content: an empty file, a missing
// header, or a row whose field count disagrees with the header.
type FormatError struct {
	Path string
	Line int // 1-based line number, 0 when the whole file is at fault
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// SchemaError reports that the designated cluster column is absent from the
// table's header.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q not found in header", e.Column)
}
