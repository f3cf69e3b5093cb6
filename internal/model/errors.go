package model

import (
	"fmt"
	"strings"
)

// SchemaError reports a malformed or missing column at load time. Load-time
// schema errors are fatal: no table is returned alongside one.
type SchemaError struct {
	File   string
	Column string
	Row    int // 1-based data row, 0 when not row-specific
	Reason string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema error")
	if e.File != "" {
		fmt.Fprintf(&b, " in %s", e.File)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// LookupError reports a selection that refers to an absent year or key.
type LookupError struct {
	Table string
	Year  int    // 0 when no year is involved
	Key   string // empty when the year itself is missing
}

func (e *LookupError) Error() string {
	switch {
	case e.Key == "":
		return fmt.Sprintf("%s: no data for year %d", e.Table, e.Year)
	case e.Year == 0:
		return fmt.Sprintf("%s: no column %q", e.Table, e.Key)
	}
	return fmt.Sprintf("%s: no %q for year %d", e.Table, e.Key, e.Year)
}
