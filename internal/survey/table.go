package survey

import (
	"fmt"
	"sort"
	"strings"
)

// Record is a schema-agnostic map for one survey row. A missing answer is an
// absent key, never an empty string.
type Record map[string]interface{}

// Table holds the survey responses in file order.
type Table struct {
	Columns []string
	Rows    []Record
}

// HasColumn reports whether the table's header contains col.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Clone returns a deep copy of the table. Cleaning works on a copy so the
// loaded table stays untouched.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Record, 0, len(t.Rows)),
	}
	for _, rec := range t.Rows {
		cp := make(Record, len(rec))
		for k, v := range rec {
			cp[k] = v
		}
		out.Rows = append(out.Rows, cp)
	}
	return out
}

// Label returns the string form of a record's value for col, and whether the
// value is present.
func (r Record) Label(col string) (string, bool) {
	v, ok := r[col]
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%v", v), true
}

// fingerprint builds a stable identity string for duplicate detection.
func (r Record) fingerprint(columns []string) string {
	var b strings.Builder
	for _, col := range columns {
		if v, ok := r[col]; ok {
			fmt.Fprintf(&b, "%s=%v\x1f", col, v)
		}
	}
	return b.String()
}

// observedValues returns the sorted distinct labels of col across the table.
func (t *Table) observedValues(col string) []string {
	seen := make(map[string]bool)
	for _, rec := range t.Rows {
		if label, ok := rec.Label(col); ok {
			seen[label] = true
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
