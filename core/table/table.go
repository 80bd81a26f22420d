package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTable indicates a table that is not rectangular or has unusable column names.
var ErrInvalidTable = errors.New("invalid table")

// Type is the declared logical type of a column.
type Type string

const (
	// TypeText holds free text (and anything that is not a number or date).
	TypeText Type = "text"
	// TypeNumber holds numbers.
	TypeNumber Type = "number"
	// TypeDate holds calendar dates or timestamps.
	TypeDate Type = "date"
)

// ParseType parses a type name as used in configuration and request payloads.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "string":
		return TypeText, nil
	case "number", "numeric":
		return TypeNumber, nil
	case "date", "datetime":
		return TypeDate, nil
	default:
		return "", fmt.Errorf("unknown column type %q", s)
	}
}

// Column is a named, typed sequence of cells.
type Column struct {
	Name   string
	Type   Type
	Values []Value
}

// Numeric reports whether the column is declared numeric and every non-null cell is a number.
func (c Column) Numeric() bool {
	if c.Type != TypeNumber {
		return false
	}
	for _, v := range c.Values {
		if !v.IsNull() && v.Kind != KindNumber {
			return false
		}
	}
	return true
}

// Table is an ordered set of equal-length columns.
type Table struct {
	Name    string
	Columns []Column
}

// New creates an empty table.
func New(name string) *Table {
	return &Table{Name: name}
}

// AddColumn appends a column.
func (t *Table) AddColumn(name string, typ Type, values ...Value) *Table {
	t.Columns = append(t.Columns, Column{Name: name, Type: typ, Values: values})
	return t
}

// RowCount returns the number of rows.
func (t Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// Names returns the column names in order.
func (t Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1.
func (t Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column returns the named column.
func (t Table) Column(name string) (Column, bool) {
	if i := t.Index(name); i >= 0 {
		return t.Columns[i], true
	}
	return Column{}, false
}

// Row returns the cells of row i in column order.
func (t Table) Row(i int) []Value {
	row := make([]Value, len(t.Columns))
	for c := range t.Columns {
		row[c] = t.Columns[c].Values[i]
	}
	return row
}

// Validate checks that the table is rectangular and column names are unique and non-empty.
func (t Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Columns))
	rows := t.RowCount()
	for i, c := range t.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: %s column %d has no name", ErrInvalidTable, t.label(), i+1)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: %s has duplicate column %q", ErrInvalidTable, t.label(), c.Name)
		}
		seen[c.Name] = struct{}{}
		if len(c.Values) != rows {
			return fmt.Errorf("%w: %s column %q has %d values, expected %d", ErrInvalidTable, t.label(), c.Name, len(c.Values), rows)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (t Table) Clone() Table {
	out := Table{Name: t.Name, Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		out.Columns[i] = Column{
			Name:   c.Name,
			Type:   c.Type,
			Values: append([]Value(nil), c.Values...),
		}
	}
	return out
}

// Without returns a copy without the named columns. Unknown names are ignored.
func (t Table) Without(names ...string) Table {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := Table{Name: t.Name}
	for _, c := range t.Columns {
		if _, ok := drop[c.Name]; ok {
			continue
		}
		out.Columns = append(out.Columns, Column{
			Name:   c.Name,
			Type:   c.Type,
			Values: append([]Value(nil), c.Values...),
		})
	}
	return out
}

// Rename returns a copy with column oldName renamed to newName.
// Renaming a missing column is a no-op; renaming onto an existing name fails.
func (t Table) Rename(oldName, newName string) (Table, error) {
	idx := t.Index(oldName)
	if idx < 0 {
		return t.Clone(), nil
	}
	if oldName != newName && t.Index(newName) >= 0 {
		return Table{}, fmt.Errorf("%w: %s already has a column named %q", ErrInvalidTable, t.label(), newName)
	}
	out := t.Clone()
	out.Columns[idx].Name = newName
	return out, nil
}

func (t Table) label() string {
	if t.Name == "" {
		return "table"
	}
	return fmt.Sprintf("table %q", t.Name)
}
