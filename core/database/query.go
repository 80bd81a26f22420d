package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"report-validator/core/table"

	"gorm.io/gorm"
)

// ErrReadOnlyQuery is returned for statements that are not a single SELECT or WITH query.
var ErrReadOnlyQuery = errors.New("only read queries are allowed")

// QueryTable runs a read query and returns its result set as a table named name.
// Column types come from the driver's database type names; columns whose type
// is unknown (such as computed sqlite expressions) are inferred from the values.
// The statement must be a single SELECT or WITH query and runs inside a
// read-only transaction.
func QueryTable(ctx context.Context, db *gorm.DB, name, query string, args ...any) (table.Table, error) {
	if strings.TrimSpace(query) == "" {
		return table.Table{}, fmt.Errorf("%w: empty query for %s", table.ErrInvalidTable, name)
	}
	if err := CheckReadQuery(query); err != nil {
		return table.Table{}, fmt.Errorf("%s: %w", name, err)
	}

	var (
		columns []string
		types   map[string]table.Type
		records []map[string]any
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := tx.Raw(query, args...).Rows()
		if err != nil {
			return fmt.Errorf("failed to run query for %s: %w", name, err)
		}
		defer rows.Close()

		colTypes, err := rows.ColumnTypes()
		if err != nil {
			return fmt.Errorf("failed to read columns for %s: %w", name, err)
		}

		columns = make([]string, len(colTypes))
		types = make(map[string]table.Type, len(colTypes))
		for i, ct := range colTypes {
			columns[i] = ct.Name()
			if typ, ok := ColumnType(ct.DatabaseTypeName()); ok {
				types[ct.Name()] = typ
			}
		}

		for rows.Next() {
			values := make([]any, len(columns))
			ptrs := make([]any, len(columns))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return fmt.Errorf("failed to scan row for %s: %w", name, err)
			}

			record := make(map[string]any, len(columns))
			for i, col := range columns {
				record[col] = values[i]
			}
			records = append(records, record)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read rows for %s: %w", name, err)
		}
		return nil
	}, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return table.Table{}, err
	}

	t := table.FromRecords(name, columns, records, types)
	return t, t.Validate()
}

// CheckReadQuery accepts a single SELECT or WITH statement. Leading comments
// and parentheses are skipped; one trailing semicolon is allowed.
func CheckReadQuery(query string) error {
	body := strings.TrimSpace(query)
	body = strings.TrimSpace(strings.TrimSuffix(body, ";"))
	if strings.Contains(body, ";") {
		return fmt.Errorf("%w: multiple statements", ErrReadOnlyQuery)
	}

	rest := body
	for {
		rest = strings.TrimLeft(rest, " \t\r\n(")
		switch {
		case strings.HasPrefix(rest, "--"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				rest = ""
			} else {
				rest = rest[end+1:]
			}
			continue
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest, "*/")
			if end < 0 {
				rest = ""
			} else {
				rest = rest[end+2:]
			}
			continue
		}
		break
	}

	end := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		end = len(rest)
	}
	keyword := strings.ToUpper(rest[:end])
	if keyword != "SELECT" && keyword != "WITH" {
		return fmt.Errorf("%w: statement starts with %q", ErrReadOnlyQuery, keyword)
	}
	return nil
}

// ColumnType maps a driver type name to a table column type.
func ColumnType(dbType string) (table.Type, bool) {
	t := strings.ToUpper(strings.TrimSpace(dbType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	t = strings.TrimPrefix(t, "UNSIGNED ")

	switch t {
	case "":
		return "", false
	case "INT", "INTEGER", "TINYINT", "SMALLINT", "MEDIUMINT", "BIGINT",
		"DECIMAL", "NUMERIC", "FLOAT", "DOUBLE", "REAL", "DOUBLE PRECISION":
		return table.TypeNumber, true
	case "DATE", "DATETIME", "TIMESTAMP":
		return table.TypeDate, true
	default:
		return table.TypeText, true
	}
}
