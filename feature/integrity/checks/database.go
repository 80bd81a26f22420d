package checks

import (
	"context"
	"fmt"

	"report-validator/core/database"
	"report-validator/core/reconcile"
	"report-validator/core/table"

	"gorm.io/gorm"
)

// DatabaseReport strictly types the result of a database check.
type DatabaseReport struct {
	Dialect   string                 `json:"dialect"`
	Reachable bool                   `json:"reachable"`
	Tables    map[string]TableReport `json:"tables"`
	Errors    []string               `json:"errors"`
}

// TableReport previews how a warehouse table would take part in a validation.
type TableReport struct {
	Columns  int      `json:"columns"`
	Identity []string `json:"identity"`
	Numeric  []string `json:"numeric"`
	Other    []string `json:"other"`
	Status   string   `json:"status"` // "ok", "missing", "error"
}

// CheckDatabase pings the database and previews the role of every column of
// the given tables: identity by name, numeric by declared type.
func CheckDatabase(ctx context.Context, db *gorm.DB, tables []string) (*DatabaseReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &DatabaseReport{
		Dialect: db.Dialector.Name(),
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("ping failed: %v", err))
		return report, nil
	}
	report.Reachable = true

	for _, name := range tables {
		cols, err := database.GetTableColumns(db.WithContext(ctx), name)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			report.Tables[name] = TableReport{Status: "error"}
			continue
		}
		report.Tables[name] = previewTable(cols)
	}
	return report, nil
}

func previewTable(cols []database.ColumnInfo) TableReport {
	tr := TableReport{
		Columns:  len(cols),
		Identity: []string{},
		Numeric:  []string{},
		Other:    []string{},
		Status:   "ok",
	}
	if len(cols) == 0 {
		tr.Status = "missing"
		return tr
	}

	for _, col := range cols {
		typ, _ := database.ColumnType(col.Type)
		switch {
		case reconcile.IsIdentityName(col.Field):
			tr.Identity = append(tr.Identity, col.Field)
		case typ == table.TypeNumber:
			tr.Numeric = append(tr.Numeric, col.Field)
		default:
			tr.Other = append(tr.Other, col.Field)
		}
	}
	return tr
}
