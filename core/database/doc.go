// Package database connects to the reporting warehouse and turns query results
// into tables that can be reconciled against report extracts.
//
// It wraps GORM with the MySQL driver for production and the SQLite driver for
// local files and tests.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	target, err := database.QueryTable(ctx, db, "PBI", "SELECT region, SUM(sales) AS sales FROM facts GROUP BY region")
//
//	columns, err := database.GetTableColumns(db, "facts")
package database
