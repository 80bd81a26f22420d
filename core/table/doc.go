// Package table defines the in-memory rectangular table that both sides of a
// validation run are loaded into.
//
// A Table is an ordered list of named Columns. Every column carries a declared
// Type (text, number or date), the equivalent of a spreadsheet reader's dtype, and
// a slice of Values. Numbers are exact decimals so that sums and differences never
// drift beyond the precision of the input.
//
// # Building tables
//
//   - Infer: from string records (CSV, spreadsheet sheets), typing each column.
//   - FromRecords: from typed rows produced by database and parquet readers.
//   - New / AddColumn: programmatic construction, mostly in tests.
//
// Tables are treated as immutable values: Without, Rename and Clone return copies.
package table
