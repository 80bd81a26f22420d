// Package report lays reconciliation results out as a multi-sheet workbook
// and holds the static audit checklist attached to it.
package report
