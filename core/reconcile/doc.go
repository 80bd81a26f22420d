// Package reconcile compares two extracts of the same business report, a source
// produced by the original reporting platform and a target produced by the
// platform it was migrated to, and reports row level and column level differences.
//
// # Pipeline
//
// A run is a fixed sequence of pure steps:
//
// 1. Normalize: headers are trimmed, text is trimmed and upper-cased, dates become
// YYYY-MM-DD text and numeric columns are coerced. Cells that cannot be coerced are
// kept as text and reported as warnings.
//
// 2. Classify: the columns shared by both tables are split into identity columns,
// which build the match key, and measure columns, which are compared.
//
// 3. BuildKeyed: each table is reduced to one entry per key. The KeyMode decides how:
// ModeDimensional groups rows by their identity tuple and sums measures, ModeHash
// keys every row by a SHA-256 digest of its content.
//
// 4. Align: the two keyed tables are outer-joined and every key is tagged with its
// presence (both, source only, target only).
//
// 5. Diff and Summarize: numeric measures get target minus source, other measures
// get a "<target> vs <source>" descriptor, and per-measure totals feed the verdict.
//
// # Usage Example
//
//	res, err := reconcile.Reconcile(source, target, reconcile.Options{
//	    Mode:           reconcile.ModeDimensional,
//	    ExcludeColumns: []string{"Refresh_Date"},
//	})
//	if err != nil {
//	    return err
//	}
//	if !res.Summary.Passed {
//	    // inspect res.Rows and res.Summary.Totals
//	}
//
// ResultCache memoizes results for inputs that are read repeatedly, such as
// storage objects identified by their ETags.
package reconcile
