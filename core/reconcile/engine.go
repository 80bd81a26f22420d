package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"report-validator/core/table"
)

// IdentitySuffix is appended to columns listed in Options.RenameToIdentity.
const IdentitySuffix = "_ID"

// Reconcile compares a source and a target table and returns the full
// reconciliation result. It is pure: the input tables are never modified and
// no state is shared between calls, so independent runs may execute concurrently.
//
// Structural problems (invalid tables, no shared identity columns in
// dimensional mode, inconsistent measures) abort the run with an error.
// Per-cell coercion failures and key collisions are returned as warnings.
func Reconcile(source, target table.Table, opts Options) (*Result, error) {
	mode, err := ParseKeyMode(string(opts.Mode))
	if err != nil {
		return nil, err
	}

	if err := source.Validate(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	// Drop excluded columns, then force the requested ones into the identity role
	source, err = prepare(source, opts)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	target, err = prepare(target, opts)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	src, srcWarnings := Normalize(SideSource, source)
	tgt, tgtWarnings := Normalize(SideTarget, target)
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if err := tgt.Validate(); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	partition := Classify(src, tgt, mode)
	if len(partition.Shared) == 0 {
		return nil, &ConfigurationError{Reason: "source and target share no column names"}
	}

	srcKeyed, err := BuildKeyed(SideSource, src, partition, mode)
	if err != nil {
		return nil, err
	}
	tgtKeyed, err := BuildKeyed(SideTarget, tgt, partition, mode)
	if err != nil {
		return nil, err
	}

	rows := Align(srcKeyed, tgtKeyed)
	if err := Diff(rows, srcKeyed, tgtKeyed, partition); err != nil {
		return nil, err
	}

	warnings := make([]Warning, 0, len(srcWarnings)+len(tgtWarnings)+len(srcKeyed.Warnings)+len(tgtKeyed.Warnings))
	warnings = append(warnings, srcWarnings...)
	warnings = append(warnings, tgtWarnings...)
	warnings = append(warnings, srcKeyed.Warnings...)
	warnings = append(warnings, tgtKeyed.Warnings...)

	return &Result{
		Mode:      mode,
		Partition: partition,
		Rows:      rows,
		Source:    srcKeyed,
		Target:    tgtKeyed,
		Columns:   PairColumns(src.Names(), tgt.Names()),
		Summary:   Summarize(rows, partition),
		Warnings:  warnings,
	}, nil
}

// prepare applies column exclusion and identity renames. Names are matched
// after trimming so they line up with the normalized headers.
func prepare(t table.Table, opts Options) (table.Table, error) {
	out := t.Clone()
	for i := range out.Columns {
		out.Columns[i].Name = strings.TrimSpace(out.Columns[i].Name)
	}

	if len(opts.ExcludeColumns) > 0 {
		exclude := make([]string, len(opts.ExcludeColumns))
		for i, name := range opts.ExcludeColumns {
			exclude[i] = strings.TrimSpace(name)
		}
		out = out.Without(exclude...)
	}

	for _, name := range opts.RenameToIdentity {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		renamed, err := out.Rename(name, name+IdentitySuffix)
		if err != nil {
			if errors.Is(err, table.ErrInvalidTable) {
				return table.Table{}, &ConfigurationError{Reason: err.Error()}
			}
			return table.Table{}, err
		}
		out = renamed
	}
	return out, nil
}

// PairColumns lines up two column name lists by position, padding the shorter
// one with empty names. Match is true only where both names are equal.
func PairColumns(source, target []string) []ColumnPair {
	n := len(source)
	if len(target) > n {
		n = len(target)
	}
	pairs := make([]ColumnPair, n)
	for i := 0; i < n; i++ {
		p := ColumnPair{Position: i + 1}
		if i < len(source) {
			p.Source = source[i]
		}
		if i < len(target) {
			p.Target = target[i]
		}
		p.Match = p.Source != "" && p.Source == p.Target
		pairs[i] = p
	}
	return pairs
}
