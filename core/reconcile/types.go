package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"

	"report-validator/core/table"

	"github.com/shopspring/decimal"
)

// KeyMode selects how rows are matched across the two tables. It is chosen once per run.
type KeyMode string

const (
	// ModeDimensional groups rows by their identity tuple, sums measures per group
	// and matches on the dash-joined identity values.
	ModeDimensional KeyMode = "dimensional"
	// ModeHash matches whole rows on a content digest without aggregation.
	ModeHash KeyMode = "hash"
)

// ParseKeyMode parses a mode name. An empty string selects ModeDimensional.
func ParseKeyMode(s string) (KeyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeDimensional):
		return ModeDimensional, nil
	case string(ModeHash):
		return ModeHash, nil
	default:
		return "", &ConfigurationError{Reason: fmt.Sprintf("unknown key mode %q (expected dimensional or hash)", s)}
	}
}

// Side identifies one of the two compared tables.
type Side string

const (
	// SideSource is the original report extract.
	SideSource Side = "source"
	// SideTarget is the migrated report extract.
	SideTarget Side = "target"
)

// Presence classifies where a key was found.
type Presence int

const (
	// PresenceBoth means the key exists in both tables.
	PresenceBoth Presence = iota
	// PresenceSourceOnly means the key exists only in the source table.
	PresenceSourceOnly
	// PresenceTargetOnly means the key exists only in the target table.
	PresenceTargetOnly
)

// String returns the machine-readable presence name.
func (p Presence) String() string {
	switch p {
	case PresenceSourceOnly:
		return "source_only"
	case PresenceTargetOnly:
		return "target_only"
	default:
		return "both"
	}
}

// MarshalJSON encodes the presence by name.
func (p Presence) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a presence name.
func (p *Presence) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "both":
		*p = PresenceBoth
	case "source_only":
		*p = PresenceSourceOnly
	case "target_only":
		*p = PresenceTargetOnly
	default:
		return fmt.Errorf("unknown presence %q", name)
	}
	return nil
}

// Options configures a single reconciliation run.
type Options struct {
	// Mode selects the key generation strategy.
	Mode KeyMode `json:"mode"`

	// ExcludeColumns are removed from both tables before classification.
	ExcludeColumns []string `json:"exclude_columns,omitempty"`

	// RenameToIdentity columns are renamed to "<name>_ID" before classification,
	// forcing them into the identity role.
	RenameToIdentity []string `json:"rename_to_identity,omitempty"`
}

// Partition is the role assignment of the shared columns, in source column order.
type Partition struct {
	// Shared lists every column present in both tables.
	Shared []string `json:"shared"`

	// Identity columns build the match key and are never summed.
	Identity []string `json:"identity"`

	// Measure columns are compared across the tables.
	Measure []string `json:"measure"`

	// Dropped columns are numeric in only one table and take no part in the comparison.
	Dropped []string `json:"dropped"`

	// Numeric reports, per measure, whether it is numeric in both tables.
	Numeric map[string]bool `json:"-"`
}

// KeyedRow is one keyed row (or aggregated row group) of a single table.
type KeyedRow struct {
	// Key is the canonical match key.
	Key string `json:"key"`

	// Identity holds the identity values in Partition.Identity order.
	Identity []table.Value `json:"identity"`

	// Measures holds the (summed, in dimensional mode) measure values in Partition.Measure order.
	Measures []table.Value `json:"measures"`

	// Count is the number of input rows folded into this entry.
	Count int `json:"count"`
}

// KeyedTable is a table reduced to one entry per key, kept for audit output.
type KeyedTable struct {
	Side     Side       `json:"side"`
	Mode     KeyMode    `json:"mode"`
	Identity []string   `json:"identity"`
	Measures []string   `json:"measures"`
	Entries  []KeyedRow `json:"entries"`

	// Warnings holds key collisions raised while grouping.
	Warnings []Warning `json:"-"`

	index map[string]int
}

// Lookup returns the entry for key.
func (k *KeyedTable) Lookup(key string) (*KeyedRow, bool) {
	if k == nil {
		return nil, false
	}
	i, ok := k.index[key]
	if !ok {
		return nil, false
	}
	return &k.Entries[i], true
}

// Len returns the number of distinct keys.
func (k *KeyedTable) Len() int {
	if k == nil {
		return 0
	}
	return len(k.Entries)
}

// MeasureDiff is the comparison of one measure on one reconciliation row.
type MeasureDiff struct {
	// Column is the measure name.
	Column string `json:"column"`

	// Source is the source value; null when the key is absent from the source.
	Source table.Value `json:"source"`

	// Target is the target value; null when the key is absent from the target.
	Target table.Value `json:"target"`

	// Numeric reports which diff shape is populated.
	Numeric bool `json:"numeric"`

	// Delta is Target - Source with absent sides counted as zero (numeric measures).
	Delta decimal.Decimal `json:"delta"`

	// Text is the "<target> vs <source>" descriptor (non-numeric measures).
	Text string `json:"text,omitempty"`
}

// Mismatch reports whether the two sides disagree.
func (m MeasureDiff) Mismatch() bool {
	if m.Numeric {
		return !m.Delta.IsZero()
	}
	return m.Source.String() != m.Target.String()
}

// Row is one entry per key in the union of both tables' keys.
type Row struct {
	Key         string        `json:"key"`
	Identity    []table.Value `json:"identity"`
	Presence    Presence      `json:"presence"`
	SourceCount int           `json:"source_count"`
	TargetCount int           `json:"target_count"`
	Measures    []MeasureDiff `json:"measures"`
}

// ColumnPair lines up the two tables' column names by position.
type ColumnPair struct {
	Position int    `json:"position"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Match    bool   `json:"match"`
}

// DiffTotal aggregates the differences of one measure over all rows.
type DiffTotal struct {
	Column     string          `json:"column"`
	Numeric    bool            `json:"numeric"`
	Sum        decimal.Decimal `json:"sum"`
	Mismatches int             `json:"mismatches"`
}

// Summary is the verdict signal consumed by pass/fail gates.
type Summary struct {
	TotalKeys  int         `json:"total_keys"`
	Both       int         `json:"both"`
	SourceOnly int         `json:"source_only"`
	TargetOnly int         `json:"target_only"`
	AllBoth    bool        `json:"all_both"`
	Totals     []DiffTotal `json:"totals"`
	Passed     bool        `json:"passed"`
}

// Result is the full output of a reconciliation run.
type Result struct {
	Mode      KeyMode      `json:"mode"`
	Partition Partition    `json:"partition"`
	Rows      []Row        `json:"rows"`
	Source    *KeyedTable  `json:"source"`
	Target    *KeyedTable  `json:"target"`
	Columns   []ColumnPair `json:"columns"`
	Summary   Summary      `json:"summary"`
	Warnings  []Warning    `json:"warnings"`
}
