package reconcile

import (
	"sort"

	"report-validator/core/table"
)

// Align outer-joins two keyed tables on their keys. Every key of either table
// appears exactly once in the result, ordered by key. Identity values come from
// the source entry with null gaps filled from the target entry. Row.Measures is
// left for Diff to fill.
func Align(src, tgt *KeyedTable) []Row {
	keys := make([]string, 0, src.Len()+tgt.Len())
	seen := make(map[string]struct{}, src.Len()+tgt.Len())
	for _, kt := range []*KeyedTable{src, tgt} {
		if kt == nil {
			continue
		}
		for _, e := range kt.Entries {
			if _, ok := seen[e.Key]; ok {
				continue
			}
			seen[e.Key] = struct{}{}
			keys = append(keys, e.Key)
		}
	}
	sort.Strings(keys)

	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		s, inSource := src.Lookup(key)
		t, inTarget := tgt.Lookup(key)

		row := Row{Key: key}
		switch {
		case inSource && inTarget:
			row.Presence = PresenceBoth
			row.Identity = mergeIdentity(s.Identity, t.Identity)
		case inSource:
			row.Presence = PresenceSourceOnly
			row.Identity = append([]table.Value(nil), s.Identity...)
		default:
			row.Presence = PresenceTargetOnly
			row.Identity = append([]table.Value(nil), t.Identity...)
		}
		if inSource {
			row.SourceCount = s.Count
		}
		if inTarget {
			row.TargetCount = t.Count
		}
		rows = append(rows, row)
	}
	return rows
}

func mergeIdentity(preferred, fallback []table.Value) []table.Value {
	out := append([]table.Value(nil), preferred...)
	for i := range out {
		if out[i].IsNull() && i < len(fallback) {
			out[i] = fallback[i]
		}
	}
	return out
}
