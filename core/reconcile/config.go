package reconcile

import (
	"strings"
	"time"
)

// Config holds the default reconciliation settings. Requests and CLI flags
// override them per run.
type Config struct {
	// Mode is the default key mode (dimensional, hash).
	Mode string `mapstructure:"mode" default:"dimensional"`
	// ExcludeColumns are dropped from both tables on every run (comma separated in env).
	ExcludeColumns []string `mapstructure:"exclude_columns" default:""`
	// RenameToIdentity columns are forced into the identity role on every run.
	RenameToIdentity []string `mapstructure:"rename_to_identity" default:""`
	// CacheTTLSeconds keeps storage-backed results for this long. Zero disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// Options converts the configuration into run options.
func (c Config) Options() (Options, error) {
	mode, err := ParseKeyMode(c.Mode)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Mode:             mode,
		ExcludeColumns:   SplitNames(c.ExcludeColumns...),
		RenameToIdentity: SplitNames(c.RenameToIdentity...),
	}, nil
}

// CacheTTL returns the result cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// SplitNames flattens comma separated column lists, trimming blanks and dropping empties.
func SplitNames(values ...string) []string {
	var names []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
	}
	return names
}
