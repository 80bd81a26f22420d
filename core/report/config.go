package report

// Config holds the report presentation settings.
type Config struct {
	// SourceName labels the source platform in sheet names and presence tags.
	SourceName string `mapstructure:"source_name" default:"Cognos"`
	// TargetName labels the target platform.
	TargetName string `mapstructure:"target_name" default:"PBI"`
	// ChecklistPath points at a YAML checklist replacing the embedded one.
	ChecklistPath string `mapstructure:"checklist_path" default:""`
}

// Names returns the configured side names, falling back to the defaults.
func (c Config) Names() SideNames {
	return SideNames{Source: c.SourceName, Target: c.TargetName}.orDefault()
}
