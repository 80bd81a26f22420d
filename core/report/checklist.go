package report

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed checklist.yaml
var defaultChecklist []byte

// Checklist is the static audit checklist attached to every report.
// Reviewers fill in the status columns by hand.
type Checklist struct {
	Columns []string `yaml:"columns" json:"columns"`
	Items   []string `yaml:"items" json:"items"`
}

// DefaultChecklist returns the built-in checklist.
func DefaultChecklist() Checklist {
	cl, err := ParseChecklist(defaultChecklist)
	if err != nil {
		panic(fmt.Sprintf("report: embedded checklist is invalid: %v", err))
	}
	return cl
}

// LoadChecklist reads a checklist from a YAML file. An empty path returns the built-in checklist.
func LoadChecklist(path string) (Checklist, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultChecklist(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Checklist{}, fmt.Errorf("failed to read checklist: %w", err)
	}
	return ParseChecklist(data)
}

// ParseChecklist decodes and validates a YAML checklist.
func ParseChecklist(data []byte) (Checklist, error) {
	var cl Checklist
	if err := yaml.Unmarshal(data, &cl); err != nil {
		return Checklist{}, fmt.Errorf("failed to parse checklist: %w", err)
	}
	if len(cl.Columns) < 2 {
		return Checklist{}, fmt.Errorf("checklist needs at least a number and a text column, got %d columns", len(cl.Columns))
	}
	if len(cl.Items) == 0 {
		return Checklist{}, fmt.Errorf("checklist has no items")
	}
	return cl, nil
}

// Sheet renders the checklist as a numbered sheet with blank status cells.
func (c Checklist) Sheet() Sheet {
	sheet := Sheet{
		Name:   SheetChecklist,
		Header: append([]string(nil), c.Columns...),
		Rows:   make([][]any, len(c.Items)),
	}
	for i, item := range c.Items {
		row := make([]any, len(c.Columns))
		row[0] = i + 1
		row[1] = item
		for j := 2; j < len(row); j++ {
			row[j] = ""
		}
		sheet.Rows[i] = row
	}
	return sheet
}
