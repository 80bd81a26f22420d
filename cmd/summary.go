package cmd

import (
	"fmt"
	"strings"

	"report-validator/feature/validation"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true).
			Underline(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00D9FF")).
			Width(22)

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// renderSummary formats the verdict of a run for the terminal.
func renderSummary(rep *validation.Report) string {
	res := rep.Result
	s := res.Summary

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Validation %s vs %s", rep.Names.Source, rep.Names.Target)))
	b.WriteString("\n\n")

	line := func(label string, value any) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(fmt.Sprint(value))
		b.WriteString("\n")
	}
	line("Mode", res.Mode)
	line("Identity columns", strings.Join(res.Partition.Identity, ", "))
	line("Measure columns", strings.Join(res.Partition.Measure, ", "))
	if len(res.Partition.Dropped) > 0 {
		line("Dropped columns", strings.Join(res.Partition.Dropped, ", "))
	}
	line("Keys", s.TotalKeys)
	line("Present in both", s.Both)
	line("Only in "+rep.Names.Source, s.SourceOnly)
	line("Only in "+rep.Names.Target, s.TargetOnly)

	for _, total := range s.Totals {
		if total.Numeric {
			line(total.Column+"_Diff", total.Sum.String())
			continue
		}
		line(total.Column+"_Diff", fmt.Sprintf("%d mismatches", total.Mismatches))
	}
	if len(res.Warnings) > 0 {
		line("Warnings", len(res.Warnings))
	}

	b.WriteString("\n")
	if s.Passed {
		b.WriteString(passStyle.Render("PASSED"))
	} else {
		b.WriteString(failStyle.Render("FAILED"))
	}
	b.WriteString("\n")
	return b.String()
}
