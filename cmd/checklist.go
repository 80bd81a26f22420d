package cmd

import (
	"encoding/json"
	"fmt"

	"report-validator/core/config"
	"report-validator/core/report"
	"report-validator/core/tableio"

	"github.com/spf13/cobra"
)

var checklistFormat string

// checklistCmd prints the audit checklist placed at the front of every report.
var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Print the audit checklist",
	Long:  `Prints the audit checklist (the built-in one, or REPORT_CHECKLIST_PATH when set) as CSV or JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cl, err := report.LoadChecklist(cfg.Report.ChecklistPath)
		if err != nil {
			return err
		}

		switch checklistFormat {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cl)
		case "csv":
			return tableio.WriteCSV(cmd.OutOrStdout(), cl.Sheet())
		default:
			return fmt.Errorf("unknown checklist format %q (expected csv or json)", checklistFormat)
		}
	},
}

func init() {
	checklistCmd.Flags().StringVar(&checklistFormat, "format", "csv", "Output format: csv or json")
	RootCmd.AddCommand(checklistCmd)
}
