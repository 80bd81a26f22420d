package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"report-validator/core/config"
	"report-validator/core/database"
	"report-validator/core/logger"
	"report-validator/core/reconcile"
	"report-validator/core/storage"
	"report-validator/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	fixFlag    bool
	jsonFlag   bool
	prefixFlag string
	tablesFlag []string
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the validation environment",
	Long:  `Checks the bucket folder structure, the uploaded extracts and the reporting database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), "")
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the extract and report folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), "structure")
	},
}

// extractsCmd represents the integrity extracts command
var extractsCmd = &cobra.Command{
	Use:   "extracts",
	Short: "Check that uploaded extracts can be read",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), "extracts")
	},
}

// databaseCmd represents the integrity database command
var databaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Check the reporting database and preview table columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), "database")
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, extractsCmd, databaseCmd)

	integrityCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Save the results as a JSON file")
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	extractsCmd.Flags().StringVar(&prefixFlag, "prefix", "", "Key prefix to check (default: configured extract prefix)")
	databaseCmd.Flags().StringSliceVar(&tablesFlag, "tables", nil, "Tables to preview")
}

func runIntegrityChecks(ctx context.Context, only string) error {

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage client: %w", err)
	}

	// Connect to Database (Optional)
	var db *gorm.DB
	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
		}
	}

	svc := integrity.NewService(store, cfg.Storage, logg, db)
	results := make(map[string]any)

	if only == "" || only == "structure" {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}
		results["structure"] = missing

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if only == "structure" && fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else if only == "structure" {
				logg.Info("Run with --fix to create missing folders.")
			}
		}
	}

	if only == "" || only == "extracts" {
		logg.Info("Checking extracts...")
		report, err := svc.CheckExtracts(ctx, prefixFlag)
		if err != nil {
			return fmt.Errorf("extract check failed: %w", err)
		}
		results["extracts"] = report

		logg.Info("Extracts checked",
			zap.String("prefix", report.Prefix),
			zap.Int("checked", report.Checked),
			zap.Int("readable", len(report.Readable)))
		if len(report.Unreadable) > 0 {
			logg.Warn("Unreadable extracts", zap.Strings("keys", report.Unreadable))
		}
		if len(report.Oversized) > 0 {
			logg.Warn("Oversized extracts", zap.Strings("keys", report.Oversized))
		}
	}

	if only == "" || only == "database" {
		if db == nil {
			logg.Warn("Database check skipped, no connection")
		} else {
			logg.Info("Checking reporting database...", zap.String("driver", cfg.Database.Driver))
			report, err := svc.CheckDatabase(ctx, reconcile.SplitNames(tablesFlag...))
			if err != nil {
				return fmt.Errorf("database check failed: %w", err)
			}
			results["database"] = report

			for name, tbl := range report.Tables {
				logg.Info("Table preview",
					zap.String("table", name),
					zap.String("status", tbl.Status),
					zap.Strings("identity", tbl.Identity),
					zap.Strings("numeric", tbl.Numeric))
			}
			for _, e := range report.Errors {
				logg.Error("Inspection error", zap.String("error", e))
			}
		}
	}

	if jsonFlag {
		filename := fmt.Sprintf("integrity_%d.json", time.Now().Unix())
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return fmt.Errorf("failed to save JSON file: %w", err)
		}
		logg.Info("Integrity report saved", zap.String("file", filename))
	}
	return nil
}
