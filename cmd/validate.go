package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"report-validator/core/config"
	"report-validator/core/database"
	"report-validator/core/logger"
	"report-validator/core/report"
	"report-validator/core/table"
	"report-validator/core/tableio"
	"report-validator/feature/validation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrValidationFailed is returned by --strict runs whose report did not pass.
var ErrValidationFailed = errors.New("validation failed")

var (
	validateSource      string
	validateTarget      string
	validateWorkbook    string
	validateSourceQuery string
	validateTargetQuery string
	validateMode        string
	validateExclude     []string
	validateAsID        []string
	validateSourceName  string
	validateTargetName  string
	validateOut         string
	validateFormat      string
	validateStrict      bool
)

// validateCmd reconciles two extracts and writes the report workbook.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Reconcile a source and a target report extract",
	Long: `Reconcile two report extracts and write the validation workbook.

Inputs are either two files (csv, xlsx, parquet; .gz/.zst/.lz4 compressed is fine),
one workbook holding a sheet per side (named after the side names), or two
queries run against the configured database.

Examples:
  # Two CSV extracts, default dimensional mode
  validate --source cognos.csv --target pbi.csv --out report.xlsx

  # One workbook with "Cognos" and "PBI" sheets, row-level hash matching
  validate --workbook extracts.xlsx --mode hash --out report.zip

  # Force Year into the identity role and fail the run on any difference
  validate --source a.csv.gz --target b.parquet --as-id Year --strict`,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateSource, "source", "", "Source extract file")
	f.StringVar(&validateTarget, "target", "", "Target extract file")
	f.StringVar(&validateWorkbook, "workbook", "", "Workbook holding one sheet per side")
	f.StringVar(&validateSourceQuery, "source-query", "", "Source query against the configured database")
	f.StringVar(&validateTargetQuery, "target-query", "", "Target query against the configured database")
	f.StringVar(&validateMode, "mode", "", "Key mode: dimensional or hash (default from config)")
	f.StringSliceVar(&validateExclude, "exclude", nil, "Columns to drop before comparing")
	f.StringSliceVar(&validateAsID, "as-id", nil, "Columns to force into the identity role")
	f.StringVar(&validateSourceName, "source-name", "", "Source platform name (default from config)")
	f.StringVar(&validateTargetName, "target-name", "", "Target platform name (default from config)")
	f.StringVarP(&validateOut, "out", "o", "", "Report output file; the extension picks the format")
	f.StringVar(&validateFormat, "format", "", "Report format: xlsx, zip, json, csv or parquet")
	f.BoolVar(&validateStrict, "strict", false, "Exit non-zero when the validation does not pass")

	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	var db *gorm.DB
	if validateSourceQuery != "" || validateTargetQuery != "" {
		db, err = database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	svc, err := validation.NewService(nil, db, l, validation.Settings{
		Storage:    cfg.Storage,
		Validation: cfg.Validation,
		Report:     cfg.Report,
	})
	if err != nil {
		return err
	}

	run := validation.RunOptions{
		Mode:             validateMode,
		ExcludeColumns:   validateExclude,
		RenameToIdentity: validateAsID,
		SourceName:       validateSourceName,
		TargetName:       validateTargetName,
	}

	var rep *validation.Report
	if validateSourceQuery != "" || validateTargetQuery != "" {
		rep, err = svc.ValidateQuery(cmd.Context(), validation.QueryRequest{
			SourceQuery: validateSourceQuery,
			TargetQuery: validateTargetQuery,
			Options:     run,
		})
	} else {
		var names report.SideNames
		names, err = svc.Names(run)
		if err != nil {
			return err
		}
		var source, target table.Table
		source, target, err = readInputs(names.Source, names.Target)
		if err != nil {
			return err
		}
		rep, err = svc.Validate(source, target, run)
	}
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), renderSummary(rep))

	if validateOut != "" || validateFormat != "" {
		if err := writeReport(cmd, l, rep); err != nil {
			return err
		}
	}

	if validateStrict && !rep.Result.Summary.Passed {
		return ErrValidationFailed
	}
	return nil
}

// readInputs loads the two sides from --workbook or from --source and --target.
func readInputs(sourceSheet, targetSheet string) (table.Table, table.Table, error) {
	if validateWorkbook != "" {
		f, err := os.Open(validateWorkbook)
		if err != nil {
			return table.Table{}, table.Table{}, fmt.Errorf("failed to open workbook: %w", err)
		}
		defer f.Close()
		return tableio.ReadWorkbook(f, sourceSheet, targetSheet, nil)
	}

	if validateSource == "" || validateTarget == "" {
		return table.Table{}, table.Table{}, errors.New("either --workbook, --source and --target, or --source-query and --target-query are required")
	}
	source, err := readFile(validateSource)
	if err != nil {
		return table.Table{}, table.Table{}, err
	}
	target, err := readFile(validateTarget)
	if err != nil {
		return table.Table{}, table.Table{}, err
	}
	return source, target, nil
}

func readFile(path string) (table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return tableio.Open(path, f, tableio.ReadOptions{})
}

// writeReport writes the workbook to --out, or to stdout when only --format is set.
// A compression suffix on --out (.gz, .zst, .lz4) compresses the report.
func writeReport(cmd *cobra.Command, l *zap.Logger, rep *validation.Report) error {
	rawFormat := validateFormat
	if rawFormat == "" {
		rawFormat = strings.TrimPrefix(filepath.Ext(tableio.StripCompression(validateOut)), ".")
	}
	format, err := tableio.ParseOutputFormat(rawFormat)
	if err != nil {
		return err
	}

	if validateOut == "" {
		return tableio.WriteReport(cmd.OutOrStdout(), rep.Workbook, format)
	}

	f, err := os.Create(validateOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", validateOut, err)
	}
	defer f.Close()

	w, err := tableio.Compress(validateOut, f)
	if err != nil {
		return err
	}
	if err := tableio.WriteReport(w, rep.Workbook, format); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	l.Info("Report written", zap.String("path", validateOut), zap.String("format", string(format)))
	return nil
}
