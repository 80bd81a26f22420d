package validation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"report-validator/core/database"
	"report-validator/core/reconcile"
	"report-validator/core/report"
	"report-validator/core/storage"
	"report-validator/core/table"
	"report-validator/core/tableio"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrInvalidRequest marks malformed input such as missing files or fields.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrDatabaseDisabled is returned by query-backed operations when no database is configured.
	ErrDatabaseDisabled = errors.New("database not configured")
)

// Settings are the configured defaults of the validation feature.
type Settings struct {
	Storage    storage.Config
	Validation reconcile.Config
	Report     report.Config
	// APIKey is the server API key; the query endpoint is only served behind one.
	APIKey string
}

// Service runs reconciliations and renders their reports.
type Service struct {
	client    storage.Client
	db        *gorm.DB
	logger    *zap.Logger
	settings  Settings
	checklist report.Checklist
	cache     *reconcile.ResultCache
}

// NewService creates a new validation service. db may be nil when query-backed
// validation is disabled.
func NewService(client storage.Client, db *gorm.DB, logger *zap.Logger, settings Settings) (*Service, error) {
	cl, err := report.LoadChecklist(settings.Report.ChecklistPath)
	if err != nil {
		return nil, err
	}
	if _, err := settings.Validation.Options(); err != nil {
		return nil, fmt.Errorf("invalid validation defaults: %w", err)
	}
	if err := settings.Report.Names().Validate(); err != nil {
		return nil, fmt.Errorf("invalid report defaults: %w", err)
	}
	return &Service{
		client:    client,
		db:        db,
		logger:    logger,
		settings:  settings,
		checklist: cl,
		cache:     reconcile.NewResultCache(settings.Validation.CacheTTL()),
	}, nil
}

// Checklist returns the audit checklist placed at the front of every report.
func (s *Service) Checklist() report.Checklist {
	return s.checklist
}

// Options merges request overrides into the configured defaults.
func (s *Service) Options(run RunOptions) (reconcile.Options, error) {
	cfg := s.settings.Validation
	if strings.TrimSpace(run.Mode) != "" {
		cfg.Mode = run.Mode
	}
	cfg.ExcludeColumns = append(append([]string{}, cfg.ExcludeColumns...), run.ExcludeColumns...)
	cfg.RenameToIdentity = append(append([]string{}, cfg.RenameToIdentity...), run.RenameToIdentity...)
	return cfg.Options()
}

// Names resolves the side labels for a run. The names also title worksheets,
// so names that cannot do that are rejected with ErrInvalidRequest.
func (s *Service) Names(run RunOptions) (report.SideNames, error) {
	names := s.settings.Report.Names()
	if strings.TrimSpace(run.SourceName) != "" {
		names.Source = strings.TrimSpace(run.SourceName)
	}
	if strings.TrimSpace(run.TargetName) != "" {
		names.Target = strings.TrimSpace(run.TargetName)
	}
	if err := names.Validate(); err != nil {
		return report.SideNames{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return names, nil
}

// Validate reconciles two tables and assembles the report workbook.
func (s *Service) Validate(source, target table.Table, run RunOptions) (*Report, error) {
	names, err := s.Names(run)
	if err != nil {
		return nil, err
	}
	opts, err := s.Options(run)
	if err != nil {
		return nil, err
	}
	res, err := reconcile.Reconcile(source, target, opts)
	if err != nil {
		return nil, err
	}
	return s.newReport(res, names, false), nil
}

func (s *Service) newReport(res *reconcile.Result, names report.SideNames, cached bool) *Report {
	rep := &Report{
		RunID:    uuid.NewString(),
		Names:    names,
		Result:   res,
		Workbook: report.Assemble(res, s.checklist, names),
		Cached:   cached,
	}

	sum := res.Summary
	s.logger.Info("Validation completed",
		zap.String("run_id", rep.RunID),
		zap.String("mode", string(res.Mode)),
		zap.Int("keys", sum.TotalKeys),
		zap.Int("source_only", sum.SourceOnly),
		zap.Int("target_only", sum.TargetOnly),
		zap.Int("warnings", len(res.Warnings)),
		zap.Bool("passed", sum.Passed),
		zap.Bool("cached", cached),
	)
	for _, w := range res.Warnings {
		s.logger.Debug("Validation warning", zap.String("run_id", rep.RunID), zap.String("warning", w.String()))
	}
	return rep
}

// ValidateStorage reconciles two extracts stored in the bucket. Results are
// cached by object keys, ETags and options, so re-running an unchanged pair is free.
func (s *Service) ValidateStorage(ctx context.Context, sourceKey, targetKey string, run RunOptions) (*Report, error) {
	if sourceKey == "" || targetKey == "" {
		return nil, fmt.Errorf("%w: source and target object keys are required", ErrInvalidRequest)
	}
	names, err := s.Names(run)
	if err != nil {
		return nil, err
	}
	opts, err := s.Options(run)
	if err != nil {
		return nil, err
	}

	bucket := s.settings.Storage.Bucket
	srcInfo, err := s.client.StatObject(ctx, bucket, sourceKey, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", sourceKey, err)
	}
	tgtInfo, err := s.client.StatObject(ctx, bucket, targetKey, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", targetKey, err)
	}

	key := reconcile.Fingerprint(
		sourceKey, srcInfo.ETag, targetKey, tgtInfo.ETag, string(opts.Mode),
		strings.Join(opts.ExcludeColumns, ","), strings.Join(opts.RenameToIdentity, ","),
	)
	res, cached, err := s.cache.GetOrBuild(key, func() (*reconcile.Result, error) {
		source, err := s.readObjectTable(ctx, sourceKey)
		if err != nil {
			return nil, err
		}
		target, err := s.readObjectTable(ctx, targetKey)
		if err != nil {
			return nil, err
		}
		return reconcile.Reconcile(source, target, opts)
	})
	if err != nil {
		return nil, err
	}
	return s.newReport(res, names, cached), nil
}

func (s *Service) readObjectTable(ctx context.Context, key string) (table.Table, error) {
	maxBytes := int64(s.settings.Storage.MaxObjectMB) << 20
	data, _, err := storage.ReadObject(ctx, s.client, s.settings.Storage.Bucket, key, maxBytes)
	if err != nil {
		return table.Table{}, err
	}
	t, err := tableio.Open(key, bytes.NewReader(data), tableio.ReadOptions{})
	if err != nil {
		return table.Table{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}

// ListExtracts lists the objects under prefix that a reader can open.
func (s *Service) ListExtracts(ctx context.Context, prefix string) ([]string, error) {
	objects, err := storage.ListKeys(ctx, s.client, s.settings.Storage.Bucket, prefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		if strings.HasPrefix(obj.Key, s.settings.Storage.ReportPrefix) {
			continue
		}
		if _, err := tableio.DetectFormat(obj.Key); err == nil {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

// SaveReport writes the report to the bucket under the report prefix and returns its key.
func (s *Service) SaveReport(ctx context.Context, rep *Report, format tableio.OutputFormat) (string, error) {
	var buf bytes.Buffer
	if err := tableio.WriteReport(&buf, rep.Workbook, format); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	bucket := s.settings.Storage.Bucket
	if err := storage.EnsureBucket(ctx, s.client, bucket); err != nil {
		return "", err
	}
	key := s.settings.Storage.ReportPrefix + rep.RunID + format.Extension()
	if _, err := storage.WriteObject(ctx, s.client, bucket, key, format.ContentType(), buf.Bytes()); err != nil {
		return "", err
	}
	s.logger.Info("Report saved", zap.String("run_id", rep.RunID), zap.String("key", key))
	return key, nil
}

// ValidateQuery reconciles the result sets of two queries against the configured database.
func (s *Service) ValidateQuery(ctx context.Context, req QueryRequest) (*Report, error) {
	if s.db == nil {
		return nil, ErrDatabaseDisabled
	}
	names, err := s.Names(req.Options)
	if err != nil {
		return nil, err
	}
	source, err := database.QueryTable(ctx, s.db, names.Source, req.SourceQuery)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	target, err := database.QueryTable(ctx, s.db, names.Target, req.TargetQuery)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	return s.Validate(source, target, req.Options)
}

// QueryEnabled reports whether the query endpoint may be served. With a
// database connected it requires an API key; without one it answers 503.
func (s *Service) QueryEnabled() bool {
	return s.db == nil || s.settings.APIKey != ""
}

// TableColumns lists the columns of a warehouse table.
func (s *Service) TableColumns(name string) ([]database.ColumnInfo, error) {
	if s.db == nil {
		return nil, ErrDatabaseDisabled
	}
	return database.GetTableColumns(s.db, name)
}
