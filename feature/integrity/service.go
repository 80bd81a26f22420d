package integrity

import (
	"context"

	"report-validator/core/storage"
	"report-validator/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks of the validation environment.
type Service struct {
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. db may be nil.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.cfg.Bucket, checks.RequiredFolders(s.cfg))
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.cfg.Bucket, s.logger, missing)
}

// CheckExtracts reports which extracts under prefix can be validated.
// An empty prefix checks the configured extract prefix.
func (s *Service) CheckExtracts(ctx context.Context, prefix string) (*checks.ExtractReport, error) {
	if prefix == "" {
		prefix = s.cfg.ExtractPrefix
	}
	return checks.CheckExtracts(ctx, s.client, s.cfg.Bucket, prefix, int64(s.cfg.MaxObjectMB)<<20)
}

// CheckDatabase checks the database connection and previews the given tables.
func (s *Service) CheckDatabase(ctx context.Context, tables []string) (*checks.DatabaseReport, error) {
	return checks.CheckDatabase(ctx, s.db, tables)
}
