package integrity

import (
	"context"
	"testing"

	"report-validator/core/database"
	"report-validator/core/storage"
	"report-validator/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() storage.Config {
	return storage.Config{
		Bucket:        "test-bucket",
		ExtractPrefix: "extracts/",
		ReportPrefix:  "validations/",
		MaxObjectMB:   1,
	}
}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, testConfig(), zap.NewNop(), nil)

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(emptyListing())

		missing, err := svc.CheckStructure(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"extracts", "validations"}, missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
		err := svc.FixStructure(context.Background(), []string{"extracts"})
		assert.NoError(t, err)
	})
}

func TestService_Extracts(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, testConfig(), zap.NewNop(), nil)

	mockClient.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{Prefix: "extracts/", Recursive: true}).
		Return(emptyListing())

	report, err := svc.CheckExtracts(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "extracts/", report.Prefix)
	assert.Zero(t, report.Checked)
}

func TestService_Database(t *testing.T) {
	t.Run("No Connection", func(t *testing.T) {
		svc := NewService(new(mocks.Client), testConfig(), zap.NewNop(), nil)
		_, err := svc.CheckDatabase(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("SQLite", func(t *testing.T) {
		db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)

		svc := NewService(new(mocks.Client), testConfig(), zap.NewNop(), db)
		report, err := svc.CheckDatabase(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, report.Reachable)
		assert.Empty(t, report.Tables)
	})
}
