package checks

import (
	"context"
	"errors"
	"testing"

	"report-validator/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckExtracts(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 5)
	ch <- minio.ObjectInfo{Key: "extracts/"}
	ch <- minio.ObjectInfo{Key: "extracts/cognos.csv.gz", Size: 100}
	ch <- minio.ObjectInfo{Key: "extracts/pbi.parquet", Size: 100}
	ch <- minio.ObjectInfo{Key: "extracts/notes.docx", Size: 10}
	ch <- minio.ObjectInfo{Key: "extracts/huge.xlsx", Size: 5000}
	close(ch)

	mockClient := new(mocks.Client)
	mockClient.On("ListObjects", mock.Anything, "reports", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	report, err := CheckExtracts(context.Background(), mockClient, "reports", "extracts/", 1024)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Checked)
	assert.Equal(t, []string{"extracts/cognos.csv.gz", "extracts/pbi.parquet"}, report.Readable)
	assert.Equal(t, []string{"extracts/notes.docx"}, report.Unreadable)
	assert.Equal(t, []string{"extracts/huge.xlsx"}, report.Oversized)
}

func TestCheckExtracts_ListError(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("access denied")}
	close(ch)

	mockClient := new(mocks.Client)
	mockClient.On("ListObjects", mock.Anything, "reports", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	_, err := CheckExtracts(context.Background(), mockClient, "reports", "", 0)
	assert.ErrorContains(t, err, "access denied")
}
