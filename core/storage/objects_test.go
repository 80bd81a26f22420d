package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"report-validator/core/storage"
	"report-validator/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(true, nil)

		require.NoError(t, storage.EnsureBucket(context.Background(), client, "reports"))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "reports", mock.Anything).Return(nil)

		require.NoError(t, storage.EnsureBucket(context.Background(), client, "reports"))
		client.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(false, errors.New("denied"))

		err := storage.EnsureBucket(context.Background(), client, "reports")
		assert.ErrorContains(t, err, "denied")
	})
}

func TestReadObject(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "reports", "in/a.csv", mock.Anything).
			Return(minio.ObjectInfo{Key: "in/a.csv", Size: 5, ETag: "abc"}, nil)
		client.On("GetObject", mock.Anything, "reports", "in/a.csv", mock.Anything).
			Return(io.NopCloser(strings.NewReader("a,b\n")), nil)

		data, info, err := storage.ReadObject(ctx, client, "reports", "in/a.csv", 1024)
		require.NoError(t, err)
		assert.Equal(t, "a,b\n", string(data))
		assert.Equal(t, "abc", info.ETag)
	})

	t.Run("TooLarge", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "reports", "big.csv", mock.Anything).
			Return(minio.ObjectInfo{Size: 2048}, nil)

		_, _, err := storage.ReadObject(ctx, client, "reports", "big.csv", 1024)
		assert.ErrorIs(t, err, storage.ErrObjectTooLarge)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("StatObject", mock.Anything, "reports", "nope.csv", mock.Anything).
			Return(minio.ObjectInfo{}, errors.New("NoSuchKey"))

		_, _, err := storage.ReadObject(ctx, client, "reports", "nope.csv", 0)
		assert.ErrorContains(t, err, "NoSuchKey")
	})
}

func TestWriteObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "reports", "validations/x.xlsx", mock.Anything, int64(3),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/zip" })).
		Return(minio.UploadInfo{Key: "validations/x.xlsx", Size: 3}, nil)

	info, err := storage.WriteObject(context.Background(), client, "reports", "validations/x.xlsx", "application/zip", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size)
	client.AssertExpectations(t)
}

func TestListKeys(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "in/a.csv"}
	ch <- minio.ObjectInfo{Key: "in/b.csv"}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "reports", minio.ListObjectsOptions{Prefix: "in/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))

	objects, err := storage.ListKeys(context.Background(), client, "reports", "in/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "in/b.csv", objects[1].Key)
}
