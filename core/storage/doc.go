// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so report extracts can be read from, and
// generated validation workbooks written to, either AWS S3 or a self-hosted
// MinIO instance.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Helpers
//
//   - EnsureBucket: creates the bucket on first use.
//   - ReadObject: downloads an extract with a size limit and returns its ETag.
//   - WriteObject: uploads a generated workbook.
//   - ListKeys: lists the extracts or reports under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, info, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, "extracts/cognos.csv", 64<<20)
package storage
