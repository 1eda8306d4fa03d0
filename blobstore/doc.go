// Package blobstore provides the storage abstraction persisted datasets are
// written to.
//
// BlobStore reads and writes immutable named blobs (column files, manifests).
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and scratch datasets
//   - LocalStore: local filesystem with mmap reads and atomic writes
//   - RateLimitedStore: wraps any store with a token bucket
//   - minio.Store: MinIO and S3-compatible object storage
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//
// Remote stores tag blobs with ContentType: manifests are JSON and column
// files are binary.
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Create(ctx, name) (WritableBlob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
