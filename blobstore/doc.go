// Package blobstore abstracts the storage that holds encoded bitsets.
//
// A BlobStore keeps immutable, whole-object blobs under slash-separated
// names. Writers replace a blob atomically with Put; readers Open a blob and
// read it with ReadAt or ReadAll. Implementations must be safe for concurrent
// use.
//
// # Built-in Implementations
//
//   - LocalStore: local file system, atomic rename on Put, mmap on Open
//   - MemoryStore: in-process map, for tests and ephemeral catalogs
//   - s3.Store: Amazon S3 with ranged reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// Missing blobs are reported with an error satisfying
// errors.Is(err, ErrNotFound).
package blobstore
