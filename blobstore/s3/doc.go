// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("bitsets/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	cat := catalog.New(store, catalog.WithCompression(codec.Zstd))
//
// # Features
//
//   - Ranged GetObject reads
//   - CRC32C-checked single-request uploads for small blobs
//   - Multipart uploads through the transfer manager for large blobs
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
