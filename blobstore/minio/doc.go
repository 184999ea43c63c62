// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object store. This package uses the official
// MinIO Go client, so it also works against Ceph, SeaweedFS, Garage and other
// S3-compatible services without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.Connect(ctx, minio.Config{
//	    Endpoint:     "localhost:9000",
//	    AccessKey:    "minioadmin",
//	    SecretKey:    "minioadmin",
//	    Bucket:       "bitsets",
//	    CreateBucket: true,
//	})
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
