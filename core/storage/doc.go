// Package storage is the object storage layer used for s3:// dataset references and
// published comparison reports.
//
// It wraps the MinIO Go client behind the Client interface so the rest of the module
// can be tested with the mocks in core/storage/mocks. AWS S3 and self-hosted MinIO
// are both supported.
//
// # Object References
//
// Datasets in object storage are addressed as "s3://bucket/path/to/object.csv".
// ParseURI splits such a reference; StatObject supplies the ETag that keys the
// source cache, so a changed object is never served from a stale cache entry.
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	bucket, object, err := storage.ParseURI("s3://datasets/bom/2024-05.xlsx")
//	info, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{})
package storage
