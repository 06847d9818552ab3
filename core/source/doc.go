// Package source resolves dataset references into tables.
//
// A reference is one of:
//   - a local path ("bom/old.xlsx"), only when local access is allowed
//   - an object in S3 compatible storage ("s3://datasets/bom/new.csv")
//   - a SQL table ("db:bom_lines")
//
// The table format of files and objects follows the extension (see table.ReaderFor).
//
// # Caching
//
// Loaded tables are kept in a TTL cache keyed by an xxhash digest of the source identity
// and version: path, size and modification time for files, bucket, object and ETag for
// objects. A modified source therefore never hits a stale entry. Database tables carry no
// version and are read on every load.
// Concurrent loads of the same key are collapsed with singleflight. A shared load runs
// detached from the caller that started it; each caller still stops waiting when its own
// context ends.
//
// # Errors
//
// Load wraps every failure in *Error carrying the reference, so callers can tell a source
// problem apart from a comparison problem.
package source
