// Package compare exposes dataset reconciliation over HTTP.
//
// A comparison takes two tables, a composite key and an alignment mode, and returns one
// record per distinct key classified as unchanged, changed, only in old or only in new.
// Tables can be sent inline, uploaded as files, or referenced in object storage
// (s3://bucket/object) and in the database (db:table).
//
// # HTTP Endpoints
//
//   - POST /compare : Compares two inline tables.
//   - POST /compare/upload : Compares two uploaded CSV, XLSX or JSON files.
//   - POST /compare/sources : Compares two stored datasets (supports ?publish=s3://...).
//   - GET /compare/profiles : Lists comparison profiles.
//   - GET /compare/datasets : Lists datasets in object storage.
//
// Comparison endpoints accept ?format=json|xlsx|text. Non-JSON formats are returned as
// attachments.
package compare
