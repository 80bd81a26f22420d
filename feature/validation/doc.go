// Package validation exposes report reconciliation over HTTP.
//
// Inputs arrive as inline JSON tables, uploaded files, objects in the report
// bucket, or query result sets from the configured database. Each run goes
// through reconcile.Reconcile and report.Assemble; the workbook is returned as
// JSON or as an xlsx, zip, csv or parquet attachment.
//
// # Endpoints
//
//   - POST /validation: inline tables
//   - POST /validation/upload: multipart workbook or source/target files
//   - GET /validation/storage: bucket objects, cached per ETag, optionally saved
//   - GET /validation/extracts: readable objects in the bucket
//   - POST /validation/query: database queries
//   - GET /validation/checklist: the audit checklist
//   - GET /validation/tables/:name/columns: warehouse table columns
//
// Configuration, schema and table errors map to 422; malformed input to 400.
package validation
