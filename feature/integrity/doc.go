// Package integrity provides health checks of the validation environment.
//
// Unlike the 'validation' package which compares report contents,
// this package validates the infrastructure validations depend on.
//
// # Checks Provided
//
//   - Structure: the extract and report folders exist in the storage bucket.
//   - Extracts: uploaded extracts have a readable format and fit the size limit.
//   - Database: the reporting database answers, and given tables are previewed
//     with the columns that would act as identity or numeric measures.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/extracts : Runs extract check (supports ?prefix=).
//   - GET /integrity/database : Runs database check (supports ?tables=a,b).
package integrity
