// Package middleware groups the HTTP middleware of the validation server.
//
// # Components
//
//   - auth: rejects requests that lack the configured X-API-Key header.
//     The Swagger UI is skipped so the API can be browsed.
//   - rayid: tags each request with a ray ID (reusing an incoming X-Ray-ID)
//     so log lines from one validation run can be correlated.
//
// rayid must be registered first so that the request logger and auth
// failures carry the ID.
package middleware
