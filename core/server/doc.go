// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// defines the listening port, the API key and the request limits that bound
// uploaded report extracts.
package server
