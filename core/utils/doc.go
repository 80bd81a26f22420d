// Package utils provides common utility functions for the report-validator application.
// It includes helper functions for type conversion, number parsing, and other
// shared logic that doesn't fit into domain-specific packages.
package utils
