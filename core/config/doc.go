// Package config provides configuration management for the report validator.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// partial configuration.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Database: connection used by query-backed validations
//   - Storage: S3/MinIO credentials, bucket and report prefix
//   - Log: logging level and format
//   - Validation: default key mode, excluded and forced-identity columns, cache TTL
//   - Report: side names and checklist override
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Validation.Mode)
package config
