package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds the report extracts and the generated workbooks.
	Bucket string `mapstructure:"bucket" default:"reports"`
	// ExtractPrefix is the key prefix under which report extracts are uploaded.
	ExtractPrefix string `mapstructure:"extract_prefix" default:"extracts/"`
	// ReportPrefix is the key prefix under which generated workbooks are saved.
	ReportPrefix string `mapstructure:"report_prefix" default:"validations/"`
	// MaxObjectMB caps the size of an extract read from the bucket.
	MaxObjectMB int `mapstructure:"max_object_mb" default:"64"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
