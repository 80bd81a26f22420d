package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies, which bounds uploaded extracts.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"32"`
	// ReadTimeoutSeconds bounds reading a full request.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"60"`
}

const (
	defaultBodyLimitMB = 32
	defaultReadTimeout = 60
)

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return defaultBodyLimitMB << 20
	}
	return c.BodyLimitMB << 20
}

// ReadTimeout returns the read timeout in seconds.
func (c Config) ReadTimeout() int {
	if c.ReadTimeoutSeconds <= 0 {
		return defaultReadTimeout
	}
	return c.ReadTimeoutSeconds
}
