package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the admin API.
	ApiKey string `mapstructure:"api_key" default:""`
	// SyncToken is the bearer credential for unattended POST /sync callers
	// (schedulers, cron). Empty disables the check.
	SyncToken string `mapstructure:"sync_token" default:""`
}

// HasAuth reports whether the admin API requires an API key.
func (c Config) HasAuth() bool {
	return c.ApiKey != ""
}
