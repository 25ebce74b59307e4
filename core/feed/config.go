package feed

// Config holds configuration for the external property feed.
type Config struct {
	// Endpoint is the base URL of the feed API.
	Endpoint string `mapstructure:"endpoint" default:""`
	// Token is the bearer token sent with every feed request.
	Token string `mapstructure:"token" default:""`
	// PageSize is the number of records requested per page.
	PageSize int `mapstructure:"page_size" default:"100"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// CacheTTLSeconds is how long a fetched feed snapshot may be reused.
	// Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}
