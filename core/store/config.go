package store

// Config holds configuration for the versioned store client.
type Config struct {
	// Endpoint is the base URL of the versioned store API.
	Endpoint string `mapstructure:"endpoint" default:""`
	// Token is the bearer token used to authenticate every request.
	Token string `mapstructure:"token" default:""`
	// Ref is the ref name (branch) that asset batch commits move.
	Ref string `mapstructure:"ref" default:"main"`
	// CatalogPath is the object path of the catalog JSON document.
	CatalogPath string `mapstructure:"catalog_path" default:"data/properties.json"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
