// Package config provides configuration management for the catalog service.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, sync token)
//   - Store: versioned content store endpoint and credentials
//   - Feed: external property feed endpoint, credentials, and cache TTL
//   - Storage: S3/MinIO credentials and bucket settings for the photo mirror
//   - Database: optional sync history database
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
