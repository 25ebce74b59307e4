// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures for server settings, such as the listen
// port and the credentials protecting the API.
//
// # Configuration
//
// The Config struct defines the HTTP port, the admin API key, and the sync
// token used by unattended schedulers to trigger synchronization runs.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings.
package server
